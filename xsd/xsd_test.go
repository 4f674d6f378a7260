package xsd

import (
	"io/ioutil"
	"strings"
	"testing"
)

func readFile(t *testing.T, name string) []Class {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	classes, err := ReadClasses(data)
	if err != nil {
		t.Fatal(err)
	}
	return classes
}

func TestReadClasses(t *testing.T) {
	classes := readFile(t, "testdata/market.yaml")
	if len(classes) != 3 {
		t.Fatalf("got %d classes, wanted 3", len(classes))
	}
	doc := classes[0]
	if doc.Namespace != "urn:iec62325.351:tc57wg16:451-6:balancingdocument:4:1" {
		t.Errorf("class %s did not inherit target namespace, got %q", doc.Name, doc.Namespace)
	}
	res := doc.Attr("resolution")
	if res == nil {
		t.Fatal("field resolution not found")
	}
	if res.Type() != Duration.Name() {
		t.Errorf("resolution has type %s, wanted %s", res.Type(), Duration.Name())
	}
	if !res.Optional {
		t.Error("resolution should be optional")
	}
	version := doc.Attr("version")
	if version.Tag != Attribute || !version.Fixed || version.Default == nil || *version.Default != "4.1" {
		t.Errorf("unexpected version field %+v", version)
	}
	if ts := doc.Attr("TimeSeries"); !ts.List || !ts.Factory {
		t.Errorf("TimeSeries should be a factory list, got %+v", ts)
	}

	reason := classes[2]
	if reason.Namespace != "urn:example:reason" {
		t.Errorf("explicit namespace overwritten, got %q", reason.Namespace)
	}
	if c := reason.Attr("choice"); c.Tag != Choice || len(c.Choices) != 2 {
		t.Errorf("unexpected choice %+v", c)
	}
	if legacy := reason.Attr("legacy"); !legacy.Prohibited || len(legacy.Types) != 0 {
		t.Errorf("unexpected prohibited field %+v", legacy)
	}
}

func TestReadClassesJSON(t *testing.T) {
	classes, err := ReadClasses([]byte(`{"classes": [{"name": "Point", "attrs": [
		{"tag": "attribute", "name": "quantity", "types": ["{http://www.w3.org/2001/XMLSchema}decimal"]}
	]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 1 || classes[0].Attrs[0].Tag != Attribute {
		t.Errorf("unexpected result %+v", classes)
	}
}

func TestReadClassesErrors(t *testing.T) {
	tests := []string{
		`classes: [{attrs: []}]`,
		`classes: [{name: A, attrs: [{tag: Element, name: x}]}]`,
		`classes: [{name: A, attrs: [{tag: Choice, name: x}]}]`,
		`classes: [{name: A, attrs: [{tag: Bogus, name: x, types: [a]}]}]`,
		`classes: [{name: A, attrs: [{tag: Element, name: x, types: ["{urn:x"]}]}]`,
		`classes: [{name: A, colour: red, attrs: []}]`,
	}
	for _, doc := range tests {
		if _, err := ReadClasses([]byte(doc)); err == nil {
			t.Errorf("ReadClasses(%q) succeeded, wanted error", doc)
		} else {
			t.Logf("ReadClasses(%q): %v", doc, err)
		}
	}
}

func TestParseQName(t *testing.T) {
	tests := []struct {
		in   string
		want QName
	}{
		{"{http://www.w3.org/2001/XMLSchema}duration", Duration.Name()},
		{"local", QName{Local: "local"}},
		{" {urn:a}b ", QName{Space: "urn:a", Local: "b"}},
	}
	for _, tt := range tests {
		got, err := ParseQName(tt.in)
		if err != nil {
			t.Errorf("ParseQName(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQName(%q) = %v, wanted %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "{urn:a}", "{urn:a"} {
		if _, err := ParseQName(bad); err == nil {
			t.Errorf("ParseQName(%q) succeeded, wanted error", bad)
		}
	}
}

func TestParseBuiltin(t *testing.T) {
	for b := AnyType; b <= UnsignedShort; b++ {
		got, err := ParseBuiltin(b.Name())
		if err != nil {
			t.Errorf("ParseBuiltin(%s): %v", b.Name(), err)
		} else if got != b {
			t.Errorf("ParseBuiltin(%s) = %s", b.Name(), got)
		}
	}
	if _, err := ParseBuiltin(QName{Space: SchemaNS, Local: "dateTimeStamp2"}); err == nil {
		t.Error("expected error for unknown built-in")
	}
	if _, err := ParseBuiltin(QName{Space: "urn:x", Local: "string"}); err == nil {
		t.Error("expected error for non-schema namespace")
	}
}

func TestSortClasses(t *testing.T) {
	const ns = "urn:example:sort"
	ref := func(local string) []QName { return []QName{{Space: ns, Local: local}} }
	classes := []Class{
		{Name: "Document", Namespace: ns, Attrs: []Attr{{Name: "series", Types: ref("Series"), List: true}}},
		{Name: "Series", Namespace: ns, Attrs: []Attr{{Name: "point", Types: ref("Point")}}},
		{Name: "Point", Namespace: ns, Attrs: []Attr{{Name: "quantity", Types: []QName{Decimal.Name()}}}},
		{Name: "Reason", Namespace: ns, Attrs: []Attr{{Tag: Choice, Name: "choice", Choices: []Attr{
			{Name: "point", Types: ref("Point")},
			{Name: "text", Types: []QName{String.Name()}},
		}}}},
		{Name: "Derived", Namespace: ns, Extensions: ref("Base")},
		{Name: "Base", Namespace: ns, Attrs: []Attr{{Name: "self", Types: ref("Base")}}},
		{Name: "Point", Namespace: "urn:example:other"},
	}
	var got []string
	for _, c := range SortClasses(classes) {
		got = append(got, c.Name)
	}
	want := []string{"Point", "Series", "Document", "Reason", "Base", "Derived", "Point"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("got order %v, wanted %v", got, want)
	}
}
