package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/CognitoIQ/xsdmodel/xsdgen"
	"github.com/CognitoIQ/xsdmodel/xsdtypes"
)

const marketYAML = "../../xsd/testdata/market.yaml"

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestCodec(t *testing.T) {
	require := require.New(t)

	out, err := execute("codec", "--", "PT36H", "P1W7D", "-P1Y")
	require.NoError(err)
	require.Equal("P1DT12H\nP2W\n-P1Y\n", out)

	out, err = execute("codec", "--mode", "native", "P1DT2H")
	require.NoError(err)
	require.Equal("26h0m0s\n", out)

	out, err = execute("codec", "-t", "datetime", "2024-01-02T03:04:05Z")
	require.NoError(err)
	require.Equal("2024-01-02T03:04:05Z\n", out)

	out, err = execute("codec", "-t", "minute-datetime", "--mode", "native", "2024-01-02T03:04Z")
	require.NoError(err)
	require.Equal("2024-01-02T03:04Z\n", out)

	out, err = execute("codec", "-t", "datetime", "--schema")
	require.NoError(err)
	var schema xsdtypes.Schema
	require.NoError(json.Unmarshal([]byte(out), &schema))
	require.Equal("date-time", schema.Format)
}

func TestCodecErrors(t *testing.T) {
	require := require.New(t)

	_, err := execute("codec", "-t", "minute-datetime", "2024-01-02T03:04:05Z")
	require.ErrorIs(err, xsdtypes.ErrPatternMismatch)
	require.ErrorContains(err, "YYYY-MM-DDTHH:MMZ")

	_, err = execute("codec", "PT")
	require.ErrorIs(err, xsdtypes.ErrUnparseableText)
	require.ErrorContains(err, "PT15M")

	_, err = execute("codec", "-t", "date", "2024-01-02")
	require.ErrorContains(err, "unknown type")

	_, err = execute("codec", "--mode", "compact", "PT1H")
	require.ErrorContains(err, "unknown mode")
}

func findDecl(t *testing.T, decls []classDecl, class string) classDecl {
	t.Helper()
	for _, d := range decls {
		if d.Class == class {
			return d
		}
	}
	t.Fatalf("no declaration for class %s", class)
	return classDecl{}
}

func findField(t *testing.T, decl classDecl, name string) fieldDecl {
	t.Helper()
	for _, f := range decl.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("%s has no field %s", decl.Class, name)
	return fieldDecl{}
}

func TestResolveJSON(t *testing.T) {
	require := require.New(t)

	out, err := execute("resolve", "--json", marketYAML)
	require.NoError(err)
	var decls []classDecl
	require.NoError(json.Unmarshal([]byte(out), &decls))
	require.Len(decls, 3)

	doc := findDecl(t, decls, "Balancing_MarketDocument")
	require.Equal("BalancingMarketDocument", doc.Name)
	require.Equal([]string{"xsdtypes.Model"}, doc.Bases)
	require.Equal([]string{xsdgen.RuntimePackage}, doc.Imports)
	require.Equal("xsdtypes.DateTime", findField(t, doc, "CreatedDateTime").Type)
	require.Equal("*xsdtypes.Duration", findField(t, doc, "Resolution").Type)
	require.Equal(`xml:"version,attr" json:"version" field:"const=true,default=4.1"`,
		findField(t, doc, "Version").Tag)

	interval := findDecl(t, decls, "ESMP_DateTimeInterval")
	require.Equal("xsdtypes.MinuteDateTime", findField(t, interval, "Start").Type)

	reason := findDecl(t, decls, "Reason")
	require.Equal("any", findField(t, reason, "Legacy").Type)

	out, err = execute("resolve", "--json", "--optional-wrapper", "--element", "mRID=xsdtypes.Duration", marketYAML)
	require.NoError(err)
	decls = nil
	require.NoError(json.Unmarshal([]byte(out), &decls))
	doc = findDecl(t, decls, "Balancing_MarketDocument")
	require.Equal("xsdtypes.Optional[xsdtypes.Duration]", findField(t, doc, "Resolution").Type)
	require.Equal("xsdtypes.Duration", findField(t, doc, "MRID").Type)
}

func TestResolveListing(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	overrides := filepath.Join(dir, "overrides.yaml")
	require.NoError(os.WriteFile(overrides, []byte("clear: true\n"), 0666))
	output := filepath.Join(dir, "model.txt")

	_, err := execute("resolve", "--pkg", "balancing", "--overrides", overrides,
		"-r", "^ESMP(.*) -> Esmp$1", "-o", output, marketYAML)
	require.NoError(err)
	data, err := os.ReadFile(output)
	require.NoError(err)
	src := string(data)

	require.Contains(src, "package balancing\n")
	require.Contains(src, "\nBalancingMarketDocument (Balancing_MarketDocument)\n\txsdtypes.Model\n")
	require.Contains(src, "\nEsmpDateTimeInterval (ESMP_DateTimeInterval)\n")
	require.Contains(src, "\tCreatedDateTime time.Time `xml:\"createdDateTime\" json:\"createdDateTime\" field:\"required\"`\n")
	require.Contains(src, "\tResolution *string `")
	require.Contains(src, "\timport \"time\"\n")
	require.NotContains(src, "MinuteDateTime")
}

func TestResolveErrors(t *testing.T) {
	require := require.New(t)

	_, err := execute("resolve")
	require.Error(err)

	_, err = execute("resolve", "does-not-exist.yaml")
	require.Error(err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(os.WriteFile(bad, []byte("classes:\n  - name: Bad\n    attrs:\n      - name: x\n        types: [\"{http://www.w3.org/2001/XMLSchema}bogus\"]\n"), 0666))
	_, err = execute("resolve", bad)
	var unknown *xsdgen.UnknownTypeError
	require.ErrorAs(err, &unknown)
}
