package xsdgen_test

import (
	"fmt"
	"log"
	"os"

	"github.com/CognitoIQ/xsdmodel/internal/gen"
	"github.com/CognitoIQ/xsdmodel/xsd"
	"github.com/CognitoIQ/xsdmodel/xsdgen"
)

var class = &xsd.Class{
	Name:      "Balancing_MarketDocument",
	Namespace: "urn:iec62325.351:tc57wg16:451-6:balancingdocument:4:1",
}

func ExampleConfig_FieldType() {
	var cfg xsdgen.Config
	cfg.Option(xsdgen.DefaultOptions...)

	resolution := &xsd.Attr{
		Name:     "resolution",
		Types:    []xsd.QName{xsd.Duration.Name()},
		Optional: true,
	}
	typ, err := cfg.FieldType(class, resolution)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(typ)

	cfg.Option(xsdgen.UnionType(false))
	typ, err = cfg.FieldType(class, resolution)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(typ)

	// Output: *xsdtypes.Duration
	// xsdtypes.Optional[xsdtypes.Duration]
}

func ExampleConfig_FieldDefinition() {
	var cfg xsdgen.Config
	cfg.Option(xsdgen.DefaultOptions...)

	version := &xsd.Attr{
		Tag:     xsd.Attribute,
		Name:    "version",
		Types:   []xsd.QName{xsd.String.Name()},
		Fixed:   true,
		Default: new(string),
	}
	*version.Default = "4.1"
	field, err := cfg.FieldDefinition(class, version)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(gen.FieldString(field))

	// Output: Version string `xml:"version,attr" json:"version" field:"const=true,default=4.1"`
}

func ExampleOverrideElement() {
	var cfg xsdgen.Config
	cfg.Option(xsdgen.DefaultOptions...)
	cfg.Option(
		xsdgen.Import("esmp", "example.com/esmp"),
		xsdgen.OverrideElement("mRID", "esmp.ID"),
	)
	typ, err := cfg.FieldType(class, &xsd.Attr{
		Name:  "mRID",
		Types: []xsd.QName{xsd.String.Name()},
	})
	if err != nil {
		log.Fatal(err)
	}
	paths, err := cfg.ImportTable().Imports(typ)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(typ, paths)

	// Output: esmp.ID [example.com/esmp]
}

func ExampleLogOutput() {
	var cfg xsdgen.Config
	cfg.Option(
		xsdgen.LogOutput(log.New(os.Stderr, "", 0)),
		xsdgen.LogLevel(2))
}
