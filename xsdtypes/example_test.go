package xsdtypes_test

import (
	"fmt"
	"time"

	"github.com/CognitoIQ/xsdmodel/xsdtypes"
)

func ExampleFormatISO() {
	for _, d := range []time.Duration{0, 14 * 24 * time.Hour, 36 * time.Hour, 90 * time.Second} {
		s, err := xsdtypes.FormatISO(d)
		if err != nil {
			panic(err)
		}
		fmt.Println(s)
	}

	// Output:
	// P0D
	// P2W
	// P1DT12H
	// PT1M30S
}

func ExampleDurationCodec() {
	d, err := xsdtypes.DurationCodec.Validate("P1DT2H")
	if err != nil {
		panic(err)
	}
	doc, _ := xsdtypes.DurationCodec.Serialize(d, xsdtypes.Document)
	native, _ := xsdtypes.DurationCodec.Serialize(d, xsdtypes.Native)
	fmt.Println(doc)
	fmt.Println(native)

	// Output:
	// P1DT2H
	// 26h0m0s
}

func ExampleDateTimeCodec() {
	t := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	s, _ := xsdtypes.DateTimeCodec.Serialize(t, xsdtypes.Document)
	fmt.Println(s)

	_, err := xsdtypes.DateTimeCodec.Validate("2024-02-30T00:00:00Z")
	fmt.Println(err != nil)

	// Output:
	// 2024-06-01T10:00:00Z
	// true
}

func ExampleInit() {
	type Point struct {
		xsdtypes.Model
		Version    string                               `field:"const=true,default=4.1"`
		Resolution xsdtypes.Optional[xsdtypes.Duration] `field:"default=PT15M"`
		Quantities []float64                            `field:"default_factory=list"`
	}
	var p Point
	if err := xsdtypes.Init(&p); err != nil {
		panic(err)
	}
	fmt.Println(p.Version, p.Resolution.Value, p.Quantities != nil)

	// Output:
	// 4.1 PT15M true
}
