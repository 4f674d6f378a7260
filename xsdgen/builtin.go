package xsdgen

import (
	"encoding/xml"
	"fmt"

	"github.com/CognitoIQ/xsdmodel/xsd"
)

// A BaseResolver maps a declared xsd type to a Go type expression,
// before any overrides are applied.
type BaseResolver interface {
	TypeName(class *xsd.Class, qname xsd.QName) (string, error)
}

// An UnknownTypeError is returned when a declared type cannot be
// mapped to a Go type.
type UnknownTypeError struct {
	Type xsd.QName
}

func (e *UnknownTypeError) Error() string {
	if xsd.IsBuiltin(e.Type) {
		return fmt.Sprintf("unknown built-in type %q", e.Type.Local)
	}
	return fmt.Sprintf("cannot resolve type %s", e.Type)
}

// builtinResolver is the default BaseResolver.
type builtinResolver struct {
	cfg *Config
}

func (r builtinResolver) TypeName(class *xsd.Class, qname xsd.QName) (string, error) {
	if qname.Local == "" {
		return "", &UnknownTypeError{qname}
	}
	if xsd.IsBuiltin(qname) {
		b, err := xsd.ParseBuiltin(qname)
		if err != nil {
			return "", &UnknownTypeError{qname}
		}
		return builtinExpr(b), nil
	}
	name := r.cfg.public(xml.Name(qname))
	if name == "" {
		return "", &UnknownTypeError{qname}
	}
	return name, nil
}

func builtinExpr(b xsd.Builtin) string {
	if int(b) >= len(builtinTbl) || b < 0 {
		return ""
	}
	return builtinTbl[b]
}

// The 45 built-in types of the XSD schema
var builtinTbl = [...]string{
	xsd.AnyType:       "string",
	xsd.AnySimpleType: "string",
	xsd.ENTITIES:      "[]string",
	xsd.ENTITY:        "string",
	xsd.ID:            "string",
	xsd.IDREF:         "string",
	xsd.IDREFS:        "[]string",
	xsd.NCName:        "string",
	xsd.NMTOKEN:       "string",
	xsd.NMTOKENS:      "[]string",
	xsd.NOTATION:      "[]string",
	xsd.Name:          "string",
	xsd.QNameType:     "xml.Name",
	xsd.AnyURI:        "string",
	xsd.Base64Binary:  "[]byte",
	xsd.Boolean:       "bool",
	xsd.Byte:          "int8",
	xsd.Date:          "time.Time",
	xsd.DateTime:      "time.Time",
	xsd.Decimal:       "float64",
	xsd.Double:        "float64",
	// Replaced by xsdtypes.Duration in the default options.
	xsd.Duration:           "string",
	xsd.Float:              "float32",
	xsd.GDay:               "time.Time",
	xsd.GMonth:             "time.Time",
	xsd.GMonthDay:          "time.Time",
	xsd.GYear:              "time.Time",
	xsd.GYearMonth:         "time.Time",
	xsd.HexBinary:          "[]byte",
	xsd.Int:                "int",
	xsd.Integer:            "int",
	xsd.Language:           "string",
	xsd.Long:               "int64",
	xsd.NegativeInteger:    "int",
	xsd.NonNegativeInteger: "int",
	xsd.NormalizedString:   "string",
	xsd.NonPositiveInteger: "int",
	xsd.PositiveInteger:    "int",
	xsd.Short:              "int",
	xsd.String:             "string",
	xsd.Time:               "time.Time",
	xsd.Token:              "string",
	xsd.UnsignedByte:       "byte",
	xsd.UnsignedInt:        "uint",
	xsd.UnsignedLong:       "uint64",
	xsd.UnsignedShort:      "uint",
}
