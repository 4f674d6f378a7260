package xsdgen

import (
	"fmt"

	"github.com/CognitoIQ/xsdmodel/xsd"
	"golang.org/x/exp/slices"
)

// FieldType returns the Go type expression used to declare a field.
//
// Prohibited fields are declared as any. Choice groups are declared
// by CompoundFieldType. Other fields are resolved by the base
// resolver, then by the tag and declared-type overrides, in that
// order, and finally shaped according to the cardinality of the
// field. Errors from the base resolver are returned unchanged.
func (cfg *Config) FieldType(class *xsd.Class, attr *xsd.Attr) (string, error) {
	if attr.Prohibited {
		return "any", nil
	}
	if attr.Dict {
		return cfg.mapping(), nil
	}
	if attr.Tag == xsd.Choice {
		return cfg.CompoundFieldType(class, attr)
	}
	typ, err := cfg.scalarType(class, attr)
	if err != nil {
		return "", err
	}

	if attr.Tokens {
		typ = cfg.iterable(typ)
	}
	if attr.List {
		return cfg.iterable(typ), nil
	}
	if attr.Tokens {
		return typ, nil
	}
	if cfg.isOptional(attr) {
		return cfg.optional(typ), nil
	}
	return typ, nil
}

// CompoundFieldType returns the Go type of a choice group. When all
// alternatives share a type, the field has that type; otherwise it
// is declared as any.
func (cfg *Config) CompoundFieldType(class *xsd.Class, attr *xsd.Attr) (string, error) {
	var names []string
	for i := range attr.Choices {
		choice := &attr.Choices[i]
		var (
			typ string
			err error
		)
		switch {
		case choice.Prohibited:
			typ = "any"
		case choice.Tag == xsd.Choice:
			typ, err = cfg.CompoundFieldType(class, choice)
		default:
			typ, err = cfg.scalarType(class, choice)
			if err == nil && (choice.List || choice.Tokens) {
				typ = cfg.iterable(typ)
			}
		}
		if err != nil {
			return "", err
		}
		if !slices.Contains(names, typ) {
			names = append(names, typ)
		}
	}
	typ := "any"
	if len(names) == 1 {
		typ = names[0]
	} else {
		cfg.debugf("choice %s has %d distinct types, declaring as any", attr.Name, len(names))
	}
	if attr.List {
		return cfg.iterable(typ), nil
	}
	if cfg.isOptional(attr) {
		return cfg.optional(typ), nil
	}
	return typ, nil
}

// scalarType resolves the element type of a field, before it is
// shaped by cardinality.
func (cfg *Config) scalarType(class *xsd.Class, attr *xsd.Attr) (string, error) {
	if len(attr.Types) == 0 {
		return "", fmt.Errorf("field %s has no declared type", attr.Name)
	}
	base := cfg.baseResolver()
	var names []string
	for _, qname := range attr.Types {
		name, err := base.TypeName(class, qname)
		if err != nil {
			return "", err
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	typ := "any"
	if len(names) == 1 {
		typ = names[0]
	} else {
		cfg.debugf("field %s is a union of %v, declaring as any", attr.Name, names)
	}

	if t, ok := cfg.tagTypes[tagName{attr.Tag, attr.Name}]; ok {
		cfg.debugf("%s %s: overriding type %s with %s", attr.Tag, attr.Name, typ, t)
		typ = t
	}
	if t, ok := cfg.declaredTypes[attr.Type()]; ok {
		cfg.debugf("%s %s: overriding declared type %s with %s", attr.Tag, attr.Name, attr.Type(), t)
		typ = t
	}
	return typ, nil
}

// isOptional returns true if the field may be absent after
// construction.
func (cfg *Config) isOptional(attr *xsd.Attr) bool {
	return attr.Nillable || (attr.Default == nil && (attr.Optional || !cfg.keywordOnly))
}

func (cfg *Config) optional(typ string) string {
	if !cfg.unionType {
		return "xsdtypes.Optional[" + typ + "]"
	}
	if typ == "any" {
		return typ
	}
	return "*" + typ
}

func (cfg *Config) mapping() string {
	if cfg.genericCollections {
		return "xsdtypes.Mapping"
	}
	return "map[string]string"
}
