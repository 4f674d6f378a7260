// Package xsd describes the fields of classes derived from XML Schema
// documents.
//
// The xsd package does not parse schema documents. A schema front end
// hands each derived class to the code generator as a Class value, and
// each of the class's fields as an Attr. The Attr type records the
// low-level information the front end learned about a field (its tag
// kind, cardinality, declared types and restrictions) as boolean flags
// where appropriate, so that code generation can decide how the field
// is declared without consulting the schema again.
package xsd // import "github.com/CognitoIQ/xsdmodel/xsd"

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	// SchemaNS is the namespace of the XML Schema built-in types.
	SchemaNS = "http://www.w3.org/2001/XMLSchema"
	// SchemaInstanceNS is the namespace of xsi:nil and friends.
	SchemaInstanceNS = "http://www.w3.org/2001/XMLSchema-instance"
)

// A QName is the qualified name of a schema type. Its text form is
// Clark notation, "{namespace}local"; names without a namespace are
// written as the bare local name.
type QName xml.Name

// ParseQName parses a name in Clark notation.
func ParseQName(s string) (QName, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		if s == "" {
			return QName{}, fmt.Errorf("empty qualified name")
		}
		return QName{Local: s}, nil
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return QName{}, fmt.Errorf("qualified name %q: missing closing brace", s)
	}
	if end == len(s)-1 {
		return QName{}, fmt.Errorf("qualified name %q: missing local name", s)
	}
	return QName{Space: s[1:end], Local: s[end+1:]}, nil
}

func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}

func (q QName) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *QName) UnmarshalText(text []byte) error {
	name, err := ParseQName(string(text))
	if err != nil {
		return err
	}
	*q = name
	return nil
}

// A Tag identifies the kind of schema construct a field was derived
// from.
type Tag int

const (
	Element Tag = iota
	Attribute
	Choice
	Any
	Attributes
	Text
	Elements
	Extension
)

var tagNames = [...]string{
	Element:    "Element",
	Attribute:  "Attribute",
	Choice:     "Choice",
	Any:        "Any",
	Attributes: "Attributes",
	Text:       "Text",
	Elements:   "Elements",
	Extension:  "Extension",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

// ParseTag looks up a Tag by its name. Matching is case-insensitive.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagNames {
		if strings.EqualFold(name, s) {
			return Tag(i), nil
		}
	}
	return -1, fmt.Errorf("unknown tag kind %q", s)
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tag) UnmarshalText(text []byte) error {
	tag, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// An Attr describes a single field of a Class. Attrs are produced by
// the schema front end, and are read-only to code generation.
type Attr struct {
	// The schema construct this field was derived from.
	Tag Tag `yaml:"tag" json:"tag"`
	// Local name of the element or attribute. Wildcards and
	// character data fields have no name.
	Name string `yaml:"name" json:"name"`
	// Namespace of the element or attribute, if any.
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	// Declared types of the field. The first type is the primary
	// one; a field with several declared types is a union.
	Types []QName `yaml:"types" json:"types"`
	// The alternatives of a choice group.
	Choices []Attr `yaml:"choices,omitempty" json:"choices,omitempty"`
	// Default is the lexical default value of the field, if the
	// schema provides one.
	Default *string `yaml:"default,omitempty" json:"default,omitempty"`
	// True if maxOccurs > 1 or maxOccurs == "unbounded"
	List bool `yaml:"list,omitempty" json:"list,omitempty"`
	// True if the field has a <list> simpleType, and is written
	// as whitespace-separated tokens.
	Tokens bool `yaml:"tokens,omitempty" json:"tokens,omitempty"`
	// True if the field collects arbitrary attributes.
	Dict bool `yaml:"dict,omitempty" json:"dict,omitempty"`
	// True if the element may carry xsi:nil.
	Nillable bool `yaml:"nillable,omitempty" json:"nillable,omitempty"`
	// True if minOccurs == 0, or use="optional".
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`
	// True if use="prohibited".
	Prohibited bool `yaml:"prohibited,omitempty" json:"prohibited,omitempty"`
	// True if the schema fixes the value of the field.
	Fixed bool `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	// True if the default value of the field must be constructed
	// by a factory rather than assigned.
	Factory bool `yaml:"factory,omitempty" json:"factory,omitempty"`
	// Annotation provided for this field by the schema author.
	Doc string `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// Type returns the primary declared type of the field. The zero
// QName is returned if the field has no declared types.
func (a *Attr) Type() QName {
	if len(a.Types) == 0 {
		return QName{}
	}
	return a.Types[0]
}

// Nameless returns true for fields that do not correspond to a
// named element or attribute.
func (a *Attr) Nameless() bool {
	switch a.Tag {
	case Any, Attributes, Text, Extension, Choice, Elements:
		return true
	}
	return a.Name == ""
}

// A Class is the enclosing context of a set of fields.
type Class struct {
	// The canonical name of the class.
	Name string `yaml:"name" json:"name"`
	// Target namespace of the class.
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	// Types this class extends.
	Extensions []QName `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	// Fields of the class, in declaration order.
	Attrs []Attr `yaml:"attrs" json:"attrs"`
	// Annotations provided by the schema author.
	Doc string `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// Attr looks up a field by name. Nil is returned if the class has no
// such field.
func (c *Class) Attr(name string) *Attr {
	for i := range c.Attrs {
		if c.Attrs[i].Name == name {
			return &c.Attrs[i]
		}
	}
	return nil
}
