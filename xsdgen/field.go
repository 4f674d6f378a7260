package xsdgen

import (
	"encoding/xml"
	"fmt"
	"go/ast"
	"strings"

	"github.com/CognitoIQ/xsdmodel/internal/gen"
	"github.com/CognitoIQ/xsdmodel/xsd"
	"github.com/CognitoIQ/xsdmodel/xsdtypes"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FieldOptions describe how a field is constructed. They are
// rendered into the `field` struct tag read by xsdtypes.Init.
type FieldOptions struct {
	// If non-nil, whether the field is set by constructors.
	Init *bool
	// The default value, in its lexical form.
	Default *string
	// The default value is the null value.
	DefaultNull bool
	// "list" or "map" for fields that default to a new
	// collection. Mutually exclusive with Default and DefaultNull.
	DefaultFactory string
	// The lexical form of the initial items of a list factory.
	Items *string
	// Information about the field that does not affect its
	// construction, such as its wire name.
	Metadata map[string]string
	// Names used when serializing and validating the field, if
	// they differ from its Go name.
	SerializationAlias string
	ValidationAlias    string
	// The field is excluded from construction and serialization.
	Exclude bool
	// The field always holds its fixed value.
	Const bool
}

// A Default is the computed default value of a field.
type Default struct {
	// "list" or "map" if the default is a new collection.
	Factory string
	// The default is the null value.
	Null bool
	// The lexical default value, otherwise. For a list factory,
	// the initial items of the list.
	Value string
}

// DefaultValue computes the default value of a field. It returns
// false if the field has no default, and must be given to
// constructors. Dictionaries and lists always default to a new
// collection. A factory-style token list with a default value
// defaults to a new list holding the default tokens.
func (cfg *Config) DefaultValue(attr *xsd.Attr) (Default, bool) {
	switch {
	case attr.Dict:
		return Default{Factory: "map"}, true
	case attr.List || (attr.Tokens && attr.Default == nil):
		return Default{Factory: "list"}, true
	case attr.Tokens && attr.Factory:
		return Default{Factory: "list", Value: *attr.Default}, true
	case attr.Default == nil:
		if cfg.keywordOnly && !attr.Optional {
			return Default{}, false
		}
		return Default{Null: true}, true
	}
	if attr.Factory {
		cfg.debugf("%s: single value default %q is not a factory", attr.Name, *attr.Default)
	}
	return Default{Value: *attr.Default}, true
}

// FieldOptions returns the construction options of a field.
// Fixed and prohibited fields are not set by constructors, and
// prohibited fields are always null.
func (cfg *Config) FieldOptions(class *xsd.Class, attr *xsd.Attr) FieldOptions {
	var opts FieldOptions
	if attr.Fixed || attr.Prohibited {
		opts.Init = new(bool)
		if attr.Prohibited {
			opts.DefaultNull = true
		}
	}
	if d, ok := cfg.DefaultValue(attr); ok && !attr.Prohibited {
		switch {
		case d.Factory != "":
			opts.DefaultFactory = d.Factory
			if d.Value != "" {
				opts.Items = &d.Value
			}
		case d.Null:
			opts.DefaultNull = true
		default:
			opts.Default = &d.Value
		}
	}
	if md := cfg.fieldMetadata(class, attr); len(md) > 0 {
		opts.Metadata = md
		if name, ok := md["name"]; ok {
			opts.SerializationAlias = name
			opts.ValidationAlias = name
		}
	}
	opts.Exclude = attr.Prohibited
	opts.Const = attr.Fixed && !attr.Prohibited
	return opts
}

func (cfg *Config) fieldMetadata(class *xsd.Class, attr *xsd.Attr) map[string]string {
	md := make(map[string]string)
	if !attr.Nameless() && attr.Name != cfg.FieldName(attr) {
		md["name"] = attr.Name
	}
	if attr.Tag != xsd.Element {
		md["type"] = attr.Tag.String()
	}
	var parent string
	if class != nil {
		parent = class.Namespace
	}
	if attr.Namespace != "" && (attr.Namespace != parent || attr.Tag == xsd.Attribute) {
		md["namespace"] = attr.Namespace
	}
	if cfg.isRequired(attr) {
		md["required"] = "true"
	}
	if attr.Nillable {
		md["nillable"] = "true"
	}
	if attr.Tokens {
		md["tokens"] = "true"
	}
	return md
}

func (cfg *Config) isRequired(attr *xsd.Attr) bool {
	switch attr.Tag {
	case xsd.Element, xsd.Attribute:
	default:
		return false
	}
	return !attr.Optional && !attr.Nillable && !attr.Prohibited && !attr.List && attr.Default == nil
}

// FieldName returns the Go identifier of a field. Fields that do not
// correspond to a named element or attribute are named after their
// role.
func (cfg *Config) FieldName(attr *xsd.Attr) string {
	switch attr.Tag {
	case xsd.Text, xsd.Extension:
		return "Value"
	case xsd.Attributes:
		return "Attrs"
	case xsd.Any, xsd.Elements:
		if attr.List {
			return "Items"
		}
		return "Item"
	}
	name := cfg.public(xml.Name{Space: attr.Namespace, Local: attr.Name})
	if name == "" {
		if attr.Tag == xsd.Choice {
			return "Choice"
		}
		return "Value"
	}
	return gen.Sanitize(name)
}

// ClassName returns the Go identifier of a class.
func (cfg *Config) ClassName(class *xsd.Class) string {
	return cfg.public(xml.Name{Space: class.Namespace, Local: class.Name})
}

// FieldTag returns the struct tag of a field. The xml and json keys
// carry its wire name, and the field key carries its construction
// options.
func (cfg *Config) FieldTag(class *xsd.Class, attr *xsd.Attr) string {
	opts := cfg.FieldOptions(class, attr)

	var tag gen.Tag
	if opts.Exclude {
		tag.Set("xml", "-").Set("json", "-")
	} else {
		tag.Set("xml", xmlTag(attr))
		if opts.SerializationAlias != "" {
			json := opts.SerializationAlias
			if attr.Optional {
				json += ",omitempty"
			}
			tag.Set("json", json)
		}
	}
	tag.Set("field", opts.render())
	return tag.String()
}

func xmlTag(attr *xsd.Attr) string {
	var s string
	switch attr.Tag {
	case xsd.Attribute:
		s = attr.Name + ",attr"
		if attr.Namespace != "" {
			s = attr.Namespace + " " + s
		}
	case xsd.Text, xsd.Extension:
		s = ",chardata"
	case xsd.Attributes:
		s = ",any,attr"
	case xsd.Any, xsd.Elements, xsd.Choice:
		s = ",any"
	default:
		s = attr.Name
		if attr.Namespace != "" {
			s = attr.Namespace + " " + s
		}
	}
	if attr.Optional && attr.Tag != xsd.Text {
		s += ",omitempty"
	}
	return s
}

// render writes the options in the syntax parsed by
// xsdtypes.ParseFieldTag. Metadata other than the required, nillable
// and tokens flags is carried by the xml and json keys.
func (opts FieldOptions) render() string {
	var parts []string
	if opts.Init != nil && !*opts.Init {
		parts = append(parts, "init=false")
	}
	switch {
	case opts.DefaultFactory != "":
		parts = append(parts, "default_factory="+xsdtypes.QuoteTagValue(opts.DefaultFactory))
		if opts.Items != nil {
			parts = append(parts, "items="+xsdtypes.QuoteTagValue(*opts.Items))
		}
	case opts.DefaultNull:
		parts = append(parts, "default=null")
	case opts.Default != nil:
		parts = append(parts, "default="+xsdtypes.QuoteTagValue(*opts.Default))
	}
	for _, key := range []string{"required", "nillable", "tokens"} {
		if opts.Metadata[key] == "true" {
			parts = append(parts, key)
		}
	}
	s := strings.Join(parts, ",")

	if opts.Exclude {
		s = strings.Replace(s, "init=false", "exclude=true", 1)
	} else if opts.Const {
		s = strings.Replace(s, "init=false", "const=true", 1)
	}
	return s
}

// String returns the options in a stable, human-readable form, with
// metadata keys in sorted order.
func (opts FieldOptions) String() string {
	var parts []string
	if r := opts.render(); r != "" {
		parts = append(parts, r)
	}
	keys := maps.Keys(opts.Metadata)
	slices.Sort(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, xsdtypes.QuoteTagValue(opts.Metadata[k])))
	}
	if opts.SerializationAlias != "" {
		parts = append(parts, "alias="+xsdtypes.QuoteTagValue(opts.SerializationAlias))
	}
	return strings.Join(parts, " ")
}

// FieldDefinition returns the declaration of a field as a struct
// field.
func (cfg *Config) FieldDefinition(class *xsd.Class, attr *xsd.Attr) (*ast.Field, error) {
	var owner string
	if class != nil {
		owner = class.Name
	}
	typ, err := cfg.FieldType(class, attr)
	if err != nil {
		return nil, fmt.Errorf("%s field %s: %w", owner, attr.Name, err)
	}
	field, err := gen.Field(cfg.FieldName(attr), typ, cfg.FieldTag(class, attr))
	if err != nil {
		return nil, fmt.Errorf("%s field %s: %v", owner, attr.Name, err)
	}
	if attr.Doc != "" {
		field.Doc = gen.CommentGroup(attr.Doc)
	}
	return field, nil
}
