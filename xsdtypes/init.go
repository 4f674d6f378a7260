package xsdtypes

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// A FieldTag is the decoded form of the `field` struct tag written by
// xsdgen. The tag is a comma-separated list of key=value options;
// values containing separators are quoted Go strings. Keys without a
// value are boolean options set to true.
//
//	Status string `xml:"status,attr" field:"const=true,default=A01"`
//	Legacy any    `xml:"legacy,attr" field:"exclude=true,default=null"`
type FieldTag struct {
	// False if the field is not set by constructors.
	Init bool
	// The lexical default value, if HasDefault is true.
	Default    string
	HasDefault bool
	// True if the default is the null value.
	Null bool
	// "list" or "map" for fields whose default is a new
	// collection.
	DefaultFactory string
	// The lexical form of the initial items of a list factory, if
	// HasItems is true.
	Items    string
	HasItems bool
	// The field is excluded from construction and serialization.
	Exclude bool
	// The field always holds its default value.
	Const    bool
	Required bool
	Nillable bool
	Tokens   bool
}

// QuoteTagValue quotes s for use as an option value in a field tag,
// if necessary.
func QuoteTagValue(s string) string {
	if s == "" || s == "null" || strings.ContainsAny(s, ",\"= \t\r\n\\") {
		return strconv.Quote(s)
	}
	return s
}

// ParseFieldTag decodes a field tag.
func ParseFieldTag(tag string) (FieldTag, error) {
	ft := FieldTag{Init: true}
	for s := tag; s != ""; {
		var key, value string
		var hasValue, quoted bool

		i := strings.IndexAny(s, "=,")
		switch {
		case i < 0:
			key, s = s, ""
		case s[i] == ',':
			key, s = s[:i], s[i+1:]
		default:
			key, s = s[:i], s[i+1:]
			hasValue = true
			if strings.HasPrefix(s, `"`) {
				q, err := strconv.QuotedPrefix(s)
				if err != nil {
					return ft, fmt.Errorf("option %s: malformed quoted value %s", key, s)
				}
				value, _ = strconv.Unquote(q)
				quoted = true
				s = s[len(q):]
				if s != "" && s[0] != ',' {
					return ft, fmt.Errorf("option %s: unexpected %q after quoted value", key, s)
				}
				s = strings.TrimPrefix(s, ",")
			} else if j := strings.IndexByte(s, ','); j < 0 {
				value, s = s, ""
			} else {
				value, s = s[:j], s[j+1:]
			}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		flag := func() (bool, error) {
			if !hasValue {
				return true, nil
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return false, fmt.Errorf("option %s: %v", key, err)
			}
			return b, nil
		}
		var err error
		switch key {
		case "init":
			ft.Init, err = flag()
		case "default":
			if !hasValue {
				return ft, fmt.Errorf("option default has no value")
			}
			if value == "null" && !quoted {
				ft.Null = true
			} else {
				ft.Default, ft.HasDefault = value, true
			}
		case "default_factory":
			ft.DefaultFactory = value
		case "items":
			if !hasValue {
				return ft, fmt.Errorf("option items has no value")
			}
			ft.Items, ft.HasItems = value, true
		case "exclude":
			ft.Exclude, err = flag()
		case "const":
			ft.Const, err = flag()
		case "required":
			ft.Required, err = flag()
		case "nillable":
			ft.Nillable, err = flag()
		case "tokens":
			ft.Tokens, err = flag()
		default:
			return ft, fmt.Errorf("unknown field option %q", key)
		}
		if err != nil {
			return ft, err
		}
	}
	if ft.HasDefault && ft.DefaultFactory != "" {
		return ft, fmt.Errorf("default and default_factory are mutually exclusive")
	}
	if ft.HasItems && ft.DefaultFactory != "list" {
		return ft, fmt.Errorf("items requires default_factory=list")
	}
	return ft, nil
}

// Init applies the construction options in the `field` tags of the
// struct that v points to: zero fields receive their defaults or
// default collections, constant fields are set to their fixed value,
// and excluded fields are cleared. Embedded structs without a field
// tag are initialized recursively.
func Init(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("xsdtypes: Init called with %T, not a pointer to a struct", v)
	}
	return initStruct(rv.Elem())
}

func initStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)
		tag, ok := sf.Tag.Lookup("field")
		if !ok {
			if sf.Anonymous && fv.Kind() == reflect.Struct {
				if err := initStruct(fv); err != nil {
					return err
				}
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		ft, err := ParseFieldTag(tag)
		if err != nil {
			return fmt.Errorf("%s.%s: %v", t.Name(), sf.Name, err)
		}
		if err := ft.apply(fv); err != nil {
			return fmt.Errorf("%s.%s: %v", t.Name(), sf.Name, err)
		}
	}
	return nil
}

func (ft FieldTag) apply(v reflect.Value) error {
	switch {
	case ft.Exclude:
		v.Set(reflect.Zero(v.Type()))
	case ft.HasDefault:
		if ft.Const || v.IsZero() {
			return setText(v, ft.Default)
		}
	case ft.DefaultFactory != "":
		if !v.IsZero() {
			return nil
		}
		switch ft.DefaultFactory {
		case "list":
			if v.Kind() != reflect.Slice {
				return fmt.Errorf("default_factory=list on %s field", v.Type())
			}
			if ft.HasItems {
				return setText(v, ft.Items)
			}
			v.Set(reflect.MakeSlice(v.Type(), 0, 0))
		case "map":
			if v.Kind() != reflect.Map {
				return fmt.Errorf("default_factory=map on %s field", v.Type())
			}
			v.Set(reflect.MakeMap(v.Type()))
		default:
			return fmt.Errorf("unknown default_factory %q", ft.DefaultFactory)
		}
	}
	return nil
}

// setText parses s, the lexical form of a value, into v.
func setText(v reflect.Value, s string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(s))
		}
	}
	switch v.Kind() {
	case reflect.Ptr:
		p := reflect.New(v.Type().Elem())
		if err := setText(p.Elem(), s); err != nil {
			return err
		}
		v.Set(p)
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			v.SetBytes([]byte(s))
			return nil
		}
		fields := strings.Fields(s)
		list := reflect.MakeSlice(v.Type(), len(fields), len(fields))
		for i, f := range fields {
			if err := setText(list.Index(i), f); err != nil {
				return err
			}
		}
		v.Set(list)
	case reflect.Interface:
		if v.NumMethod() != 0 {
			return fmt.Errorf("cannot assign %q to %s", s, v.Type())
		}
		v.Set(reflect.ValueOf(s))
	default:
		return fmt.Errorf("cannot assign %q to %s", s, v.Type())
	}
	return nil
}
