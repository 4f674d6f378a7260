package xsdgen

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/CognitoIQ/xsdmodel/internal/gen"
	"github.com/CognitoIQ/xsdmodel/xsd"
)

// RuntimePackage is the import path of the package that defines the
// custom scalar types and helpers referenced by generated code.
const RuntimePackage = "github.com/CognitoIQ/xsdmodel/xsdtypes"

// A Config holds user-defined overrides that are used when resolving
// the Go declarations of fields derived from an xsd document.
type Config struct {
	logger   Logger
	loglevel int
	pkgname  string
	// Name-based overrides, consulted after the base resolver.
	tagTypes map[tagName]string
	// Overrides keyed by the primary declared type of a field.
	// They are applied after, and win over, name-based overrides.
	declaredTypes map[xsd.QName]string
	// Fields without a default must be given by name.
	keywordOnly bool
	// Use xsdtypes.Mapping for attribute dictionaries.
	genericCollections bool
	// Optional fields are pointers rather than xsdtypes.Optional.
	unionType bool
	// fmt template applied to the element type of lists.
	iterableFormat string
	base           BaseResolver
	// package name -> import path
	imports map[string]string
	// Transform for names
	nameTransform func(xml.Name) xml.Name
}

type tagName struct {
	tag  xsd.Tag
	name string
}

func (cfg *Config) errorf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// DefaultOptions are the default options for resolving fields. They
// map the date-time elements of IEC 62325 market documents and every
// xsd:duration field to the custom scalar types of the xsdtypes
// package, and require fields without defaults to be given by name.
var DefaultOptions = []Option{
	Replace(`[._ \s-]`, ""),
	PackageName("model"),
	KeywordOnly(true),
	UnionType(true),
	IterableFormat("[]%s"),
	Import("xsdtypes", RuntimePackage),
	OverrideElement("createdDateTime", "xsdtypes.DateTime"),
	OverrideElement("start", "xsdtypes.MinuteDateTime"),
	OverrideElement("end", "xsdtypes.MinuteDateTime"),
	OverrideType(xsd.Duration.Name(), "xsdtypes.Duration"),
}

// The Option method is used to configure an existing configuration.
// The return value of the Option method can be used to revert the
// final option to its previous setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// Types implementing the Logger interface can receive
// debug information from the resolution process.
// The Logger interface is implemented by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// LogOutput specifies an optional Logger for warnings and debug
// information about the resolution process.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the error log
// configured with the LogOutput option. The level parameter should
// be a positive integer between 1 and 5, with 5 providing the greatest
// verbosity.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// PackageName specifies the name of the generated Go
// package.
func PackageName(name string) Option {
	return func(cfg *Config) Option {
		prev := cfg.pkgname
		cfg.pkgname = name
		return PackageName(prev)
	}
}

// OverrideTag substitutes the Go type typ for fields with the given
// tag kind and local name. An empty typ removes the override. Types
// that are not valid Go type expressions are logged and ignored.
func OverrideTag(tag xsd.Tag, name, typ string) Option {
	return func(cfg *Config) Option {
		key := tagName{tag, name}
		prev, ok := cfg.tagTypes[key]
		if !cfg.validType(typ) {
			return OverrideTag(tag, name, prev)
		}
		if typ == "" {
			delete(cfg.tagTypes, key)
		} else {
			if cfg.tagTypes == nil {
				cfg.tagTypes = make(map[tagName]string)
			}
			cfg.tagTypes[key] = typ
		}
		if !ok {
			prev = ""
		}
		return OverrideTag(tag, name, prev)
	}
}

// OverrideElement substitutes the Go type typ for elements with the
// given local name.
func OverrideElement(name, typ string) Option {
	return OverrideTag(xsd.Element, name, typ)
}

// OverrideType substitutes the Go type typ for all fields whose
// primary declared type is qname, regardless of their name. Type
// overrides take precedence over OverrideTag. An empty typ removes
// the override.
func OverrideType(qname xsd.QName, typ string) Option {
	return func(cfg *Config) Option {
		prev, ok := cfg.declaredTypes[qname]
		if !cfg.validType(typ) {
			return OverrideType(qname, prev)
		}
		if typ == "" {
			delete(cfg.declaredTypes, qname)
		} else {
			if cfg.declaredTypes == nil {
				cfg.declaredTypes = make(map[xsd.QName]string)
			}
			cfg.declaredTypes[qname] = typ
		}
		if !ok {
			prev = ""
		}
		return OverrideType(qname, prev)
	}
}

func (cfg *Config) validType(typ string) bool {
	if typ == "" {
		return true
	}
	if _, err := gen.TypeExpr(typ); err != nil {
		cfg.errorf("ignoring type override: %v", err)
		return false
	}
	return true
}

// ClearOverrides removes all OverrideTag and OverrideType rules.
func ClearOverrides() Option {
	return func(cfg *Config) Option {
		tags, types := cfg.tagTypes, cfg.declaredTypes
		cfg.tagTypes, cfg.declaredTypes = nil, nil
		return restoreOverrides(tags, types)
	}
}

func restoreOverrides(tags map[tagName]string, types map[xsd.QName]string) Option {
	return func(cfg *Config) Option {
		prevTags, prevTypes := cfg.tagTypes, cfg.declaredTypes
		cfg.tagTypes, cfg.declaredTypes = tags, types
		return restoreOverrides(prevTags, prevTypes)
	}
}

// KeywordOnly declares that generated types are constructed with
// every field given by name. When it is false, fields without a
// default value are optional.
func KeywordOnly(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.keywordOnly
		cfg.keywordOnly = on
		return KeywordOnly(prev)
	}
}

// GenericCollections declares attribute dictionaries as
// xsdtypes.Mapping instead of map[string]string.
func GenericCollections(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.genericCollections
		cfg.genericCollections = on
		return GenericCollections(prev)
	}
}

// UnionType declares optional fields as pointers, which are either
// nil or hold a value. When it is false, optional fields use the
// explicit xsdtypes.Optional wrapper.
func UnionType(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.unionType
		cfg.unionType = on
		return UnionType(prev)
	}
}

// IterableFormat sets the fmt template used to declare repeated
// fields, such as "[]%s". The template must contain exactly one %s
// verb.
func IterableFormat(format string) Option {
	return func(cfg *Config) Option {
		prev := cfg.iterableFormat
		cfg.iterableFormat = format
		return IterableFormat(prev)
	}
}

// BaseTypes replaces the resolver used to map declared xsd types to
// Go types. A nil BaseResolver restores the default, which maps
// built-in types to Go types and all other types to exported
// identifiers.
func BaseTypes(r BaseResolver) Option {
	return func(cfg *Config) Option {
		prev := cfg.base
		cfg.base = r
		return BaseTypes(prev)
	}
}

// Import registers the import path of a package referenced by type
// overrides. The name is the package name used in type expressions,
// such as "xsdtypes" in "xsdtypes.Duration". An empty path removes
// the registration.
func Import(name, path string) Option {
	return func(cfg *Config) Option {
		prev := cfg.imports[name]
		if path == "" {
			delete(cfg.imports, name)
		} else {
			if cfg.imports == nil {
				cfg.imports = make(map[string]string)
			}
			cfg.imports[name] = path
		}
		return Import(name, prev)
	}
}

// Replace allows for substitution rules for all identifiers to
// be specified. If an invalid regular expression is called, no action
// is taken. The Replace option is additive; subsitutions will be
// applied in the order that each option was applied in.
func Replace(pat, repl string) Option {
	reg, err := regexp.Compile(pat)

	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		return replaceNameTransform(func(name xml.Name) xml.Name {
			if prev != nil {
				name = prev(name)
			}
			if err != nil {
				cfg.logf("Invalid regex %q passed to Replace", pat)
				return name
			}
			r := reg.ReplaceAllString(name.Local, repl)
			if r != name.Local {
				cfg.debugf("changed name %s -> %s", name.Local, r)
			}
			name.Local = r
			return name
		})(cfg)
	}
}

// ReplaceRegexp is like Replace, for a compiled pattern.
func ReplaceRegexp(reg *regexp.Regexp, repl string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		return replaceNameTransform(func(name xml.Name) xml.Name {
			if prev != nil {
				name = prev(name)
			}
			s := reg.ReplaceAllString(name.Local, repl)
			if s != name.Local {
				cfg.debugf("changed %s -> %s", name.Local, s)
			}
			name.Local = s
			return name
		})(cfg)
	}
}

func replaceNameTransform(fn func(xml.Name) xml.Name) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		cfg.nameTransform = fn
		return replaceNameTransform(prev)
	}
}

// Package returns the name of the generated Go package.
func (cfg *Config) Package() string {
	if cfg.pkgname == "" {
		return "model"
	}
	return cfg.pkgname
}

func (cfg *Config) iterable(typ string) string {
	format := cfg.iterableFormat
	if format == "" {
		format = "[]%s"
	}
	return strings.Replace(format, "%s", typ, 1)
}

func (cfg *Config) baseResolver() BaseResolver {
	if cfg.base != nil {
		return cfg.base
	}
	return builtinResolver{cfg}
}

// public returns the exported Go identifier for an xml name.
func (cfg *Config) public(name xml.Name) string {
	if cfg.nameTransform != nil {
		name = cfg.nameTransform(name)
	}
	if name.Local == "" {
		return ""
	}
	return strings.ToUpper(name.Local[:1]) + name.Local[1:]
}
