package xsdgen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/CognitoIQ/xsdmodel/internal/gen"
	"github.com/CognitoIQ/xsdmodel/xsd"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/ast/astutil"
)

// Symbols declared by the runtime package that generated code may
// reference.
var runtimeSymbols = []string{
	"DateTime",
	"Duration",
	"Init",
	"Mapping",
	"MinuteDateTime",
	"Model",
	"Optional",
}

// An ImportTable resolves the qualified identifiers used in generated
// code, such as xsdtypes.Duration, to the import path of the package
// that declares them.
type ImportTable struct {
	paths map[string]string
}

// ImportTable returns the imports known to the Config: the standard
// library packages used by the built-in types, and the packages
// registered with the Import option.
func (cfg *Config) ImportTable() *ImportTable {
	t := &ImportTable{paths: map[string]string{
		"time": "time",
		"xml":  "encoding/xml",
	}}
	for name, path := range cfg.imports {
		t.paths[name] = path
	}
	return t
}

// Resolve returns the import path of the package declaring a
// qualified identifier.
func (t *ImportTable) Resolve(symbol string) (string, error) {
	pkg, name, ok := strings.Cut(symbol, ".")
	if !ok || pkg == "" || name == "" {
		return "", fmt.Errorf("%q is not a qualified identifier", symbol)
	}
	path, ok := t.paths[pkg]
	if !ok {
		return "", fmt.Errorf("no import registered for package %s, needed by %s", pkg, symbol)
	}
	if path == RuntimePackage && !slices.Contains(runtimeSymbols, name) {
		return "", fmt.Errorf("%s is not declared in %s", name, path)
	}
	return path, nil
}

// Imports returns the sorted import paths needed by a set of Go
// expressions.
func (t *ImportTable) Imports(exprs ...string) ([]string, error) {
	set := make(map[string]struct{})
	for _, s := range exprs {
		expr, err := gen.TypeExpr(s)
		if err != nil {
			return nil, err
		}
		for _, sym := range gen.Selectors(expr) {
			path, err := t.Resolve(sym)
			if err != nil {
				return nil, err
			}
			set[path] = struct{}{}
		}
	}
	paths := maps.Keys(set)
	slices.Sort(paths)
	return paths, nil
}

// AddImports adds the imports needed by a set of Go expressions to
// file.
func (t *ImportTable) AddImports(fset *token.FileSet, file *ast.File, exprs ...string) error {
	paths, err := t.Imports(exprs...)
	if err != nil {
		return err
	}
	for _, path := range paths {
		astutil.AddImport(fset, file, path)
	}
	return nil
}

// ClassBases returns the types embedded in the Go declaration of a
// class: the types it extends, or xsdtypes.Model if it extends none.
func (cfg *Config) ClassBases(class *xsd.Class) ([]string, error) {
	if len(class.Extensions) == 0 {
		return []string{"xsdtypes.Model"}, nil
	}
	base := cfg.baseResolver()
	result := make([]string, 0, len(class.Extensions))
	for _, ext := range class.Extensions {
		name, err := base.TypeName(class, ext)
		if err != nil {
			return nil, fmt.Errorf("%s base type %s: %w", class.Name, ext, err)
		}
		result = append(result, name)
	}
	return result, nil
}

// Filters is the set of decisions a code generation pipeline
// delegates when declaring classes. *Config implements Filters.
type Filters interface {
	FieldType(class *xsd.Class, attr *xsd.Attr) (string, error)
	FieldOptions(class *xsd.Class, attr *xsd.Attr) FieldOptions
	ClassBases(class *xsd.Class) ([]string, error)
	ImportTable() *ImportTable
}

var _ Filters = (*Config)(nil)
