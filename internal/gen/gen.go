// Package gen provides functions for generating go source code
//
// The gen package provides wrapper functions around the go/ast and
// go/token packages to reduce boilerplate.
package gen

import (
	"bufio"
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// Sanitize modifies any names that are reserved in
// Go, so that they may be used as identifiers without
// causing a syntax error.
func Sanitize(name string) string {
	switch name {
	case "break", "default", "func", "interface", "select",
		"case", "defer", "go", "map", "struct",
		"chan", "else", "goto", "package", "switch",
		"const", "fallthrough", "if", "range", "type",
		"continue", "for", "import", "return", "var":
		return name + "_"
	}
	return name
}

// String generates a literal string. If the string contains a double
// quote, backticks are used for quoting instead.
func String(s string) *ast.BasicLit {
	if strings.Contains(s, "\"") && !strings.Contains(s, "`") {
		return &ast.BasicLit{Kind: token.STRING, Value: "`" + s + "`"}
	}
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

// TypeExpr parses a Go type expression. Generic instantiations such
// as Optional[int] are accepted.
func TypeExpr(s string) (ast.Expr, error) {
	expr, err := parser.ParseExpr(s)
	if err != nil {
		return nil, fmt.Errorf("could not parse type %q: %v", s, err)
	}
	return expr, nil
}

// Field creates a struct field. Tag may be empty, in which case the
// field has no tag. An empty name creates an embedded field.
func Field(name, typ, tag string) (*ast.Field, error) {
	expr, err := TypeExpr(typ)
	if err != nil {
		return nil, err
	}
	field := &ast.Field{Type: expr}
	if name != "" {
		field.Names = []*ast.Ident{ast.NewIdent(name)}
	}
	if tag != "" {
		field.Tag = String(tag)
	}
	return field, nil
}

// CommentGroup creates a comment group from strings.
func CommentGroup(comments ...string) *ast.CommentGroup {
	var group ast.CommentGroup
	for _, v := range comments {
		line := bufio.NewScanner(strings.NewReader(v))
		for line.Scan() {
			group.List = append(group.List, &ast.Comment{
				Text: "// " + strings.TrimSpace(line.Text()),
			})
		}
	}
	return &group
}

// ExprString converts an ast.Expr to the Go source it represents.
func ExprString(expr ast.Expr) string {
	var buf bytes.Buffer
	fs := token.NewFileSet()
	printer.Fprint(&buf, fs, expr)
	return buf.String()
}

// FieldString converts a struct field to a single line of Go source.
func FieldString(field *ast.Field) string {
	var buf bytes.Buffer
	for i, name := range field.Names {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(name.Name)
	}
	if len(field.Names) > 0 {
		buf.WriteByte(' ')
	}
	buf.WriteString(ExprString(field.Type))
	if field.Tag != nil {
		buf.WriteByte(' ')
		buf.WriteString(field.Tag.Value)
	}
	return buf.String()
}

// TagKey gets the struct tag item with the
// given key.
func TagKey(field *ast.Field, key string) string {
	if field.Tag == nil {
		return ""
	}
	tag, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(tag).Get(key)
}

// A Tag builds a struct tag from key/value pairs, preserving the
// order in which they were added. Empty values are dropped.
type Tag struct {
	keys, values []string
}

// Set adds or replaces a key in the tag.
func (t *Tag) Set(key, value string) *Tag {
	for i, k := range t.keys {
		if k == key {
			t.values[i] = value
			return t
		}
	}
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
	return t
}

func (t *Tag) String() string {
	var parts []string
	for i, k := range t.keys {
		if t.values[i] == "" {
			continue
		}
		parts = append(parts, k+":"+strconv.Quote(t.values[i]))
	}
	return strings.Join(parts, " ")
}

// Selectors returns the qualified identifiers (such as xml.Name)
// referenced in a type expression, in order of appearance.
func Selectors(expr ast.Expr) []string {
	var result []string
	seen := make(map[string]bool)
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		s := id.Name + "." + sel.Sel.Name
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
		return false
	})
	return result
}
