package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/CognitoIQ/xsdmodel/internal/commandline"
	"github.com/CognitoIQ/xsdmodel/internal/gen"
	"github.com/CognitoIQ/xsdmodel/xsd"
	"github.com/CognitoIQ/xsdmodel/xsdgen"
)

type resolveParams struct {
	output             string
	pkg                string
	overrides          string
	rules              commandline.ReplaceRuleList
	elements           commandline.OverrideList
	genericCollections bool
	explicitOptional   bool
	positional         bool
	json               bool
	verbose            int
}

// A classDecl is the resolved declaration of a class.
type classDecl struct {
	Class   string      `json:"class"`
	Name    string      `json:"name"`
	Bases   []string    `json:"bases"`
	Fields  []fieldDecl `json:"fields"`
	Imports []string    `json:"imports"`

	doc    string
	fields []*ast.Field
}

type fieldDecl struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
}

func newResolveCmd() *cobra.Command {
	var params resolveParams
	resolveCmd := &cobra.Command{
		Use:   "resolve [flags] file ...",
		Short: "Declare the classes described in YAML files as Go types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := params.config(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var classes []xsd.Class
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return err
				}
				c, err := xsd.ReadClasses(data)
				if err != nil {
					return fmt.Errorf("%s: %v", filename, err)
				}
				classes = append(classes, c...)
			}
			decls, err := declare(cfg, xsd.SortClasses(classes))
			if err != nil {
				return err
			}

			var out []byte
			if params.json {
				out, err = json.MarshalIndent(decls, "", "  ")
				out = append(out, '\n')
			} else {
				out = listing(cfg, decls)
			}
			if err != nil {
				return err
			}
			if params.output == "" || params.output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(params.output, out, 0666)
		},
	}
	flags := resolveCmd.Flags()
	flags.StringVarP(&params.output, "output", "o", "", "file to write the output to, standard output if empty")
	flags.StringVar(&params.pkg, "pkg", "", "name of the generated package")
	flags.StringVar(&params.overrides, "overrides", "", "YAML file with type overrides")
	flags.VarP(&params.rules, "replace", "r", "replacement rule 'regex -> repl' (can be used multiple times)")
	flags.Var(&params.elements, "element", "Go type for elements with the given name (can be used multiple times)")
	flags.BoolVar(&params.genericCollections, "generic-collections", false, "declare attribute dictionaries as xsdtypes.Mapping")
	flags.BoolVar(&params.explicitOptional, "optional-wrapper", false, "declare optional fields as xsdtypes.Optional instead of pointers")
	flags.BoolVar(&params.positional, "positional", false, "treat fields without defaults as optional")
	flags.BoolVar(&params.json, "json", false, "write resolved fields as JSON")
	flags.CountVarP(&params.verbose, "verbose", "v", "log resolution decisions (repeat for more detail)")
	return resolveCmd
}

func (p *resolveParams) config(logOutput io.Writer) (*xsdgen.Config, error) {
	var cfg xsdgen.Config
	cfg.Option(xsdgen.DefaultOptions...)
	cfg.Option(
		xsdgen.LogOutput(log.New(logOutput, "", 0)),
		xsdgen.LogLevel(p.verbose),
		xsdgen.GenericCollections(p.genericCollections),
		xsdgen.UnionType(!p.explicitOptional),
		xsdgen.KeywordOnly(!p.positional),
	)
	if p.pkg != "" {
		cfg.Option(xsdgen.PackageName(p.pkg))
	}
	if p.overrides != "" {
		data, err := os.ReadFile(p.overrides)
		if err != nil {
			return nil, err
		}
		opts, err := xsdgen.LoadOverrides(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", p.overrides, err)
		}
		cfg.Option(opts...)
	}
	for _, r := range p.rules {
		cfg.Option(xsdgen.ReplaceRegexp(r.From, r.To))
	}
	for _, o := range p.elements {
		cfg.Option(xsdgen.OverrideElement(o.Name, o.Type))
	}
	return &cfg, nil
}

func declare(cfg *xsdgen.Config, classes []xsd.Class) ([]classDecl, error) {
	table := cfg.ImportTable()
	decls := make([]classDecl, 0, len(classes))
	for i := range classes {
		class := &classes[i]
		decl := classDecl{
			Class: class.Name,
			Name:  cfg.ClassName(class),
			doc:   class.Doc,
		}
		bases, err := cfg.ClassBases(class)
		if err != nil {
			return nil, err
		}
		decl.Bases = bases
		exprs := append([]string(nil), bases...)
		for j := range class.Attrs {
			attr := &class.Attrs[j]
			field, err := cfg.FieldDefinition(class, attr)
			if err != nil {
				return nil, err
			}
			typ := gen.ExprString(field.Type)
			decl.fields = append(decl.fields, field)
			decl.Fields = append(decl.Fields, fieldDecl{
				Name: cfg.FieldName(attr),
				Type: typ,
				Tag:  cfg.FieldTag(class, attr),
			})
			exprs = append(exprs, typ)
		}
		if decl.Imports, err = table.Imports(exprs...); err != nil {
			return nil, fmt.Errorf("%s: %v", class.Name, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// listing writes the declarations of classes as a plain text plan:
// the class identifier, its embedded bases and fields, and the
// imports its fields need.
func listing(cfg *xsdgen.Config, decls []classDecl) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %s\n", cfg.Package())
	for _, decl := range decls {
		buf.WriteString("\n")
		for _, line := range strings.Split(decl.doc, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(&buf, "// %s\n", line)
			}
		}
		fmt.Fprintf(&buf, "%s (%s)\n", decl.Name, decl.Class)
		for _, base := range decl.Bases {
			fmt.Fprintf(&buf, "\t%s\n", base)
		}
		for _, field := range decl.fields {
			if field.Doc != nil {
				for _, c := range field.Doc.List {
					fmt.Fprintf(&buf, "\t%s\n", c.Text)
				}
			}
			fmt.Fprintf(&buf, "\t%s\n", gen.FieldString(field))
		}
		for _, path := range decl.Imports {
			fmt.Fprintf(&buf, "\timport %q\n", path)
		}
	}
	return buf.Bytes()
}
