// Package commandline contains helper types for collecting
// command-line arguments. The types implement the pflag.Value
// interface.
package commandline // import "github.com/CognitoIQ/xsdmodel/internal/commandline"

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// A ReplaceRule maps a pattern to its replacement. On the
// command line, ReplaceRules are provided as strings separated
// by "->".
type ReplaceRule struct {
	From *regexp.Regexp
	To   string
}

// A ReplaceRuleList is used to collect multiple replacement rules
// from the command line.
type ReplaceRuleList []ReplaceRule

func (r *ReplaceRuleList) String() string {
	var buf bytes.Buffer
	for _, item := range *r {
		fmt.Fprintf(&buf, "%s -> %s\n", item.From, item.To)
	}
	return buf.String()
}

// Set adds a replacement rule to the ReplaceRuleList, in the order
// provided on the command line.
func (r *ReplaceRuleList) Set(s string) error {
	parts := strings.SplitN(s, "->", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid replace rule %q. must be \"regex -> replacement\"", s)
	}
	parts[0] = strings.TrimSpace(parts[0])
	parts[1] = strings.TrimSpace(parts[1])
	reg, err := regexp.Compile(parts[0])
	if err != nil {
		return fmt.Errorf("invalid regex %q: %v", parts[0], err)
	}
	*r = append(*r, ReplaceRule{reg, parts[1]})
	return nil
}

func (r *ReplaceRuleList) Type() string { return "rule" }

// An Override maps an element name to a Go type.
type Override struct {
	Name, Type string
}

// An OverrideList collects type overrides given on the command line
// as "name=type", in the order provided.
type OverrideList []Override

func (o *OverrideList) String() string {
	parts := make([]string, 0, len(*o))
	for _, item := range *o {
		parts = append(parts, item.Name+"="+item.Type)
	}
	return strings.Join(parts, ",")
}

func (o *OverrideList) Set(s string) error {
	name, typ, ok := strings.Cut(s, "=")
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	if !ok || name == "" || typ == "" {
		return fmt.Errorf("invalid override %q. must be \"name=type\"", s)
	}
	*o = append(*o, Override{name, typ})
	return nil
}

func (o *OverrideList) Type() string { return "name=type" }

// The Strings type can be used to collect multiple command-line options,
// in the order provided.
type Strings []string

func (s *Strings) String() string {
	return strings.Join(*s, ",")
}

func (s *Strings) Set(val string) error {
	*s = append(*s, val)
	return nil
}

func (s *Strings) Type() string { return "strings" }
