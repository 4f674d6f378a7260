package xsdgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/CognitoIQ/xsdmodel/xsd"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// The format of an override file.
type overrideFile struct {
	// Remove all overrides configured before the file is loaded.
	Clear bool `yaml:"clear"`
	// element name -> Go type
	Elements map[string]string `yaml:"elements"`
	Tags     []struct {
		Tag  xsd.Tag `yaml:"tag"`
		Name string  `yaml:"name"`
		Type string  `yaml:"type"`
	} `yaml:"tags"`
	// declared type, in Clark notation -> Go type
	Types map[string]string `yaml:"types"`
	// package name -> import path
	Imports map[string]string `yaml:"imports"`
}

// LoadOverrides reads type overrides from a YAML document, such as
//
//	clear: true
//	elements:
//	  createdDateTime: xsdtypes.DateTime
//	tags:
//	  - {tag: Attribute, name: version, type: string}
//	types:
//	  "{http://www.w3.org/2001/XMLSchema}duration": xsdtypes.Duration
//	imports:
//	  esmp: example.com/esmp
//
// The returned options are applied in a stable order: clearing
// first, then imports, element, tag and type overrides.
func LoadOverrides(data []byte) ([]Option, error) {
	var file overrideFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse overrides: %v", err)
	}

	var opts []Option
	if file.Clear {
		opts = append(opts, ClearOverrides())
	}
	for _, name := range sortedKeys(file.Imports) {
		opts = append(opts, Import(name, file.Imports[name]))
	}
	for _, name := range sortedKeys(file.Elements) {
		opts = append(opts, OverrideElement(name, file.Elements[name]))
	}
	for _, t := range file.Tags {
		if t.Name == "" || t.Type == "" {
			return nil, fmt.Errorf("override for %s %q: name and type are required", t.Tag, t.Name)
		}
		opts = append(opts, OverrideTag(t.Tag, t.Name, t.Type))
	}
	for _, s := range sortedKeys(file.Types) {
		qname, err := xsd.ParseQName(s)
		if err != nil {
			return nil, fmt.Errorf("type override %q: %v", s, err)
		}
		opts = append(opts, OverrideType(qname, file.Types[s]))
	}
	return opts, nil
}

func sortedKeys(m map[string]string) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
