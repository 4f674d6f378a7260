package xsd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// A Document is the descriptor file written by a schema front end: the
// classes derived from one or more schema, in a stable order.
type Document struct {
	// Target namespace of the primary schema.
	TargetNS string  `yaml:"targetNamespace,omitempty" json:"targetNamespace,omitempty"`
	Classes  []Class `yaml:"classes" json:"classes"`
}

// ReadClasses decodes the classes from one or more YAML documents.
// Since YAML is a superset of JSON, JSON descriptor files are accepted
// as well. Every field must have a declared type unless it is a choice
// group or a prohibited field.
func ReadClasses(data []byte) ([]Class, error) {
	var result []Class
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	for {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		for _, c := range doc.Classes {
			if c.Namespace == "" {
				c.Namespace = doc.TargetNS
			}
			if err := checkClass(&c); err != nil {
				return nil, err
			}
			result = append(result, c)
		}
	}
	return result, nil
}

func checkClass(c *Class) error {
	if c.Name == "" {
		return errors.New("class with no name")
	}
	for i := range c.Attrs {
		if err := checkAttr(&c.Attrs[i]); err != nil {
			return fmt.Errorf("class %s: %v", c.Name, err)
		}
	}
	return nil
}

func checkAttr(a *Attr) error {
	if a.Tag == Choice {
		if len(a.Choices) == 0 {
			return fmt.Errorf("choice %s has no alternatives", a.Name)
		}
		for i := range a.Choices {
			if err := checkAttr(&a.Choices[i]); err != nil {
				return fmt.Errorf("choice %s: %v", a.Name, err)
			}
		}
		return nil
	}
	if len(a.Types) == 0 && !a.Prohibited {
		return fmt.Errorf("field %q has no declared type", a.Name)
	}
	return nil
}
