package xsdtypes

import (
	"reflect"

	"github.com/goccy/go-json"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// An Optional holds a value that may be absent. It is the explicit
// alternative to pointer fields for nillable and optional elements.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// Set stores v and marks the Optional as present.
func (o *Optional[T]) Set(v T) {
	o.Value = v
	o.Valid = true
}

// Clear marks the Optional as absent.
func (o *Optional[T]) Clear() {
	*o = Optional[T]{}
}

// MarshalJSON writes null for an absent value.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		o.Clear()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// UnmarshalText parses text as the lexical form of T. It allows
// Optional fields to be used as XML attributes and to carry defaults.
func (o *Optional[T]) UnmarshalText(text []byte) error {
	var v T
	if err := setText(reflect.ValueOf(&v).Elem(), string(text)); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// A Mapping collects arbitrary attributes by name.
type Mapping map[string]string

// Keys returns the names in the mapping, sorted.
func (m Mapping) Keys() []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Model is embedded in generated types that do not extend another
// type. It carries the configuration shared by all generated models.
type Model struct{}

// A ModelConfig describes how generated models are validated.
type ModelConfig struct {
	// Validation of nested types is deferred until first use.
	DeferBuild bool
	// Fields are populated by their Go name as well as their wire
	// name.
	PopulateByName bool
}

// ModelConfig returns the configuration of generated models.
func (Model) ModelConfig() ModelConfig {
	return ModelConfig{DeferBuild: true, PopulateByName: true}
}
