package xsdtypes

import (
	"reflect"
	"sync"
)

// Mode selects the representation produced by Codec.Serialize.
type Mode int

const (
	// Document mode produces the external textual representation,
	// as written to JSON or XML documents.
	Document Mode = iota
	// Native mode produces a Go value suitable for in-memory
	// structure dumps. It may lose information.
	Native
)

func (m Mode) String() string {
	if m == Native {
		return "native"
	}
	return "document"
}

// A Schema describes the external representation of a scalar type
// to interface documentation, such as JSON schema.
type Schema struct {
	Type        string `json:"type"`
	Format      string `json:"format,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Description string `json:"description,omitempty"`
}

// A Codec converts between the external representation of a scalar
// type and its normalized value. Codecs are safe for concurrent use.
type Codec interface {
	// Schema describes the external representation.
	Schema() Schema
	// Validate converts external input, or an already-normalized
	// value, to the normalized value.
	Validate(v interface{}) (interface{}, error)
	// Serialize converts a normalized value to its external
	// representation in the given mode.
	Serialize(v interface{}, mode Mode) (interface{}, error)
}

var registry = struct {
	sync.RWMutex
	codecs map[reflect.Type]Codec
}{codecs: make(map[reflect.Type]Codec)}

// Register associates a Codec with a Go type. Registering a type
// twice replaces the previous codec.
func Register(t reflect.Type, c Codec) {
	registry.Lock()
	defer registry.Unlock()
	registry.codecs[t] = c
}

// Lookup returns the Codec registered for a type. Pointer types are
// looked up by their element type.
func Lookup(t reflect.Type) (Codec, bool) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	registry.RLock()
	defer registry.RUnlock()
	c, ok := registry.codecs[t]
	return c, ok
}

// CodecFor returns the Codec registered for the dynamic type of v.
func CodecFor(v interface{}) (Codec, bool) {
	return Lookup(reflect.TypeOf(v))
}

func init() {
	Register(reflect.TypeOf(DateTime{}), DateTimeCodec)
	Register(reflect.TypeOf(MinuteDateTime{}), MinuteDateTimeCodec)
	Register(reflect.TypeOf(Duration{}), DurationCodec)
}
