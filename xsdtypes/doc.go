// Package xsdtypes provides the run-time types referenced by code
// generated with xsdgen.
//
// Some XML schema types cannot be expressed faithfully by the Go
// built-in types. The xsdtypes package declares custom scalar types
// for them: DateTime and MinuteDateTime, which accept exactly one
// fixed textual date-time format each, and Duration, which keeps the
// components of an xsd:duration value intact instead of collapsing
// them into a fixed-resolution elapsed time.
//
// Each scalar type is backed by a Codec that validates external input
// and serializes normalized values. The types implement the
// encoding.TextMarshaler, encoding.TextUnmarshaler, json.Marshaler
// and json.Unmarshaler interfaces by delegating to their codecs, so
// they work with encoding/xml and the JSON packages without further
// setup. Frameworks that need the codec itself can look it up by type
// with Lookup.
package xsdtypes
