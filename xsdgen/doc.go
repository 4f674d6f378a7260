// Package xsdgen decides how the fields of classes derived from xml
// schema documents are declared in Go.
//
// For each field, described by an xsd.Attr, the xsdgen package
// resolves the Go type of the field and its construction options,
// which are rendered into struct tags. The resolution is configurable
// with Options, and the built-in decisions can be replaced by
// user-defined type overrides, such as mapping every xsd:duration
// field to xsdtypes.Duration.
package xsdgen
