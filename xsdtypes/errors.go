package xsdtypes

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors returned by codecs.
type ErrorKind int

const (
	// Text input does not match the pattern of its format.
	PatternMismatch ErrorKind = iota + 1
	// Text input matches the expected shape, but cannot be parsed.
	UnparseableText
	// The input is neither text nor an already-normalized value.
	UnsupportedInputType
)

func (k ErrorKind) String() string {
	switch k {
	case PatternMismatch:
		return "pattern mismatch"
	case UnparseableText:
		return "unparseable text"
	case UnsupportedInputType:
		return "unsupported input type"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinel errors for use with errors.Is.
var (
	ErrPatternMismatch      = errors.New("xsdtypes: pattern mismatch")
	ErrUnparseableText      = errors.New("xsdtypes: unparseable text")
	ErrUnsupportedInputType = errors.New("xsdtypes: unsupported input type")
)

// An Error describes a value that a codec could not accept. Errors
// are scoped to a single value; retrying with the same input always
// fails the same way.
type Error struct {
	Kind ErrorKind
	// The kind of value the codec handles, such as "datetime".
	Subject string
	// The offending input, for text input.
	Input string
	// The expected format, such as YYYY-MM-DDTHH:MM:SSZ.
	Format string
	// A valid example of the expected format.
	Example string
	// The type that was received, for UnsupportedInputType.
	Got string
	// The underlying parse error, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case PatternMismatch:
		return fmt.Sprintf("string %q does not match the required %s pattern. Expected format: %s (example: %q)",
			e.Input, e.Subject, e.Format, e.Example)
	case UnparseableText:
		msg := fmt.Sprintf("failed to parse %s string %q. Expected format: %s (example: %q)",
			e.Subject, e.Input, e.Format, e.Example)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	case UnsupportedInputType:
		return fmt.Sprintf("value must be a string matching the %[1]s pattern or a %[1]s value, got %[2]s. For strings, expected format: %[3]s (example: %[4]q)",
			e.Subject, e.Got, e.Format, e.Example)
	}
	return "xsdtypes: invalid " + e.Subject
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrPatternMismatch:
		return e.Kind == PatternMismatch
	case ErrUnparseableText:
		return e.Kind == UnparseableText
	case ErrUnsupportedInputType:
		return e.Kind == UnsupportedInputType
	}
	return false
}

func (e *Error) Unwrap() error { return e.Err }
