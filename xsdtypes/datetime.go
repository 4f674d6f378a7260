package xsdtypes

import (
	"fmt"
	"regexp"
	"time"

	"github.com/goccy/go-json"
)

// The patterns below check calendar correctness (days per month and
// leap years) before a string is handed to time.Parse.
const (
	longMonthDate  = `(?:0[13578]|1[02])-(?:0[1-9]|[12][0-9]|3[01])`
	shortMonthDate = `(?:0[469]|11)-(?:0[1-9]|[12][0-9]|30)`

	leapYear = `(?:[13579][26][02468][048]|[13579][01345789]0[48]|[13579][01345789][2468][048]|` +
		`[02468][048][02468][048]|[02468][1235679]0[48]|[02468][1235679][2468][048]|[0-9][0-9][13579][26])`
	commonYear = `(?:[13579][26][02468][1235679]|[13579][01345789]0[01235679]|[13579][01345789][2468][1235679]|` +
		`[02468][048][02468][1235679]|[02468][1235679]0[01235679]|[02468][1235679][2468][1235679]|[0-9][0-9][13579][01345789])`

	calendarDate = `(?:[0-9]{4}-(?:` + longMonthDate + `|` + shortMonthDate + `)|` +
		leapYear + `-02-(?:0[1-9]|1[0-9]|2[0-9])|` +
		commonYear + `-02-(?:0[1-9]|1[0-9]|2[0-8]))`

	clockMinutes = `(?:[01][0-9]|2[0-3]):[0-5][0-9]`
	clockSeconds = clockMinutes + `:[0-5][0-9]`
)

func dateTimePattern(clock string) *regexp.Regexp {
	return regexp.MustCompile(`^` + calendarDate + `T` + clock + `Z$`)
}

// A TimeCodec validates and serializes date-times in one fixed
// textual format. The normalized value is a time.Time in UTC.
type TimeCodec struct {
	// Layout for time.Parse and time.Format.
	Layout string
	// Human-readable form of the layout, used in error messages.
	Format string
	// Pattern that text input must match in full.
	Pattern *regexp.Regexp
	// Now returns the current time, used to build examples in
	// error messages. If nil, time.Now is used.
	Now func() time.Time
}

var (
	// DateTimeCodec accepts date-times with seconds precision.
	DateTimeCodec = &TimeCodec{
		Layout:  "2006-01-02T15:04:05Z",
		Format:  "YYYY-MM-DDTHH:MM:SSZ",
		Pattern: dateTimePattern(clockSeconds),
	}
	// MinuteDateTimeCodec accepts date-times with minute precision.
	MinuteDateTimeCodec = &TimeCodec{
		Layout:  "2006-01-02T15:04Z",
		Format:  "YYYY-MM-DDTHH:MMZ",
		Pattern: dateTimePattern(clockMinutes),
	}
)

func (c *TimeCodec) example() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().UTC().Format(c.Layout)
}

func (c *TimeCodec) fail(kind ErrorKind, input string, err error) *Error {
	return &Error{
		Kind:    kind,
		Subject: "datetime",
		Input:   input,
		Format:  c.Format,
		Example: c.example(),
		Err:     err,
	}
}

// Parse converts text, or a time value, to a UTC time.Time.
// Times in other locations are converted to UTC.
func (c *TimeCodec) Parse(v interface{}) (time.Time, error) {
	switch v := v.(type) {
	case string:
		return c.parseText(v)
	case []byte:
		return c.parseText(string(v))
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v != nil {
			return v.UTC(), nil
		}
	case DateTime:
		return time.Time(v).UTC(), nil
	case MinuteDateTime:
		return time.Time(v).UTC(), nil
	}
	err := c.fail(UnsupportedInputType, "", nil)
	err.Got = fmt.Sprintf("%T", v)
	return time.Time{}, err
}

func (c *TimeCodec) parseText(s string) (time.Time, error) {
	if !c.Pattern.MatchString(s) {
		return time.Time{}, c.fail(PatternMismatch, s, nil)
	}
	t, err := time.Parse(c.Layout, s)
	if err != nil {
		return time.Time{}, c.fail(UnparseableText, s, err)
	}
	return t.UTC(), nil
}

// Validate implements the Codec interface. The result is a time.Time.
func (c *TimeCodec) Validate(v interface{}) (interface{}, error) {
	t, err := c.Parse(v)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FormatTime formats t in the codec's layout, after converting it to UTC.
func (c *TimeCodec) FormatTime(t time.Time) string {
	return t.UTC().Format(c.Layout)
}

// Serialize implements the Codec interface. Both modes produce the
// fixed-width textual form.
func (c *TimeCodec) Serialize(v interface{}, mode Mode) (interface{}, error) {
	switch v.(type) {
	case string, []byte:
		err := c.fail(UnsupportedInputType, "", nil)
		err.Got = fmt.Sprintf("%T", v)
		return nil, err
	}
	t, err := c.Parse(v)
	if err != nil {
		return nil, err
	}
	return c.FormatTime(t), nil
}

// Schema implements the Codec interface.
func (c *TimeCodec) Schema() Schema {
	return Schema{
		Type:        "string",
		Format:      "date-time",
		Pattern:     c.Pattern.String(),
		Description: "A UTC date-time in the format " + c.Format,
	}
}

// A DateTime is a UTC date-time written as YYYY-MM-DDTHH:MM:SSZ.
type DateTime time.Time

// NewDateTime returns t as a DateTime, normalized to UTC.
func NewDateTime(t time.Time) DateTime { return DateTime(t.UTC()) }

// Time returns the underlying time.Time.
func (t DateTime) Time() time.Time { return time.Time(t) }

func (t DateTime) String() string { return DateTimeCodec.FormatTime(time.Time(t)) }

func (t DateTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *DateTime) UnmarshalText(text []byte) error {
	v, err := DateTimeCodec.Parse(string(text))
	if err != nil {
		return err
	}
	*t = DateTime(v)
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	return unmarshalJSONText(data, t.UnmarshalText)
}

// A MinuteDateTime is a UTC date-time written as YYYY-MM-DDTHH:MMZ.
type MinuteDateTime time.Time

// NewMinuteDateTime returns t as a MinuteDateTime, normalized to UTC.
// Seconds are kept, but are not written by MarshalText.
func NewMinuteDateTime(t time.Time) MinuteDateTime { return MinuteDateTime(t.UTC()) }

// Time returns the underlying time.Time.
func (t MinuteDateTime) Time() time.Time { return time.Time(t) }

func (t MinuteDateTime) String() string { return MinuteDateTimeCodec.FormatTime(time.Time(t)) }

func (t MinuteDateTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MinuteDateTime) UnmarshalText(text []byte) error {
	v, err := MinuteDateTimeCodec.Parse(string(text))
	if err != nil {
		return err
	}
	*t = MinuteDateTime(v)
	return nil
}

func (t MinuteDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MinuteDateTime) UnmarshalJSON(data []byte) error {
	return unmarshalJSONText(data, t.UnmarshalText)
}

// JSON null leaves the destination unchanged, as encoding/json does
// for other types.
func unmarshalJSONText(data []byte, fn func([]byte) error) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return fn([]byte(s))
}
