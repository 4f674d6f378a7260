package xsdtypes

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ErrOverflow is returned when a Duration does not fit in a
// time.Duration.
var ErrOverflow = errors.New("xsdtypes: duration overflows time.Duration")

const durationExample = "PT15M"

const durationPatternSrc = `^P(?!$)(?:\d+Y)?(?:\d+M)?(?:\d+W)?(?:\d+D)?(?:T(?!$)(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`

// RE2 has no lookahead; the empty-component checks that
// durationPatternSrc expresses with (?!$) are done in ParseDuration.
var durationPattern = regexp.MustCompile(
	`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// A Duration is an xsd:duration value. Unlike time.Duration, it keeps
// each component separately, since years and months do not have a
// fixed length. A component equal to zero is absent.
type Duration struct {
	Negative bool
	Years    int
	Months   int
	Weeks    int
	Days     int
	Hours    int
	Minutes  int
	Seconds  float64
}

// ParseDuration parses an ISO 8601 duration such as "P1Y2M10DT2H30M",
// "-PT0.5S" or "P2W".
func ParseDuration(s string) (Duration, error) {
	var d Duration
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return d, durationError(s, nil)
	}
	if m[6] == "T" {
		return d, durationError(s, errors.New("time designator present but no time components specified"))
	}
	if m[2]+m[3]+m[4]+m[5]+m[7]+m[8]+m[9] == "" {
		return d, durationError(s, errors.New("duration must have at least one component"))
	}
	ints := []*int{&d.Years, &d.Months, &d.Weeks, &d.Days, nil, &d.Hours, &d.Minutes}
	for i, p := range ints {
		field := m[i+2]
		if p == nil || field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return Duration{}, durationError(s, err)
		}
		*p = n
	}
	if m[9] != "" {
		f, err := strconv.ParseFloat(m[9], 64)
		if err != nil {
			return Duration{}, durationError(s, err)
		}
		d.Seconds = f
	}
	d.Negative = m[1] == "-" && !d.IsZero()
	return d, nil
}

func durationError(s string, err error) *Error {
	return &Error{
		Kind:    UnparseableText,
		Subject: "duration",
		Input:   s,
		Format:  "ISO 8601 duration",
		Example: durationExample,
		Err:     err,
	}
}

// FromElapsed converts an elapsed time to a Duration with day, hour,
// minute and second components.
func FromElapsed(t time.Duration) Duration {
	var d Duration
	if t < 0 {
		d.Negative = true
		t = -t
	}
	d.Days = int(t / day)
	t %= day
	d.Hours = int(t / time.Hour)
	t %= time.Hour
	d.Minutes = int(t / time.Minute)
	t %= time.Minute
	d.Seconds = t.Seconds()
	return d
}

// IsZero returns true if all components are zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// Elapsed approximates d as a time.Duration. Years count as 365 days
// and months as 30 days; the result is exact only when d has neither.
func (d Duration) Elapsed() (time.Duration, error) {
	days := int64(d.Years)*365 + int64(d.Months)*30 + int64(d.Weeks)*7 + int64(d.Days)
	secs := int64(d.Hours)*3600 + int64(d.Minutes)*60

	var total time.Duration
	add := func(n int64, unit time.Duration) error {
		if n == 0 {
			return nil
		}
		if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
			return ErrOverflow
		}
		delta := time.Duration(n) * unit
		if (delta > 0 && total > math.MaxInt64-delta) || (delta < 0 && total < math.MinInt64-delta) {
			return ErrOverflow
		}
		total += delta
		return nil
	}
	if err := add(days, day); err != nil {
		return 0, err
	}
	if err := add(secs, time.Second); err != nil {
		return 0, err
	}
	nanos := math.Round(d.Seconds * 1e9)
	if nanos >= math.MaxInt64 || nanos <= math.MinInt64 {
		return 0, ErrOverflow
	}
	if err := add(int64(nanos), time.Nanosecond); err != nil {
		return 0, err
	}
	if d.Negative {
		total = -total
	}
	return total, nil
}

// String returns the canonical ISO 8601 form of d. Durations without
// years or months are normalized with FormatISO, so "PT36H" is written
// as "P1DT12H". Other durations are written component by component.
// Negative components are folded into the sign of the duration.
func (d Duration) String() string {
	n, err := d.normalize()
	if err != nil {
		return d.sign() + d.lexical()
	}
	if n.Years == 0 && n.Months == 0 {
		abs := n
		abs.Negative = false
		if elapsed, err := abs.Elapsed(); err == nil {
			if s, err := FormatISO(elapsed); err == nil {
				return n.sign() + s
			}
		}
	}
	return n.sign() + n.lexical()
}

// normalize returns d with no negative components. Components that
// are all negative or zero are negated along with the sign. Mixed signs
// are combined through the elapsed time, which fails when d has years
// or months.
func (d Duration) normalize() (Duration, error) {
	if !d.hasNegativeComponent() {
		return d, nil
	}
	if !d.hasPositiveComponent() {
		n := Duration{
			Negative: !d.Negative,
			Years:    -d.Years,
			Months:   -d.Months,
			Weeks:    -d.Weeks,
			Days:     -d.Days,
			Hours:    -d.Hours,
			Minutes:  -d.Minutes,
			Seconds:  -d.Seconds,
		}
		return n, nil
	}
	if d.Years != 0 || d.Months != 0 {
		return d, fmt.Errorf("xsdtypes: duration %s mixes signs with years or months", d.lexical())
	}
	abs := d
	abs.Negative = false
	elapsed, err := abs.Elapsed()
	if err != nil {
		return d, err
	}
	n := FromElapsed(elapsed)
	if d.Negative {
		n.Negative = !n.Negative
	}
	return n, nil
}

func (d Duration) sign() string {
	if d.Negative && !d.IsZero() {
		return "-"
	}
	return ""
}

func (d Duration) hasNegativeComponent() bool {
	return d.Years < 0 || d.Months < 0 || d.Weeks < 0 || d.Days < 0 ||
		d.Hours < 0 || d.Minutes < 0 || d.Seconds < 0
}

func (d Duration) hasPositiveComponent() bool {
	return d.Years > 0 || d.Months > 0 || d.Weeks > 0 || d.Days > 0 ||
		d.Hours > 0 || d.Minutes > 0 || d.Seconds > 0
}

func (d Duration) lexical() string {
	if d.IsZero() {
		return "P0D"
	}
	var buf strings.Builder
	buf.WriteByte('P')
	part := func(n int, unit byte) {
		if n != 0 {
			buf.WriteString(strconv.Itoa(n))
			buf.WriteByte(unit)
		}
	}
	part(d.Years, 'Y')
	part(d.Months, 'M')
	part(d.Weeks, 'W')
	part(d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		buf.WriteByte('T')
		part(d.Hours, 'H')
		part(d.Minutes, 'M')
		if d.Seconds != 0 {
			s := strconv.FormatFloat(d.Seconds, 'f', 6, 64)
			s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
			buf.WriteString(s)
			buf.WriteByte('S')
		}
	}
	return buf.String()
}

func (d Duration) MarshalText() ([]byte, error) {
	if _, err := d.normalize(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	return unmarshalJSONText(data, d.UnmarshalText)
}

type durationCodec struct{}

// DurationCodec validates and serializes Duration values. In Document
// mode values serialize to their ISO 8601 string; in Native mode they
// serialize to the time.Duration approximation returned by
// Duration.Elapsed.
var DurationCodec Codec = durationCodec{}

func (durationCodec) Schema() Schema {
	return Schema{
		Type:    "string",
		Format:  "duration",
		Pattern: durationPatternSrc,
		Description: "An ISO 8601 duration string (e.g., 'PT15M' for 15 minutes, " +
			"'P1Y2M10DT2H30M' for 1 year, 2 months, 10 days, 2 hours, 30 minutes).",
	}
}

func (c durationCodec) Validate(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case string:
		return ParseDuration(v)
	case []byte:
		return ParseDuration(string(v))
	}
	return c.duration(v)
}

func (durationCodec) duration(v interface{}) (Duration, error) {
	switch v := v.(type) {
	case Duration:
		return v, nil
	case *Duration:
		if v != nil {
			return *v, nil
		}
	case time.Duration:
		return FromElapsed(v), nil
	}
	return Duration{}, &Error{
		Kind:    UnsupportedInputType,
		Subject: "duration",
		Format:  "ISO 8601 duration",
		Example: durationExample,
		Got:     fmt.Sprintf("%T", v),
	}
}

func (c durationCodec) Serialize(v interface{}, mode Mode) (interface{}, error) {
	d, err := c.duration(v)
	if err != nil {
		return nil, err
	}
	if mode == Native {
		return d.Elapsed()
	}
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}
