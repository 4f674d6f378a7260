package xsdtypes

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestDateTimeRoundTrip(t *testing.T) {
	require := require.New(t)

	instants := []time.Time{
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 12, 30, 5, 0, time.UTC),
	}
	for _, v := range instants {
		text, err := DateTimeCodec.Serialize(v, Document)
		require.NoError(err)
		got, err := DateTimeCodec.Validate(text)
		require.NoError(err, "validate %s", text)
		require.True(v.Equal(got.(time.Time)), "%s round-tripped to %s", v, got)
	}
}

func TestMinuteDateTimeRoundTrip(t *testing.T) {
	require := require.New(t)

	v := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	text, err := MinuteDateTimeCodec.Serialize(v, Document)
	require.NoError(err)
	require.Equal("2024-06-01T10:30Z", text)

	got, err := MinuteDateTimeCodec.Validate(text)
	require.NoError(err)
	require.True(v.Equal(got.(time.Time)))

	// Seconds are dropped when written at minute precision.
	text, err = MinuteDateTimeCodec.Serialize(v.Add(42*time.Second), Native)
	require.NoError(err)
	require.Equal("2024-06-01T10:30Z", text)
}

func TestDateTimePatternMismatch(t *testing.T) {
	tests := []struct {
		codec *TimeCodec
		input string
	}{
		{DateTimeCodec, "2024-13-01T00:00:00Z"},
		{DateTimeCodec, "2024-01-01 00:00:00"},
		{DateTimeCodec, "2023-02-29T00:00:00Z"},
		{DateTimeCodec, "1900-02-29T00:00:00Z"},
		{DateTimeCodec, "2024-04-31T00:00:00Z"},
		{DateTimeCodec, "2024-01-01T24:00:00Z"},
		{DateTimeCodec, "2024-01-01T00:00Z"},
		{DateTimeCodec, "2024-01-01T00:00:00+01:00"},
		{DateTimeCodec, "x2024-01-01T00:00:00Z"},
		{DateTimeCodec, ""},
		{MinuteDateTimeCodec, "2024-01-01T00:00:00Z"},
		{MinuteDateTimeCodec, "2024-06-31T10:00Z"},
		{MinuteDateTimeCodec, "2024-06-01T10:60Z"},
	}
	for _, tt := range tests {
		_, err := tt.codec.Validate(tt.input)
		if !errors.Is(err, ErrPatternMismatch) {
			t.Errorf("%s.Validate(%q): got %v, want pattern mismatch", tt.codec.Format, tt.input, err)
		}
	}
}

func TestDateTimeCalendar(t *testing.T) {
	for _, s := range []string{
		"2024-02-29T00:00:00Z",
		"2000-02-29T00:00:00Z",
		"2023-02-28T00:00:00Z",
		"2023-12-31T23:59:59Z",
		"2023-11-30T08:15:00Z",
	} {
		if _, err := DateTimeCodec.Validate(s); err != nil {
			t.Errorf("Validate(%q): %v", s, err)
		}
	}
}

func TestDateTimeTimezone(t *testing.T) {
	require := require.New(t)

	local := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	got, err := DateTimeCodec.Validate(local)
	require.NoError(err)

	v := got.(time.Time)
	require.Equal(time.UTC, v.Location())
	require.Equal(10, v.Hour())
	require.True(v.Equal(local))

	text, err := DateTimeCodec.Serialize(local, Document)
	require.NoError(err)
	require.Equal("2024-06-01T10:00:00Z", text)

	got, err = DateTimeCodec.Validate(NewMinuteDateTime(local))
	require.NoError(err)
	require.Equal(10, got.(time.Time).Hour())
}

func TestDateTimeErrors(t *testing.T) {
	require := require.New(t)

	codec := *DateTimeCodec
	codec.Now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", 3600))
	}

	_, err := codec.Validate("2024-13-01T00:00:00Z")
	require.EqualError(err, `string "2024-13-01T00:00:00Z" does not match the required datetime pattern. `+
		`Expected format: YYYY-MM-DDTHH:MM:SSZ (example: "2024-01-02T02:04:05Z")`)

	_, err = codec.Validate(42)
	require.ErrorIs(err, ErrUnsupportedInputType)
	require.Contains(err.Error(), "got int")

	var xerr *Error
	require.True(errors.As(err, &xerr))
	require.Equal("int", xerr.Got)

	_, err = codec.Serialize("2024-01-02T03:04:05Z", Document)
	require.ErrorIs(err, ErrUnsupportedInputType)

	_, err = codec.Validate((*time.Time)(nil))
	require.ErrorIs(err, ErrUnsupportedInputType)
}

func TestDateTimeJSON(t *testing.T) {
	require := require.New(t)

	type interval struct {
		Created DateTime        `json:"created"`
		Start   MinuteDateTime  `json:"start"`
		End     *MinuteDateTime `json:"end"`
	}
	at := time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC)
	in := interval{
		Created: NewDateTime(at),
		Start:   NewMinuteDateTime(at),
	}
	data, err := json.Marshal(in)
	require.NoError(err)
	require.JSONEq(`{"created":"2024-06-01T10:15:00Z","start":"2024-06-01T10:15Z","end":null}`, string(data))

	var out interval
	require.NoError(json.Unmarshal(data, &out))
	require.True(at.Equal(out.Created.Time()))
	require.True(at.Equal(out.Start.Time()))
	require.Nil(out.End)

	err = json.Unmarshal([]byte(`{"created":"2024-06-01T10:15Z"}`), &out)
	require.ErrorContains(err, "does not match the required datetime pattern")
}

func TestDateTimeSchema(t *testing.T) {
	s := DateTimeCodec.Schema()
	require.Equal(t, "string", s.Type)
	require.Equal(t, "date-time", s.Format)
	require.Equal(t, DateTimeCodec.Pattern.String(), s.Pattern)
}
