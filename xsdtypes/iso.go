package xsdtypes

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// FormatISO produces the shortest ISO 8601 representation of a
// non-negative elapsed time. The zero duration is "P0D", a whole
// number of weeks is written as "PnW", and anything else as days
// followed by a time part. Each unit carries its remainder to the next
// smaller unit, and zero units are omitted. Seconds are written with
// up to six fractional digits; d is rounded to the microsecond.
func FormatISO(d time.Duration) (string, error) {
	if d < 0 {
		return "", fmt.Errorf("cannot produce ISO format for negative duration %v", d)
	}
	d = d.Round(time.Microsecond)
	if d == 0 {
		return "P0D", nil
	}
	if d%(7*day) == 0 {
		return "P" + strconv.FormatInt(int64(d/(7*day)), 10) + "W", nil
	}

	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute

	var buf strings.Builder
	buf.WriteByte('P')
	if days > 0 {
		buf.WriteString(strconv.FormatInt(int64(days), 10))
		buf.WriteByte('D')
	}
	if hours == 0 && minutes == 0 && d == 0 {
		return buf.String(), nil
	}
	buf.WriteByte('T')
	if hours > 0 {
		buf.WriteString(strconv.FormatInt(int64(hours), 10))
		buf.WriteByte('H')
	}
	if minutes > 0 {
		buf.WriteString(strconv.FormatInt(int64(minutes), 10))
		buf.WriteByte('M')
	}
	if d > 0 {
		buf.WriteString(formatSeconds(d))
		buf.WriteByte('S')
	}
	return buf.String(), nil
}

// formatSeconds writes d, which is less than a minute and rounded to
// the microsecond, as decimal seconds without trailing zeros.
func formatSeconds(d time.Duration) string {
	whole := int64(d / time.Second)
	micros := int64(d%time.Second) / int64(time.Microsecond)
	s := fmt.Sprintf("%d.%06d", whole, micros)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
