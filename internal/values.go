package internal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// isoLayouts are the ISO-8601 forms accepted for dates. Values without an
// offset are read as UTC.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDate accepts a time.Time or an ISO-8601 string.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, failf(ErrTypeMismatch, "date is a nil *time.Time")
		}
		return *d, nil
	case string:
		return parseISODate(d)
	default:
		return time.Time{}, failf(ErrTypeMismatch, "date must be a time.Time or ISO-8601 string, got %T", v)
	}
}

func parseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, failf(ErrFormat, "invalid ISO-8601 date %q", s)
}

// ParsePrice parses the text form of a decimal price.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, wrapf(ErrFormat, err, "invalid decimal price %q", s)
	}
	return d, nil
}

// oneYearBefore shifts now back one calendar year keeping month and day.
// Feb 29 has no counterpart in the previous year and clamps to Feb 28.
func oneYearBefore(now time.Time) time.Time {
	day := now.Day()
	if now.Month() == time.February && day == 29 {
		day = 28
	}
	return time.Date(now.Year()-1, now.Month(), day,
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}
