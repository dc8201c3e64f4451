package datefmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// InvalidDate is rendered in place of a value that cannot be parsed
const InvalidDate = "Invalid Date"

// ErrInvalidDate is returned when a value cannot be read as an instant
var ErrInvalidDate = errors.New("invalid date")

// ISO 8601 layouts carrying their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
}

// mail and HTTP style layouts
var rfcLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
}

// layouts read as wall time in the caller's location
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"20060102",
}

// Parse reads v as an instant. Strings without an offset are read as UTC.
func Parse(v interface{}) (time.Time, error) {
	return ParseIn(v, time.UTC)
}

// ParseIn reads v as an instant. Accepted inputs are time.Time, ISO 8601 /
// RFC 3339 text and epoch milliseconds (numbers or numeric strings).
// Strings without an offset are read as wall time in loc.
func ParseIn(v interface{}, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, ErrInvalidDate
		}
		return *t, nil
	case string:
		return parseString(t, loc)
	case int:
		return time.UnixMilli(int64(t)), nil
	case int32:
		return time.UnixMilli(int64(t)), nil
	case int64:
		return time.UnixMilli(t), nil
	case float64:
		return fromMillis(t)
	case float32:
		return fromMillis(float64(t))
	case nil:
		return time.Time{}, ErrInvalidDate
	default:
		return parseString(fmt.Sprint(v), loc)
	}
}

// ParseISO is ParseIn restricted to time values and ISO 8601 text. RFC
// 1123 dates and epoch milliseconds are rejected.
func ParseISO(v interface{}, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch t := v.(type) {
	case time.Time, *time.Time:
		return ParseIn(v, loc)
	case string:
		if parsed, ok := parseISO(strings.TrimSpace(t), loc); ok {
			return parsed, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q is not ISO 8601", ErrInvalidDate, t)
	}
	return time.Time{}, fmt.Errorf("%w: %T is not ISO 8601 text", ErrInvalidDate, v)
}

func parseISO(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, ok := parseISO(s, loc); ok {
		return t, nil
	}
	for _, layout := range rfcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMillis(ms)
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func fromMillis(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, ErrInvalidDate
	}
	return time.UnixMilli(int64(ms)), nil
}
