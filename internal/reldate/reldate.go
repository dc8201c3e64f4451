// Package reldate classifies and shifts dates relative to "now".
//
// All calculations read the current instant from an injectable clock so
// that template output is reproducible in tests. Wall-clock comparisons
// (today, tomorrow, calendar-day differences) use the clock's location.
//
// Example usage:
//
//	engine := reldate.New(nil) // time.Now
//	engine.RelativeDay("2024-03-05")           // "before"
//	engine.RelativeDate("tomorrow", "day")     // "2024-03-06T10:00:00+01:00"
//	engine.DateDiff("2024-01-01", "NOW", "days")
package reldate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aescanero/dago-node-render/internal/datefmt"
)

// ErrInvalidOffset is returned when a relative offset is neither a known
// word nor a number
var ErrInvalidOffset = errors.New("invalid relative offset")

// Day classifications returned by RelativeDay
const (
	Today     = "today"
	Tomorrow  = "tomorrow"
	Yesterday = "yesterday"
	Before    = "before"
	Later     = "later"
)

// Clock returns the current instant
type Clock func() time.Time

// Engine performs relative date arithmetic against a clock
type Engine struct {
	now Clock
}

// New creates an engine. A nil clock uses time.Now.
func New(now Clock) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Now returns the current instant of the engine's clock
func (e *Engine) Now() time.Time {
	return e.now()
}

func (e *Engine) location() *time.Location {
	return e.now().Location()
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// RelativeDay classifies the calendar day of value against today. A value
// that cannot be parsed is returned unchanged as text.
func (e *Engine) RelativeDay(value interface{}) string {
	loc := e.location()
	t, err := datefmt.ParseIn(value, loc)
	if err != nil {
		return fmt.Sprint(value)
	}

	given := midnight(t.In(loc))
	today := midnight(e.now())

	switch {
	case given.Equal(today):
		return Today
	case given.Equal(today.AddDate(0, 0, 1)):
		return Tomorrow
	case given.Equal(today.AddDate(0, 0, -1)):
		return Yesterday
	case given.Before(today):
		return Before
	case given.After(today):
		return Later
	default:
		return fmt.Sprint(value)
	}
}

var relativeUnits = map[string]datefmt.Unit{
	"day":     datefmt.UnitDay,
	"hour":    datefmt.UnitHour,
	"month":   datefmt.UnitMonth,
	"year":    datefmt.UnitYear,
	"minutes": datefmt.UnitMinute,
	"seconds": datefmt.UnitSecond,
}

var offsetWords = map[string]int{
	"yesterday": -1,
	"today":     0,
	"tomorrow":  1,
}

// ParseOffset reads a relative offset: one of the words yesterday, today,
// tomorrow, or a signed or unsigned number.
func ParseOffset(offset interface{}) (int, error) {
	s := strings.TrimSpace(fmt.Sprint(offset))
	if n, ok := offsetWords[strings.ToLower(s)]; ok {
		return n, nil
	}

	signed, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(signed) || math.IsInf(signed, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	// the sign is decided before it is stripped from the magnitude
	negative := signed < 0
	magnitude, err := strconv.ParseFloat(strings.TrimLeft(s, "+-"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	n := int(math.Round(magnitude))
	if negative {
		n = -n
	}
	return n, nil
}

// RelativeDate shifts now by offset units and renders RFC 3339. Unknown
// units use day. An invalid offset shifts by zero and is reported through
// the error, the returned timestamp is always usable.
func (e *Engine) RelativeDate(offset interface{}, unit string) (string, error) {
	u, ok := relativeUnits[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		u = datefmt.UnitDay
	}

	n, err := ParseOffset(offset)
	shifted := datefmt.AddUnits(e.now(), n, u)
	return shifted.Format(time.RFC3339), err
}

// DateDiff returns b - a in unit, truncated toward zero. "NOW" on either
// side is the current instant. Operands must be ISO 8601 text or time
// values; anything else, epoch milliseconds included, yields NaN.
func (e *Engine) DateDiff(a, b interface{}, unit string) float64 {
	from, err := e.operand(a)
	if err != nil {
		return math.NaN()
	}
	to, err := e.operand(b)
	if err != nil {
		return math.NaN()
	}

	u, ok := datefmt.ParseUnit(unit)
	if !ok {
		u = datefmt.UnitMillisecond
	}

	d := to.Sub(from)
	var out float64
	switch u {
	case datefmt.UnitYear:
		out = monthDiff(from, to) / 12
	case datefmt.UnitMonth:
		out = monthDiff(from, to)
	case datefmt.UnitWeek:
		out = d.Hours() / (24 * 7)
	case datefmt.UnitDay:
		out = d.Hours() / 24
	case datefmt.UnitHour:
		out = d.Hours()
	case datefmt.UnitMinute:
		out = d.Minutes()
	case datefmt.UnitSecond:
		out = d.Seconds()
	default:
		out = float64(d.Milliseconds())
	}
	return math.Trunc(out)
}

func (e *Engine) operand(v interface{}) (time.Time, error) {
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "now") {
		return e.now(), nil
	}
	return datefmt.ParseISO(v, e.location())
}

// monthDiff counts months from a to b including the fraction of the
// partial month.
func monthDiff(a, b time.Time) float64 {
	whole := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	anchor := addMonths(a, whole)

	var adjust float64
	if b.Before(anchor) {
		prev := addMonths(a, whole-1)
		adjust = float64(b.Sub(anchor)) / float64(anchor.Sub(prev))
	} else {
		next := addMonths(a, whole+1)
		adjust = float64(b.Sub(anchor)) / float64(next.Sub(anchor))
	}
	return float64(whole) + adjust
}

// addMonths clamps to the last day of the target month instead of rolling
// over, so Jan 31 + 1 month is the end of February.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysUntil returns the number of whole calendar days from today to value.
// Both days are taken in the clock's location and compared as UTC dates so
// daylight-saving changes do not skew the count.
func (e *Engine) DaysUntil(value interface{}) (int, error) {
	loc := e.location()
	t, err := datefmt.ParseIn(value, loc)
	if err != nil {
		return 0, err
	}

	given := utcDay(t.In(loc))
	today := utcDay(e.now())
	return int(given.Sub(today).Hours() / 24), nil
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Shift adds years, months and days to value and renders YYYY-MM-DD.
// Overflowing months and days roll over into the next unit.
func (e *Engine) Shift(value interface{}, years, months, days int) string {
	loc := e.location()
	t, err := datefmt.ParseIn(value, loc)
	if err != nil {
		return datefmt.InvalidDate
	}
	return t.In(loc).AddDate(years, months, days).Format("2006-01-02")
}
