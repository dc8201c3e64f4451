package reldate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cet = time.FixedZone("CET", 3600)

func fixedEngine() *Engine {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, cet)
	return New(func() time.Time { return now })
}

func TestRelativeDay(t *testing.T) {
	e := fixedEngine()
	today := time.Date(2024, 3, 5, 0, 0, 0, 0, cet)

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"local midnight", today, Today},
		{"late today", today.Add(23 * time.Hour), Today},
		{"tomorrow", today.AddDate(0, 0, 1), Tomorrow},
		{"yesterday", today.AddDate(0, 0, -1), Yesterday},
		{"two days ago", today.AddDate(0, 0, -2), Before},
		{"two days ahead", today.AddDate(0, 0, 2), Later},
		{"naive string", "2024-03-06T08:00:00", Tomorrow},
		{"zoned string", "2024-03-04T23:30:00Z", Today},
		{"date string", "2024-03-01", Before},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.RelativeDay(tt.in))
		})
	}
}

func TestRelativeDay_InvalidReturnsInput(t *testing.T) {
	e := fixedEngine()
	assert.Equal(t, "someday", e.RelativeDay("someday"))
}

func TestRelativeDate_Equivalences(t *testing.T) {
	e := fixedEngine()

	word, err := e.RelativeDate("tomorrow", "day")
	require.NoError(t, err)
	plus, err := e.RelativeDate("+1", "day")
	require.NoError(t, err)
	num, err := e.RelativeDate(1, "day")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-06T10:00:00+01:00", word)
	assert.Equal(t, word, plus)
	assert.Equal(t, word, num)
}

func TestRelativeDate_Units(t *testing.T) {
	e := fixedEngine()

	tests := []struct {
		offset interface{}
		unit   string
		want   string
	}{
		{"yesterday", "day", "2024-03-04T10:00:00+01:00"},
		{"today", "day", "2024-03-05T10:00:00+01:00"},
		{"-2", "hour", "2024-03-05T08:00:00+01:00"},
		{"3", "month", "2024-06-05T10:00:00+01:00"},
		{"-1", "year", "2023-03-05T10:00:00+01:00"},
		{"30", "minutes", "2024-03-05T10:30:00+01:00"},
		{"+45", "seconds", "2024-03-05T10:00:45+01:00"},
		{"2", "fortnight", "2024-03-07T10:00:00+01:00"},
		{"0", "day", "2024-03-05T10:00:00+01:00"},
	}

	for _, tt := range tests {
		got, err := e.RelativeDate(tt.offset, tt.unit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v %s", tt.offset, tt.unit)
	}
}

func TestRelativeDate_InvalidOffset(t *testing.T) {
	e := fixedEngine()

	got, err := e.RelativeDate("soon", "day")
	assert.ErrorIs(t, err, ErrInvalidOffset)
	assert.Equal(t, "2024-03-05T10:00:00+01:00", got)
}

func TestDateDiff(t *testing.T) {
	e := fixedEngine()

	assert.Equal(t, 2.0, e.DateDiff("2024-03-01T00:00:00Z", "2024-03-03T12:00:00Z", "days"))
	assert.Equal(t, -2.0, e.DateDiff("2024-03-03T12:00:00Z", "2024-03-01T00:00:00Z", "days"))
	assert.Equal(t, 60.0, e.DateDiff("2024-03-01T00:00:00Z", "2024-03-03T12:00:00Z", "hours"))
	assert.Equal(t, 1.0, e.DateDiff("2024-01-31T00:00:00Z", "2024-02-29T00:00:00Z", "months"))
	assert.Equal(t, 0.0, e.DateDiff("2024-01-15T00:00:00Z", "2024-02-14T00:00:00Z", "month"))
	assert.Equal(t, 1.0, e.DateDiff("2023-03-05T00:00:00Z", "2024-03-05T00:00:00Z", "years"))
	assert.Equal(t, 1000.0, e.DateDiff("2024-03-01T00:00:00Z", "2024-03-01T00:00:01Z", ""))
	assert.Equal(t, 1.0, e.DateDiff("2024-03-04T10:00:00+01:00", "NOW", "days"))
	assert.Equal(t, -24.0, e.DateDiff("now", "2024-03-04T10:00:00+01:00", "h"))
}

func TestDateDiff_Invalid(t *testing.T) {
	e := fixedEngine()

	assert.True(t, math.IsNaN(e.DateDiff("garbage", "NOW", "days")))
	assert.True(t, math.IsNaN(e.DateDiff("NOW", "", "days")))
	assert.True(t, math.IsNaN(e.DateDiff("Tue, 05 Mar 2024 10:00:00 GMT", "NOW", "days")))
	assert.True(t, math.IsNaN(e.DateDiff("NOW", "1709632800000", "days")))
	assert.True(t, math.IsNaN(e.DateDiff(1709632800000, "NOW", "days")))
}

func TestDateDiff_TimeValues(t *testing.T) {
	e := fixedEngine()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3.0, e.DateDiff(from, "2024-03-04T00:00:00Z", "days"))
	assert.Equal(t, 48.0, e.DateDiff(&from, from.Add(48*time.Hour), "hours"))
}

func TestDaysUntil(t *testing.T) {
	e := fixedEngine()

	days, err := e.DaysUntil("2024-03-08T01:00:00")
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	days, err = e.DaysUntil("2024-03-05T23:59:00")
	require.NoError(t, err)
	assert.Equal(t, 0, days)

	days, err = e.DaysUntil("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, -4, days)

	_, err = e.DaysUntil("not a date")
	assert.Error(t, err)
}

func TestShift(t *testing.T) {
	e := fixedEngine()

	assert.Equal(t, "2025-04-06", e.Shift("2024-03-05", 1, 1, 1))
	assert.Equal(t, "2024-03-02", e.Shift("2024-01-31", 0, 1, 0))
	assert.Equal(t, "2024-01-01", e.Shift("2023-12-31", 0, 0, 1))
	assert.Equal(t, "2023-12-31", e.Shift("2024-01-01", 0, 0, -1))
	assert.Equal(t, "Invalid Date", e.Shift("bad", 0, 0, 0))
}

func TestParseOffset(t *testing.T) {
	tests := map[string]int{
		"tomorrow":  1,
		"Yesterday": -1,
		"today":     0,
		"+3":        3,
		"-3":        -3,
		"7":         7,
		"2.6":       3,
	}
	for in, want := range tests {
		got, err := ParseOffset(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOffset("-")
	assert.ErrorIs(t, err, ErrInvalidOffset)
}
