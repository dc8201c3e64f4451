package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOp(t *testing.T, name, arg string) Operation {
	t.Helper()
	op, err := ParseOperation(name, arg)
	require.NoError(t, err)
	return op
}

func TestParseOperation_Unknown(t *testing.T) {
	_, err := ParseOperation("startOf", "day")
	assert.ErrorIs(t, err, ErrUnknownOperation)

	_, err = ParseOperation("locale", "fr")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseOperation_InvalidOperands(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"add", ""},
		{"add", "two days"},
		{"add", "2 fortnights"},
		{"subtract", "1 2 3"},
		{"set", ""},
		{"set", "hour"},
		{"set", "century=21"},
		{"set", "hour=nine"},
		{"tz", "Mars/Olympus_Mons"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" "+tt.arg, func(t *testing.T) {
			_, err := ParseOperation(tt.name, tt.arg)
			assert.ErrorIs(t, err, ErrInvalidOperand)
		})
	}
}

func TestApply(t *testing.T) {
	base := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	got := Apply(base, []Operation{mustOp(t, "add", "1 month")})
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), got)

	got = Apply(base, []Operation{mustOp(t, "subtract", "2 hours")})
	assert.Equal(t, time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC), got)

	got = Apply(base, []Operation{mustOp(t, "set", "hour=9, minute=15")})
	assert.Equal(t, time.Date(2024, 1, 31, 9, 15, 0, 0, time.UTC), got)

	got = Apply(base, []Operation{mustOp(t, "add", "3")})
	assert.Equal(t, time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC), got)

	got = Apply(base, []Operation{mustOp(t, "tz", "+05:30")})
	assert.Equal(t, "Asia/Calcutta", got.Location().String())
	assert.True(t, base.Equal(got))

	got = Apply(base, []Operation{mustOp(t, "timezone", "Europe/Paris")})
	assert.Equal(t, 11, got.Hour())
}

func TestParseUnit(t *testing.T) {
	tests := map[string]Unit{
		"day":     UnitDay,
		"Days":    UnitDay,
		"d":       UnitDay,
		"M":       UnitMonth,
		"m":       UnitMinute,
		"minutes": UnitMinute,
		"seconds": UnitSecond,
		"ms":      UnitMillisecond,
		"years":   UnitYear,
		"w":       UnitWeek,
	}
	for in, want := range tests {
		got, ok := ParseUnit(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseUnit("decade")
	assert.False(t, ok)
}

func TestFormatTime(t *testing.T) {
	const instant = "2024-03-05T15:04:05.123Z"

	assert.Equal(t, "2024-03-05 15:04:05", FormatTime(instant, "YYYY-MM-DD HH:mm:ss", "", nil))
	assert.Equal(t, "Tuesday, March 5 3:04 PM", FormatTime(instant, "dddd, MMMM D h:mm A", "en-us", nil))
	assert.Equal(t, "24/3/5 123", FormatTime(instant, "YY/M/D SSS", "", nil))
	assert.Equal(t, "2024-03-05T15:04", FormatTime(instant, "YYYY-MM-DD[T]HH:mm", "", nil))
	assert.Equal(t, "2024-03-05T15:04:05Z", FormatTime(instant, "", "", nil))
	assert.Equal(t, "jeudi 7 mars", FormatTime(instant, "dddd D MMMM", "fr-fr",
		[]Operation{mustOp(t, "add", "2 days")}))
	assert.Equal(t, "20:34 +05:30", FormatTime(instant, "HH:mm Z", "",
		[]Operation{mustOp(t, "tz", "+05:30")}))
	assert.Equal(t, InvalidDate, FormatTime("nope", "YYYY", "", nil))
}
