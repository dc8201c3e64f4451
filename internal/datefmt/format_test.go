package datefmt

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierShort, ParseTier("short"))
	assert.Equal(t, TierMedium, ParseTier(" MEDIUM "))
	assert.Equal(t, TierLong, ParseTier("long"))
	assert.Equal(t, TierCustom, ParseTier("custom"))
	assert.Equal(t, TierCustom, ParseTier("fancy"))
	assert.Equal(t, TierCustom, ParseTier(""))
}

func TestLocale(t *testing.T) {
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), Locale(""))
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), Locale("en-us"))
	assert.Equal(t, monday.Locale(monday.LocaleEnGB), Locale("en-GB"))
	assert.Equal(t, monday.Locale(monday.LocalePtBR), Locale("pt_BR"))
	assert.Equal(t, monday.Locale(monday.LocaleDeDE), Locale("de-LU"))
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), Locale("xx-yy"))
}

func TestFormatDate_Tiers(t *testing.T) {
	const instant = "2024-03-05T10:30:45Z"

	tests := []struct {
		tier string
		want string
	}{
		{"short", "3/5/2024"},
		{"medium", "Mar 5, 2024"},
		{"long", "March 5, 2024"},
		{"custom", "March 5, 2024"},
		{"unheard-of", "March 5, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(instant, tt.tier, "en-us", ""))
		})
	}
}

func TestFormatDate_OffsetMovesDay(t *testing.T) {
	const instant = "2024-03-05T22:30:00Z"

	assert.Equal(t, "3/5/2024", FormatDate(instant, "short", "en-us", "+00:00"))
	assert.Equal(t, "3/6/2024", FormatDate(instant, "short", "en-us", "+05:30"))
	assert.Equal(t, "3/5/2024", FormatDate(instant, "short", "en-us", "-05:00"))

	// unknown offsets resolve to UTC
	assert.Equal(t, "3/5/2024", FormatDate(instant, "short", "en-us", "+05:31"))
}

func TestFormatDate_Locales(t *testing.T) {
	const instant = "2024-03-05T10:00:00Z"

	assert.Equal(t, "5 March 2024", FormatDate(instant, "long", "en-gb", ""))
	assert.Equal(t, "5. März 2024", FormatDate(instant, "long", "de-de", ""))
	assert.Equal(t, "5 mars 2024", FormatDate(instant, "long", "fr-fr", ""))
	assert.Equal(t, "05/03/2024", FormatDate(instant, "short", "fr-fr", ""))
	assert.Equal(t, "2024年3月5日", FormatDate(instant, "long", "ja-jp", ""))
}

func TestFormatDate_Invalid(t *testing.T) {
	assert.Equal(t, InvalidDate, FormatDate("not a date", "short", "en-us", ""))
	assert.Equal(t, InvalidDate, FormatDate(nil, "short", "en-us", ""))
	assert.Equal(t, InvalidDate, FormatDate("", "long", "", ""))
}

func TestFormatDateTime(t *testing.T) {
	const instant = "2024-03-05T15:04:05Z"

	assert.Equal(t, "3/5/2024, 03:04 PM", FormatDateTime(instant, "short", "en-us", ""))
	assert.Equal(t, "March 5, 2024, 03:04 PM", FormatDateTime(instant, "long", "en-us", ""))
	assert.Equal(t, "March 5, 2024, 03:04:05 PM", FormatDateTime(instant, "custom", "en-us", ""))
	assert.Equal(t, "March 5, 2024, 03:04:05 PM", FormatDateTime(instant, "other", "en-us", ""))
	assert.Equal(t, "March 6, 2024, 12:04 AM", FormatDateTime(instant, "long", "en-us", "+09:00"))
	assert.Equal(t, "5 March 2024, 15:04", FormatDateTime(instant, "long", "en-gb", ""))
	assert.Equal(t, InvalidDate, FormatDateTime("garbage", "long", "en-us", ""))
}

func TestFormatDay(t *testing.T) {
	// 2024-03-05 is a Tuesday
	assert.Equal(t, "Tuesday", FormatDay("2024-03-05T12:00:00Z", "en-us", ""))
	assert.Equal(t, "mardi", FormatDay("2024-03-05T12:00:00Z", "fr-fr", ""))
	assert.Equal(t, "Wednesday", FormatDay("2024-03-05T20:00:00Z", "en-us", "+08:00"))
	assert.Equal(t, InvalidDate, FormatDay("?", "en-us", ""))
}

func TestFormatDate_NaiveValueKeepsWallClock(t *testing.T) {
	assert.Equal(t, "3/5/2024", FormatDate("2024-03-05T23:30:00", "short", "en-us", "+05:30"))
	assert.Equal(t, "3/6/2024", FormatDate("2024-03-05T23:30:00Z", "short", "en-us", "+05:30"))
	assert.Equal(t, "3/5/2024", FormatDate("2024-03-05T23:30:00", "short", "en-us", ""))
}

func TestParse(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
	}{
		{"rfc3339", "2024-03-05T10:30:00Z"},
		{"offset", "2024-03-05T12:30:00+02:00"},
		{"naive", "2024-03-05T10:30:00"},
		{"space", "2024-03-05 10:30:00"},
		{"minutes", "2024-03-05T10:30"},
		{"millis int", want.UnixMilli()},
		{"millis float", float64(want.UnixMilli())},
		{"millis string", "1709634600000"},
		{"rfc1123", "Tue, 05 Mar 2024 10:30:00 GMT"},
		{"time", want},
		{"time pointer", &want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseISO(t *testing.T) {
	loc := time.FixedZone("x", 3600)

	got, err := ParseISO("2024-03-05T10:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 10, got.UTC().Hour())

	got, err = ParseISO("2024-03-05T10:30:00", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, got.UTC().Hour())

	now := time.Now()
	got, err = ParseISO(now, nil)
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	for _, in := range []interface{}{"Tue, 05 Mar 2024 10:30:00 GMT", "1709634600000", int64(1709634600000), 1.5, nil, ""} {
		_, err := ParseISO(in, loc)
		assert.ErrorIs(t, err, ErrInvalidDate, "%v", in)
	}
}

func TestParse_DateOnly(t *testing.T) {
	got, err := Parse("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestParseIn_NaiveUsesLocation(t *testing.T) {
	loc := time.FixedZone("x", 3600)
	got, err := ParseIn("2024-03-05T10:00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, got.UTC().Hour())
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []interface{}{nil, "", "yesterday-ish", "2024-13-45"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidDate, "%v", in)
	}
}
