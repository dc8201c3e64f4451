package datefmt

import (
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/aescanero/dago-node-render/internal/zones"
)

// Tier is a named bundle of date field selections
type Tier string

const (
	// TierShort renders numeric year, month and day
	TierShort Tier = "short"
	// TierMedium renders an abbreviated month name
	TierMedium Tier = "medium"
	// TierLong renders the full month name
	TierLong Tier = "long"
	// TierCustom renders the full month name and, for date-times, seconds
	TierCustom Tier = "custom"
)

// DefaultLocale is used when the caller passes no locale
const DefaultLocale = "en-us"

// ParseTier maps a tier name to a Tier. Unknown names fall back to
// TierCustom, the most detailed field set.
func ParseTier(name string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(name))) {
	case TierShort:
		return TierShort
	case TierMedium:
		return TierMedium
	case TierLong:
		return TierLong
	default:
		return TierCustom
	}
}

// localeLayout holds the Go layouts used for one locale
type localeLayout struct {
	short  string
	medium string
	long   string
	// clock12 selects a 12-hour clock with AM/PM
	clock12 bool
	// sep joins the date and time parts
	sep string
}

var defaultLayout = localeLayout{
	short:   "1/2/2006",
	medium:  "Jan 2, 2006",
	long:    "January 2, 2006",
	clock12: true,
	sep:     ", ",
}

var localeLayouts = map[monday.Locale]localeLayout{
	monday.LocaleEnUS: defaultLayout,
	monday.LocaleEnGB: {short: "02/01/2006", medium: "2 Jan 2006", long: "2 January 2006", sep: ", "},
	monday.LocaleDeDE: {short: "2.1.2006", medium: "2. Jan. 2006", long: "2. January 2006", sep: ", "},
	monday.LocaleFrFR: {short: "02/01/2006", medium: "2 Jan 2006", long: "2 January 2006", sep: " "},
	monday.LocaleFrCA: {short: "2006-01-02", medium: "2 Jan 2006", long: "2 January 2006", sep: " "},
	monday.LocaleEsES: {short: "2/1/2006", medium: "2 Jan 2006", long: "2 de January de 2006", sep: ", "},
	monday.LocaleItIT: {short: "2/1/2006", medium: "2 Jan 2006", long: "2 January 2006", sep: ", "},
	monday.LocalePtPT: {short: "02/01/2006", medium: "2 Jan 2006", long: "2 de January de 2006", sep: ", "},
	monday.LocalePtBR: {short: "02/01/2006", medium: "2 de Jan de 2006", long: "2 de January de 2006", sep: ", "},
	monday.LocaleNlNL: {short: "2-1-2006", medium: "2 Jan 2006", long: "2 January 2006", sep: ", "},
	monday.LocaleRuRU: {short: "02.01.2006", medium: "2 Jan 2006", long: "2 January 2006", sep: ", "},
	monday.LocaleJaJP: {short: "2006/1/2", medium: "2006年1月2日", long: "2006年1月2日", sep: " "},
	monday.LocaleZhCN: {short: "2006/1/2", medium: "2006年1月2日", long: "2006年1月2日", sep: " "},
	monday.LocaleKoKR: {short: "2006. 1. 2.", medium: "2006년 1월 2일", long: "2006년 1월 2일", clock12: true, sep: " "},
}

var localeAliases = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"en_au": monday.LocaleEnGB,
	"en_in": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"de_at": monday.LocaleDeDE,
	"de_ch": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"fr_be": monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"es_mx": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"it_it": monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_pt": monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_nl": monday.LocaleNlNL,
	"ru":    monday.LocaleRuRU,
	"ru_ru": monday.LocaleRuRU,
	"ja":    monday.LocaleJaJP,
	"ja_jp": monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_cn": monday.LocaleZhCN,
	"ko":    monday.LocaleKoKR,
	"ko_kr": monday.LocaleKoKR,
}

// Locale maps a BCP 47 tag such as "en-us" or "pt_BR" to a monday locale.
// Unknown tags fall back to en-US.
func Locale(tag string) monday.Locale {
	tag = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "-", "_"))
	if tag == "" {
		return monday.LocaleEnUS
	}
	if loc, ok := localeAliases[tag]; ok {
		return loc
	}
	if i := strings.Index(tag, "_"); i > 0 {
		if loc, ok := localeAliases[tag[:i]]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}

func layoutFor(loc monday.Locale) localeLayout {
	if l, ok := localeLayouts[loc]; ok {
		return l
	}
	return defaultLayout
}

func (l localeLayout) date(tier Tier) string {
	switch tier {
	case TierShort:
		return l.short
	case TierMedium:
		return l.medium
	default:
		return l.long
	}
}

func (l localeLayout) clock(seconds bool) string {
	layout := "15:04"
	if l.clock12 {
		layout = "03:04"
	}
	if seconds {
		layout += ":05"
	}
	if l.clock12 {
		layout += " PM"
	}
	return layout
}

// FormatDate renders the calendar date of value in the zone resolved from
// offset, using the field set of tier.
func FormatDate(value interface{}, tier, locale, offset string) string {
	t, loc, ok := prepare(value, offset)
	if !ok {
		return InvalidDate
	}
	mloc := Locale(locale)
	return monday.Format(t.In(loc), layoutFor(mloc).date(ParseTier(tier)), mloc)
}

// FormatDateTime renders the date and time of day. The custom tier adds
// seconds.
func FormatDateTime(value interface{}, tier, locale, offset string) string {
	t, loc, ok := prepare(value, offset)
	if !ok {
		return InvalidDate
	}
	mloc := Locale(locale)
	l := layoutFor(mloc)
	parsed := ParseTier(tier)
	layout := l.date(parsed) + l.sep + l.clock(parsed == TierCustom)
	return monday.Format(t.In(loc), layout, mloc)
}

// FormatDay renders the localised weekday name
func FormatDay(value interface{}, locale, offset string) string {
	t, loc, ok := prepare(value, offset)
	if !ok {
		return InvalidDate
	}
	return monday.Format(t.In(loc), "Monday", Locale(locale))
}

func prepare(value interface{}, offset string) (time.Time, *time.Location, bool) {
	loc := zones.Location(offset)
	t, err := ParseIn(value, loc)
	if err != nil {
		return time.Time{}, nil, false
	}
	return t, loc, true
}
