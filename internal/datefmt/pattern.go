package datefmt

import (
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// patternTokens lists moment-style tokens, longest first so that "MMMM"
// wins over "MM".
var patternTokens = []string{
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"dddd", "ddd",
	"DD", "D",
	"HH", "H", "hh", "h",
	"mm", "m",
	"ss", "s",
	"SSS",
	"A", "a",
	"ZZ", "Z",
	"X", "x",
}

// FormatTime applies ops to value and renders it with a moment-style
// pattern such as "YYYY-MM-DD HH:mm". Text inside square brackets is copied
// verbatim. An empty pattern renders RFC 3339.
func FormatTime(value interface{}, pattern, locale string, ops []Operation) string {
	t, err := Parse(value)
	if err != nil {
		return InvalidDate
	}
	t = Apply(t, ops)

	if pattern == "" {
		return t.Format(time.RFC3339)
	}
	return renderPattern(t, pattern, Locale(locale))
}

func renderPattern(t time.Time, pattern string, loc monday.Locale) string {
	var b strings.Builder

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i:], ']')
			if end > 0 {
				b.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}

		token := matchToken(pattern[i:])
		if token == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(renderToken(t, token, loc))
		i += len(token)
	}

	return b.String()
}

func matchToken(s string) string {
	for _, token := range patternTokens {
		if strings.HasPrefix(s, token) {
			return token
		}
	}
	return ""
}

func renderToken(t time.Time, token string, loc monday.Locale) string {
	switch token {
	case "YYYY":
		return strconv.Itoa(t.Year())
	case "YY":
		return t.Format("06")
	case "MMMM":
		return monday.Format(t, "January", loc)
	case "MMM":
		return monday.Format(t, "Jan", loc)
	case "MM":
		return t.Format("01")
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "dddd":
		return monday.Format(t, "Monday", loc)
	case "ddd":
		return monday.Format(t, "Mon", loc)
	case "DD":
		return t.Format("02")
	case "D":
		return strconv.Itoa(t.Day())
	case "HH":
		return t.Format("15")
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return t.Format("03")
	case "h":
		return t.Format("3")
	case "mm":
		return t.Format("04")
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return t.Format("05")
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return t.Format(".000")[1:]
	case "A":
		return t.Format("PM")
	case "a":
		return t.Format("pm")
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return token
}
