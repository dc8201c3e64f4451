package datefmt

import (
	"strings"
	"time"
)

// Unit is a calendar or clock unit
type Unit string

const (
	UnitYear        Unit = "year"
	UnitMonth       Unit = "month"
	UnitWeek        Unit = "week"
	UnitDay         Unit = "day"
	UnitHour        Unit = "hour"
	UnitMinute      Unit = "minute"
	UnitSecond      Unit = "second"
	UnitMillisecond Unit = "millisecond"
)

// short aliases are case sensitive: "M" is month, "m" is minute
var shortUnits = map[string]Unit{
	"y":  UnitYear,
	"M":  UnitMonth,
	"w":  UnitWeek,
	"d":  UnitDay,
	"h":  UnitHour,
	"m":  UnitMinute,
	"s":  UnitSecond,
	"ms": UnitMillisecond,
}

// ParseUnit reads a unit name, its plural or its short alias
func ParseUnit(name string) (Unit, bool) {
	name = strings.TrimSpace(name)
	if u, ok := shortUnits[name]; ok {
		return u, true
	}

	switch u := Unit(strings.TrimSuffix(strings.ToLower(name), "s")); u {
	case UnitYear, UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond, UnitMillisecond:
		return u, true
	}
	return "", false
}

// AddUnits shifts t by n units. Calendar units roll over naturally.
func AddUnits(t time.Time, n int, unit Unit) time.Time {
	switch unit {
	case UnitYear:
		return t.AddDate(n, 0, 0)
	case UnitMonth:
		return t.AddDate(0, n, 0)
	case UnitWeek:
		return t.AddDate(0, 0, 7*n)
	case UnitDay:
		return t.AddDate(0, 0, n)
	case UnitHour:
		return t.Add(time.Duration(n) * time.Hour)
	case UnitMinute:
		return t.Add(time.Duration(n) * time.Minute)
	case UnitSecond:
		return t.Add(time.Duration(n) * time.Second)
	case UnitMillisecond:
		return t.Add(time.Duration(n) * time.Millisecond)
	}
	return t
}
