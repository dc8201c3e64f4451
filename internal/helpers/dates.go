package helpers

import (
	"fmt"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/datefmt"
	"github.com/aescanero/dago-node-render/internal/reldate"
	"github.com/aescanero/dago-node-render/internal/value"
)

func (s *set) registerDates(r *Registry) {
	r.MustRegisterOptional("formatDate", func(date, format, locale, zone interface{}, options *raymond.Options) string {
		loc, tz := s.localeAndZone(locale, zone, options)
		return datefmt.FormatDate(date, raymond.Str(format), loc, tz)
	})
	r.MustRegisterOptional("formatDateTime", func(date, format, locale, zone interface{}, options *raymond.Options) string {
		loc, tz := s.localeAndZone(locale, zone, options)
		return datefmt.FormatDateTime(date, raymond.Str(format), loc, tz)
	})
	r.MustRegisterOptional("formatDay", func(date, locale, zone interface{}, options *raymond.Options) string {
		loc, tz := s.localeAndZone(locale, zone, options)
		return datefmt.FormatDay(date, loc, tz)
	})
	r.MustRegister("formatTime", s.formatTime)

	r.MustRegister("relativeDay", func(date interface{}) string {
		return s.dates.RelativeDay(date)
	})
	r.MustRegister("relativeDate", s.relativeDate)
	r.MustRegister("dateDiff", func(a, b, unit interface{}) float64 {
		return s.dates.DateDiff(a, b, raymond.Str(unit))
	})
	r.MustRegister("ct-dateDiff", s.daysUntil)
	r.MustRegister("ct-formatDate", func(date, years, months, days interface{}) string {
		return s.dates.Shift(date, intArg(years), intArg(months), intArg(days))
	})

	r.MustRegister("convert_to_sec", func(options *raymond.Options) int64 {
		limit := int64(intArg(options.HashProp("max")))
		return s.dates.ConvertToSec(durationArg(options), options.HashStr("output"), limit)
	})
	r.MustRegister("timestamp_from_now", func(options *raymond.Options) string {
		return s.dates.TimestampFromNow(durationArg(options))
	})
}

// localeAndZone resolves a positional locale and zone, then the locale and
// timezone hash options, then the configured defaults
func (s *set) localeAndZone(locale, zone interface{}, options *raymond.Options) (string, string) {
	loc := raymond.Str(argOr(locale, options, "locale"))
	if loc == "" {
		loc = s.locale
	}
	tz := raymond.Str(argOr(zone, options, "timezone"))
	if tz == "" {
		tz = s.timezone
	}
	return loc, tz
}

// formatTime renders date with a moment-style pattern after applying the
// set, add, subtract and timezone hash options in that order. Any other
// hash option except locale and format fails the render.
func (s *set) formatTime(date, pattern interface{}, options *raymond.Options) string {
	layout := raymond.Str(pattern)
	if layout == "" {
		layout = options.HashStr("format")
	}

	byKind := make(map[datefmt.OpKind]datefmt.Operation)
	for key, arg := range options.Hash() {
		if key == "locale" || key == "format" {
			continue
		}
		op, err := datefmt.ParseOperation(key, raymond.Str(arg))
		if err != nil {
			panic(fmt.Errorf("formatTime: %w", err))
		}
		byKind[op.Kind] = op
	}

	ops := make([]datefmt.Operation, 0, len(byKind))
	for _, kind := range datefmt.OpOrder {
		if op, ok := byKind[kind]; ok {
			ops = append(ops, op)
		}
	}

	locale := options.HashStr("locale")
	if locale == "" {
		locale = s.locale
	}
	return datefmt.FormatTime(date, layout, locale, ops)
}

func (s *set) relativeDate(offset, unit interface{}) string {
	out, err := s.dates.RelativeDate(offset, raymond.Str(unit))
	if err != nil {
		s.logger.Debug("relativeDate: offset ignored", zap.Any("offset", offset), zap.Error(err))
	}
	return out
}

// daysUntil renders the true branch when date falls on a later calendar
// day than today
func (s *set) daysUntil(date interface{}, options *raymond.Options) string {
	days, err := s.dates.DaysUntil(date)
	if err != nil {
		s.logger.Debug("ct-dateDiff: invalid date", zap.Any("date", date), zap.Error(err))
		return options.Inverse()
	}
	return branch(days > 0, options)
}

func intArg(v interface{}) int {
	f, ok := value.Number(v)
	if !ok {
		return 0
	}
	return int(f)
}

func durationArg(options *raymond.Options) reldate.Duration {
	return reldate.Duration{
		Days:    int64(intArg(options.HashProp("days"))),
		Hours:   int64(intArg(options.HashProp("hours"))),
		Minutes: int64(intArg(options.HashProp("minutes"))),
		Seconds: int64(intArg(options.HashProp("seconds"))),
	}
}
