package helpers

import (
	"context"

	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/datefmt"
	"github.com/aescanero/dago-node-render/internal/reldate"
)

// ConditionEvaluator evaluates a boolean expression against variables
type ConditionEvaluator interface {
	Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error)
}

// Options configures the default helper set
type Options struct {
	// Logger receives degraded-input diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// Clock is the source of "now" for relative dates. Defaults to time.Now.
	Clock reldate.Clock

	// DefaultLocale is used by date and number helpers without a locale
	DefaultLocale string

	// DefaultTimezone is used by date helpers without a timezone
	DefaultTimezone string

	// Conditions enables the ifExpr block helper when set
	Conditions ConditionEvaluator
}

// set holds the dependencies shared by the default helpers
type set struct {
	logger     *zap.Logger
	dates      *reldate.Engine
	locale     string
	timezone   string
	conditions ConditionEvaluator
}

// Default returns a registry holding the full helper catalog
func Default(opts Options) *Registry {
	s := &set{
		logger:     opts.Logger,
		dates:      reldate.New(opts.Clock),
		locale:     opts.DefaultLocale,
		timezone:   opts.DefaultTimezone,
		conditions: opts.Conditions,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.locale == "" {
		s.locale = datefmt.DefaultLocale
	}

	r := NewRegistry()
	s.registerStrings(r)
	s.registerComparisons(r)
	s.registerNumbers(r)
	s.registerDates(r)
	s.registerContext(r)
	if s.conditions != nil {
		r.MustRegister("ifExpr", s.ifExpr)
	}
	return r
}
