package helpers

import (
	"math"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/aymerick/raymond"

	"github.com/aescanero/dago-node-render/internal/flatten"
	"github.com/aescanero/dago-node-render/internal/notifyid"
	"github.com/aescanero/dago-node-render/internal/value"
	"github.com/aescanero/dago-node-render/internal/words"
)

func (s *set) registerNumbers(r *Registry) {
	r.MustRegister("math", mathOp)
	r.MustRegisterOptional("formatNumber", s.formatNumber)
	r.MustRegister("numberToWord", s.numberToWord)
	r.MustRegister("generateNotifyId", generateNotifyID)

	r.MustRegister("sumAll", func(v interface{}, key string) float64 {
		return flatten.SumAll(v, key)
	})
	r.MustRegister("flatten", func(v interface{}) map[string]interface{} {
		return flatten.Flatten(v)
	})
}

// mathOp applies an arithmetic operator; "round" formats lvalue with
// rvalue decimals. An unknown operator yields nothing.
func mathOp(lvalue interface{}, operator string, rvalue interface{}) interface{} {
	l, _ := value.Number(lvalue)
	r, _ := value.Number(rvalue)

	switch operator {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	case "%":
		return math.Mod(l, r)
	case "round":
		if math.IsNaN(r) || r < 0 {
			r = 0
		}
		return strconv.FormatFloat(l, 'f', int(r), 64)
	}
	return nil
}

// formatNumber groups digits the way the locale argument (or hash option,
// default the configured locale) expects. Input that is not a number is
// returned unchanged.
func (s *set) formatNumber(v, localeArg interface{}, options *raymond.Options) interface{} {
	f, ok := value.Number(v)
	if !ok || math.IsNaN(f) {
		s.logger.Debug("formatNumber: not a number", zap.Any("input", v))
		return v
	}

	locale := raymond.Str(argOr(localeArg, options, "locale"))
	if locale == "" {
		locale = s.locale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		s.logger.Debug("formatNumber: unknown locale",
			zap.String("locale", locale),
			zap.Error(err),
		)
		tag = language.AmericanEnglish
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(3)))
}

// numberToWord spells an integer out; input it cannot spell is returned
// unchanged
func (s *set) numberToWord(v interface{}) interface{} {
	n, err := words.Parse(v)
	if err == nil {
		var text string
		if text, err = words.FromInt(n); err == nil {
			return text
		}
	}
	s.logger.Debug("numberToWord: returning input unchanged",
		zap.Any("input", v),
		zap.Error(err),
	)
	return v
}

func generateNotifyID(key interface{}) int64 {
	text, ok := value.Text(key)
	if !ok {
		return notifyid.Generate("")
	}
	return notifyid.Generate(text)
}
