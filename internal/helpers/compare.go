package helpers

import (
	"math"
	"reflect"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/aescanero/dago-node-render/internal/value"
)

const switchKey = "_switch"

// switchState remembers the value under dispatch and whether a case fired.
// It lives on the data frame of one switch block, so nested and sibling
// switches never see each other's state.
type switchState struct {
	value   interface{}
	matched bool
}

func (s *set) registerComparisons(r *Registry) {
	r.MustRegister("compare", compare)

	r.MustRegister("eq", strictEqual)
	r.MustRegister("ne", func(a, b interface{}) bool { return !strictEqual(a, b) })
	r.MustRegister("lt", func(a, b interface{}) bool { return less(a, b) })
	r.MustRegister("gt", func(a, b interface{}) bool { return less(b, a) })
	r.MustRegister("lte", func(a, b interface{}) bool { return lessOrEqual(a, b) })
	r.MustRegister("gte", func(a, b interface{}) bool { return lessOrEqual(b, a) })
	r.MustRegister("and", func(a, b interface{}) bool { return value.Truthy(a) && value.Truthy(b) })
	r.MustRegister("or", func(a, b interface{}) bool { return value.Truthy(a) || value.Truthy(b) })

	r.MustRegister("ifEquals", func(a, b interface{}, options *raymond.Options) string {
		return branch(looseEqual(a, b), options)
	})
	r.MustRegister("ifStartsWith", func(a, b interface{}, options *raymond.Options) string {
		text, ok := value.Text(a)
		prefix, _ := value.Text(b)
		return branch(ok && strings.HasPrefix(text, prefix), options)
	})
	r.MustRegister("ifMatches", func(a, pattern interface{}, options *raymond.Options) string {
		text, ok := value.Text(a)
		expr, _ := value.Text(pattern)
		if !ok {
			return options.Inverse()
		}
		re, ok := s.compileRegexp("ifMatches", expr)
		return branch(ok && re.MatchString(text), options)
	})

	r.MustRegister("switch", func(v interface{}, options *raymond.Options) string {
		frame := options.NewDataFrame()
		frame.Set(switchKey, &switchState{value: v})
		return options.FnData(frame)
	})
	r.MustRegister("case", func(v interface{}, options *raymond.Options) string {
		state, ok := options.DataFrame().Get(switchKey).(*switchState)
		if !ok || state.matched || !looseEqual(state.value, v) {
			return ""
		}
		state.matched = true
		return options.Fn()
	})
	r.MustRegister("switch-default", func(v interface{}, options *raymond.Options) interface{} {
		if state, ok := options.DataFrame().Get(switchKey).(*switchState); ok && state.matched {
			return ""
		}
		return v
	})
}

func branch(cond bool, options *raymond.Options) string {
	if cond {
		return options.Fn()
	}
	return options.Inverse()
}

// compare renders the true branch when "v1 op v2" holds. An unknown
// operator renders nothing.
func compare(v1 interface{}, op string, v2 interface{}, options *raymond.Options) string {
	var cond bool
	switch op {
	case "eq":
		cond = looseEqual(v1, v2)
	case "eqq":
		cond = strictEqual(v1, v2)
	case "ne":
		cond = !looseEqual(v1, v2)
	case "nee":
		cond = !strictEqual(v1, v2)
	case "gt":
		cond = less(v2, v1)
	case "ge":
		cond = lessOrEqual(v2, v1)
	case "lt":
		cond = less(v1, v2)
	case "le":
		cond = lessOrEqual(v1, v2)
	case "or":
		cond = value.Truthy(v1) || value.Truthy(v2)
	case "and":
		cond = value.Truthy(v1) && value.Truthy(v2)
	default:
		return ""
	}
	return branch(cond, options)
}

func isNumeric(v interface{}) bool {
	if _, isString := v.(string); isString {
		return false
	}
	_, ok := value.Number(v)
	return ok
}

// strictEqual requires the same kind of value: numbers compare by value
// regardless of Go width, everything else must be deeply equal
func strictEqual(a, b interface{}) bool {
	if isNumeric(a) && isNumeric(b) {
		fa, _ := value.Number(a)
		fb, _ := value.Number(b)
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// looseEqual converts numbers and numeric strings before comparing, and
// compares other scalars by their text
func looseEqual(a, b interface{}) bool {
	if strictEqual(a, b) {
		return true
	}
	if value.Of(a) == value.Null || value.Of(b) == value.Null {
		return value.Of(a) == value.Of(b)
	}
	if isNumeric(a) || isNumeric(b) {
		fa, okA := numberOf(a)
		fb, okB := numberOf(b)
		return okA && okB && fa == fb
	}
	ta, okA := value.Text(a)
	tb, okB := value.Text(b)
	return okA && okB && ta == tb
}

// numberOf is value.Number extended to booleans
func numberOf(v interface{}) (float64, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return value.Number(v)
}

// less compares two strings lexically and anything else numerically
func less(a, b interface{}) bool {
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return sa < sb
	}
	fa, okA := numberOf(a)
	fb, okB := numberOf(b)
	if !okA || !okB || math.IsNaN(fa) || math.IsNaN(fb) {
		return false
	}
	return fa < fb
}

func lessOrEqual(a, b interface{}) bool {
	return less(a, b) || (looseEqual(a, b) && ordered(a, b))
}

func ordered(a, b interface{}) bool {
	_, okA := numberOf(a)
	_, okB := numberOf(b)
	_, sa := a.(string)
	_, sb := b.(string)
	return (okA || sa) && (okB || sb)
}
