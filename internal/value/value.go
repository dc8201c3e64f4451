// Package value classifies template arguments once at the helper boundary.
//
// Handlebars hands helpers whatever the render context holds: strings,
// numbers, nil, nested maps and slices of any Go type. Helpers that only
// make sense for text ask for the Kind up front instead of probing types
// in every branch.
package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the coarse shape of a template value
type Kind int

const (
	// Null is a nil value or a nil pointer/map/slice
	Null Kind = iota
	// Scalar is a string, number or bool
	Scalar
	// Map is any Go map or struct
	Map
	// Sequence is any Go slice or array
	Sequence
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Map:
		return "map"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Structured reports whether the kind holds nested values
func (k Kind) Structured() bool {
	return k == Map || k == Sequence
}

// Of classifies v
func Of(v interface{}) Kind {
	if v == nil {
		return Null
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return Null
		}
		return Map
	case reflect.Struct:
		return Map
	case reflect.Slice:
		if rv.IsNil() {
			return Null
		}
		fallthrough
	case reflect.Array:
		// []byte is text
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Scalar
		}
		return Sequence
	default:
		return Scalar
	}
}

// Text returns the scalar as a string. Structured and null values return
// false.
func Text(v interface{}) (string, bool) {
	switch Of(v) {
	case Scalar:
		switch s := v.(type) {
		case string:
			return s, true
		case []byte:
			return string(s), true
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64), true
		case float32:
			return strconv.FormatFloat(float64(s), 'f', -1, 32), true
		}
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// Number converts a scalar to float64. Numeric strings are accepted after
// trimming surrounding spaces.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return math.NaN(), false
	}
}

// Truthy follows JavaScript truthiness: nil, false, 0, NaN and "" are
// falsy, everything else (including empty maps and slices) is truthy.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := Number(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return Of(v) != Null
}
