// Package flatten turns nested maps and sequences into a single-level map
// keyed by path, and aggregates leaves by their index-free path.
//
// Paths join map keys with "." and sequence indices with "[i]":
//
//	{"a": [{"v": 5}, {"v": 7}], "b": {"v": 1}}
//
// flattens to
//
//	a[0].v = 5
//	a[1].v = 7
//	b.v    = 1
package flatten

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aescanero/dago-node-render/internal/value"
)

// matches everything up to and including the innermost index segment
var indexPrefix = regexp.MustCompile(`^.*\[\d+\]\.?`)

var indexSegment = regexp.MustCompile(`\[\d+\]`)

// Flatten records every scalar leaf of v under its path. A scalar root is
// recorded under the empty path.
func Flatten(v interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	walk(reflect.ValueOf(v), "", out)
	return out
}

func walk(rv reflect.Value, path string, out map[string]interface{}) {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr) {
		if rv.IsNil() {
			out[path] = nil
			return
		}
		rv = rv.Elem()
	}

	if !rv.IsValid() {
		out[path] = nil
		return
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			out[path] = nil
			return
		}
		for _, key := range sortedKeys(rv) {
			walk(rv.MapIndex(key), join(path, fmt.Sprint(key.Interface())), out)
		}

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			out[path] = string(rv.Bytes())
			return
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			out[path] = nil
			return
		}
		for i := 0; i < rv.Len(); i++ {
			walk(rv.Index(i), path+"["+strconv.Itoa(i)+"]", out)
		}

	default:
		out[path] = rv.Interface()
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// sortedKeys keeps traversal order stable between runs
func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}

// ItemKey strips the index segments from path together with the path
// leading to the innermost sequence, leaving the key relative to the
// sequence item: "a[0].v" becomes "v", "a.b[1][2].c.d" becomes "c.d". A
// path that crosses no sequence is returned unchanged.
func ItemKey(path string) string {
	return indexPrefix.ReplaceAllString(path, "")
}

// StripIndices removes every index segment from path: "a[0].b[1].c"
// becomes "a.b.c" and "[0].v" becomes "v".
func StripIndices(path string) string {
	return strings.TrimPrefix(indexSegment.ReplaceAllString(path, ""), ".")
}

// SumAll adds up every leaf whose index-free path or item key equals key,
// so "order.items.price" and "price" both select order.items[i].price.
// Leaves are parsed as numbers after removing thousands separators; a
// matching leaf that is not numeric turns the sum into NaN.
func SumAll(v interface{}, key string) float64 {
	var sum float64
	for path, leaf := range Flatten(v) {
		if StripIndices(path) != key && ItemKey(path) != key {
			continue
		}
		sum += leafNumber(leaf)
	}
	return sum
}

func leafNumber(leaf interface{}) float64 {
	if s, ok := leaf.(string); ok {
		return parseNumber(strings.ReplaceAll(s, ",", ""))
	}
	if value.Of(leaf) == value.Null {
		return math.NaN()
	}
	if _, isBool := leaf.(bool); isBool {
		return math.NaN()
	}
	if f, ok := value.Number(leaf); ok {
		return f
	}
	return parseNumber(fmt.Sprint(leaf))
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
