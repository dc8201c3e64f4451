// Package notifyid derives stable notification ids from string keys.
//
// The hash folds UTF-16 code units into a wrapping 32-bit accumulator
// (acc = acc*31 + unit) and returns its absolute value. Ids generated by
// earlier senders depend on this exact algorithm, do not change it.
package notifyid

import (
	"math/rand/v2"
	"unicode/utf16"
)

// MaxRandom is the upper bound of ids generated for empty keys
const MaxRandom = 100000

// Hash returns the absolute value of the 32-bit polynomial hash of key. The
// result is an int64 so that math.MinInt32 keeps its magnitude.
func Hash(key string) int64 {
	var acc int32
	for _, unit := range utf16.Encode([]rune(key)) {
		acc = acc*31 + int32(unit)
	}

	h := int64(acc)
	if h < 0 {
		h = -h
	}
	return h
}

// Generate returns Hash(key), or a random id in [1, MaxRandom] when key is
// empty.
func Generate(key string) int64 {
	if key == "" {
		return rand.Int64N(MaxRandom) + 1
	}
	return Hash(key)
}
