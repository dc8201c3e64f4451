// Package words spells integers out in English.
//
//	words.FromInt(105)     // "one hundred five"
//	words.FromInt(1000000) // "one million"
package words

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNegative is returned for numbers below zero
	ErrNegative = errors.New("negative numbers are not supported")

	// ErrOutOfRange is returned for numbers beyond the quadrillion scale
	ErrOutOfRange = errors.New("number exceeds quadrillion scale")

	// ErrNotInteger is returned when the input is not a whole number
	ErrNotInteger = errors.New("not an integer")
)

var ones = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scales = []string{"", "thousand", "million", "billion", "trillion", "quadrillion"}

// FromInt converts n to English words. Chunks of three digits are spelled
// and suffixed with their scale, then joined with single spaces from the
// most significant chunk down.
func FromInt(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}
	if n == 0 {
		return "zero", nil
	}

	var chunks []string
	for pos := 0; n > 0; pos++ {
		chunk := int(n % 1000)
		n /= 1000

		if chunk == 0 {
			continue
		}
		if pos >= len(scales) {
			return "", ErrOutOfRange
		}

		text := chunkWords(chunk)
		if scales[pos] != "" {
			text += " " + scales[pos]
		}
		chunks = append(chunks, text)
	}

	// least significant first, so reverse
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}
	return strings.Join(chunks, " "), nil
}

// chunkWords spells 1..999
func chunkWords(n int) string {
	var parts []string

	if h := n / 100; h > 0 {
		parts = append(parts, ones[h], "hundred")
	}

	rest := n % 100
	if rest >= 20 {
		parts = append(parts, tens[rest/10])
		rest %= 10
	}
	if rest > 0 {
		parts = append(parts, ones[rest])
	}

	return strings.Join(parts, " ")
}

// Parse coerces a template value to an int64. Strings are trimmed and may
// contain thousands separators; floats must be whole numbers.
func Parse(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float64:
		return fromFloat(n)
	case float32:
		return fromFloat(float64(n))
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, n)
		}
		return fromFloat(f)
	default:
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, v)
	}
}

func fromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, f)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, ErrOutOfRange
	}
	return int64(f), nil
}
