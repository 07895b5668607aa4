// Lenient number parsing for old result files.
//
// The files were written and read by C code with atoi(), atof(), strtoull() and sscanf(), so a
// field that is "123.4abc" means 123.4 and a field that is "abc" means 0.  These functions give
// the same answers: they skip leading white space, consume the longest numeric prefix, and ignore
// whatever follows.  Nothing here ever fails, the bool results only say whether any digits were
// consumed.

package numtext

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix   = regexp.MustCompile(`^[-+]?[0-9]+`)
	floatPrefix = regexp.MustCompile(`^[-+]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][-+]?[0-9]+)?`)
)

func trimLeft(s string) string {
	return strings.TrimLeft(s, " \t\n\r\v\f")
}

// IntPrefix parses a leading decimal integer.  It returns the value, the number of bytes consumed
// (including leading space) and whether there was a number at all.  Values out of range clamp.
func IntPrefix(s string) (int64, int, bool) {
	t := trimLeft(s)
	m := intPrefix.FindString(t)
	if m == "" {
		return 0, 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		if m[0] == '-' {
			n = math.MinInt64
		} else {
			n = math.MaxInt64
		}
	}
	return n, len(s) - len(t) + len(m), true
}

// FloatPrefix parses a leading decimal floating point number with an optional exponent.
func FloatPrefix(s string) (float64, int, bool) {
	t := trimLeft(s)
	m := floatPrefix.FindString(t)
	if m == "" {
		return 0, 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Only range errors are possible here, and ParseFloat has already produced ±Inf or 0.
		if math.IsInf(f, 0) || f == 0 {
			return f, len(s) - len(t) + len(m), true
		}
		return 0, 0, false
	}
	return f, len(s) - len(t) + len(m), true
}

// Atoi is C atoi() truncated to int.
func Atoi(s string) int {
	n, _, _ := IntPrefix(s)
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

// Atof is C atof().
func Atof(s string) float64 {
	f, _, _ := FloatPrefix(s)
	return f
}

// Atou64 is C strtoull(s, NULL, 10) except that negative input yields 0 rather than wrapping.
func Atou64(s string) uint64 {
	t := trimLeft(s)
	t = strings.TrimPrefix(t, "+")
	end := 0
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseUint(t[:end], 10, 64)
	if err != nil {
		return math.MaxUint64
	}
	return n
}
