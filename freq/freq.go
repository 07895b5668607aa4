// CPU frequency configuration strings.
//
// A configuration describes groups of cores running at the same clock:
//
//   config ::= group (" + " group)*
//   group  ::= N "x " MHZ " " unit
//
// for example "2x 1400.00 MHz + 2x 800.00 MHz".  The unit is localized and is never interpreted.
// A string that contains no "x" at all is a bare clock speed meaning a single group of one core.
//
// Parsing is lenient: groups are read left to right and reading stops at the first group that
// does not parse, keeping what has been summed so far.

package freq

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"benchres/i18n"
	"benchres/numtext"
)

const EnglishUnit = "MHz"

// Group is one "Nx MHZ" term.
type Group struct {
	Count int
	MHz   float64
}

// Parse returns the groups of s in order.  A bare number yields a single group with Count 1.
func Parse(s string) []Group {
	if s == "" {
		return nil
	}
	if !strings.ContainsRune(s, 'x') {
		f, _, _ := numtext.FloatPrefix(s)
		if math.IsInf(f, 0) {
			f = 0
		}
		return []Group{{Count: 1, MHz: f}}
	}
	groups := make([]Group, 0, 2)
	for _, seg := range strings.Split(s, "+") {
		g, ok := parseGroup(seg)
		if !ok {
			break
		}
		groups = append(groups, g)
	}
	return groups
}

func parseGroup(seg string) (Group, bool) {
	n, used, ok := numtext.IntPrefix(seg)
	if !ok {
		return Group{}, false
	}
	seg = seg[used:]
	if !strings.HasPrefix(seg, "x") {
		return Group{}, false
	}
	f, _, ok := numtext.FloatPrefix(seg[1:])
	if !ok || math.IsInf(f, 0) {
		return Group{}, false
	}
	return Group{Count: int(n), MHz: f}, true
}

// Value is the sum of Count*MHz over all groups: "2x 1400.00 MHz + 2x 800.00 MHz" -> 4400.
func Value(s string) float64 {
	var r float64
	for _, g := range Parse(s) {
		r += float64(g.Count) * g.MHz
	}
	return r
}

func Compare(a, b string) int {
	r0, r1 := Value(a), Value(b)
	switch {
	case r0 == r1:
		return 0
	case r0 < r1:
		return -1
	default:
		return 1
	}
}

// IsClose is true if a is below b but by no more than 10%.
func IsClose(a, b string) bool {
	r0, r1 := Value(a), Value(b)
	return r0 >= r1*0.9 && r0 < r1
}

// Format renders a single group.
func Format(count int, mhz float64, unit string) string {
	return strconv.Itoa(count) + "x " + strconv.FormatFloat(mhz, 'f', 2, 64) + " " + unit
}

// Retranslate rewrites s in canonical form with the given translator's unit, or with the English
// unit if forceEnglish is set or tr is nil.  It is idempotent.
func Retranslate(s string, forceEnglish bool, tr i18n.Translator) string {
	if s == "" {
		return ""
	}
	unit := EnglishUnit
	if !forceEnglish && tr != nil {
		unit = tr.Translate(EnglishUnit)
	}
	var b strings.Builder
	for i, g := range Parse(s) {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(Format(g.Count, g.MHz, unit))
	}
	return b.String()
}

// MultiplierPrefix recognizes an "Nx" prefix where N is all decimal digits, as in "4x Pentium III"
// or "4x 800.00 MHz".  It returns N and the text following the "x".
func MultiplierPrefix(s string) (n int, rest string, ok bool) {
	ix := strings.IndexByte(s, 'x')
	if ix < 1 {
		return 0, "", false
	}
	for i := 0; i < ix; i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, "", false
		}
	}
	n, err := strconv.Atoi(s[:ix])
	if err != nil {
		return 0, "", false
	}
	return n, s[ix+1:], true
}

// Describe renders a configuration for logging.
func Describe(s string) string {
	return fmt.Sprintf("%q (%.2f MHz total)", s, Value(s))
}
