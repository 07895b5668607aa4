// The measured outcome of one benchmark run.
//
// In config lines the outcome is the first '|'-separated value and is itself a '; '-separated
// list:
//
//   result; elapsed; threads [; revision [; extra [; note]]]
//
// where the trailing fields are written only when they (or a later field) carry information.
// Files written before the structured form existed have only a bare score there.

package benchvalue

import (
	"strconv"
	"strings"

	"benchres/numtext"
)

// Extra and UserNote are stored in fixed 256-byte buffers by the programs that produce results.
const MaxTextLen = 255

type Value struct {
	Result      float64
	ElapsedTime float64
	ThreadsUsed int
	Revision    int
	Extra       string
	UserNote    string
}

// Empty is the value of a benchmark that has not produced anything.  A Result of -1 is also how
// Parse says the text was not a structured value.
func Empty() Value {
	return Value{Result: -1, Revision: -1}
}

func (v Value) String() string {
	hasRev := v.Revision >= 0
	hasExtra := v.Extra != ""
	hasNote := v.UserNote != ""
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(v.Result, 'f', 6, 64))
	b.WriteString("; ")
	b.WriteString(strconv.FormatFloat(v.ElapsedTime, 'f', 6, 64))
	b.WriteString("; ")
	b.WriteString(strconv.Itoa(v.ThreadsUsed))
	if hasRev || hasExtra || hasNote {
		b.WriteString("; ")
		b.WriteString(strconv.Itoa(v.Revision))
	}
	if hasExtra || hasNote {
		b.WriteString("; ")
		b.WriteString(v.Extra)
	}
	if hasNote {
		b.WriteString("; ")
		b.WriteString(v.UserNote)
	}
	return b.String()
}

// Parse reads the structured form.  If the result, elapsed time and thread count cannot all be
// read it returns Empty().  Decimal commas are accepted in the two numbers.
func Parse(s string) Value {
	v := Empty()
	fields := strings.Split(s, ";")
	if len(fields) < 3 {
		return v
	}
	result, ok := decimal(fields[0])
	if !ok {
		return v
	}
	elapsed, ok := decimal(fields[1])
	if !ok {
		return v
	}
	threads, _, ok := numtext.IntPrefix(fields[2])
	if !ok {
		return v
	}
	v.Result = result
	v.ElapsedTime = elapsed
	v.ThreadsUsed = int(threads)
	if len(fields) > 3 {
		if rev, _, ok := numtext.IntPrefix(fields[3]); ok {
			v.Revision = int(rev)
		}
	}
	if len(fields) > 4 {
		v.Extra = text(fields[4])
	}
	if len(fields) > 5 {
		v.UserNote = text(fields[5])
	}
	return v
}

// A run of [-+0-9.,] with the first ',' taken as the decimal point.
func decimal(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) && strings.IndexByte("-+0123456789.,", s[end]) != -1 {
		end++
	}
	if end == 0 {
		return 0, false
	}
	num := strings.Replace(s[:end], ",", ".", 1)
	f, _, _ := numtext.FloatPrefix(num)
	return f, true
}

func text(s string) string {
	s = strings.TrimLeft(s, " \t\n\r")
	if ix := strings.IndexAny(s, "\r\n|"); ix != -1 {
		s = s[:ix]
	}
	return Truncate(s, MaxTextLen)
}

// Sanitize replaces the characters that would break the config-line or outcome syntax.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', ';', '|':
			return '_'
		}
		return r
	}, s)
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
