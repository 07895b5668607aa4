package keyfile

import (
	"strings"
)

// EscapeValue escapes s for use as one element of a key-file list separated by sep.  Leading
// blanks, line breaks, backslashes and the separator are written as escapes.
func EscapeValue(s string, sep byte) string {
	var b strings.Builder
	leading := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' && leading:
			b.WriteString(`\s`)
		case c == '\t' && leading:
			b.WriteString(`\t`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\\':
			b.WriteString(`\\`)
		case c == sep:
			b.WriteByte('\\')
			b.WriteByte(sep)
		default:
			if c != ' ' && c != '\t' {
				leading = false
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SplitList splits a raw key-file value on unescaped sep and unescapes the pieces.  A trailing
// separator does not start a new, empty element, and an empty value is an empty list.  Unknown
// escapes are kept verbatim.
func SplitList(value string, sep byte) []string {
	pieces := make([]string, 0, 17)
	var b strings.Builder
	pending := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		pending = true
		if c == sep {
			pieces = append(pieces, b.String())
			b.Reset()
			pending = false
			continue
		}
		if c != '\\' || i+1 == len(value) {
			b.WriteByte(c)
			continue
		}
		i++
		switch value[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case sep:
			b.WriteByte(sep)
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	if pending {
		pieces = append(pieces, b.String())
	}
	return pieces
}
