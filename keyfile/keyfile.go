// Read and write benchmark.conf files.
//
// The file format is line-oriented and follows GLib key files with '|' as the list separator:
//
// The file is first stripped of comment lines and blank lines:
//   COMMENT = /^\s*#.*$/
//   BLANK = /^\s*$/
//
// The remaining file must then conform to this grammar:
//   file ::= section*
//   section ::= section-header entry*
//   section-header ::= /^\[NAME\]\s*$/
//   entry ::= /^KEY=VALUE$/
//
// where
//   NAME = /[^\]]+/      the benchmark name, eg "CPU Blowfish"
//   KEY = /[^=]+/        the machine identifier, trimmed
//   VALUE = .*           a '|'-separated list of escaped values
//
// Section names may repeat.  A key that repeats within a section replaces the earlier entry, as
// GLib does.  Malformed lines are dropped and counted, they never stop the reader.

package keyfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const Separator = '|'

// MT: Constant after initialization; immutable
var ErrSyntax = errors.New("benchmark.conf syntax error")

var (
	commentOrBlankLine = regexp.MustCompile(`^\s*(#.*)?$`)
	headerLine         = regexp.MustCompile(`^\[([^\]]+)\]\s*$`)
)

// Entry is one KEY=VALUE line with its section and its value list split and unescaped.
type Entry struct {
	Section string
	Key     string
	Values  []string
	Line    int
}

// ReadBenchmarkConf returns the entries of the file in file order, the number of malformed lines
// dropped, and an error only for I/O failures.
func ReadBenchmarkConf(input io.Reader) (entries []Entry, softErrors int, err error) {
	entries = make([]Entry, 0)
	index := make(map[[2]string]int)
	lineNo := 0
	section := ""
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		l := strings.TrimSuffix(scanner.Text(), "\r")
		lineNo++
		if commentOrBlankLine.MatchString(l) {
			continue
		}
		if m := headerLine.FindStringSubmatch(l); m != nil {
			section = m[1]
			continue
		}
		key, value, found := strings.Cut(l, "=")
		key = strings.TrimSpace(key)
		if section == "" || !found || key == "" {
			softErrors++
			continue
		}
		e := Entry{
			Section: section,
			Key:     key,
			Values:  SplitList(strings.TrimLeft(value, " \t"), Separator),
			Line:    lineNo,
		}
		k := [2]string{section, key}
		if ix, found := index[k]; found {
			entries[ix] = e
		} else {
			index[k] = len(entries)
			entries = append(entries, e)
		}
	}
	err = scanner.Err()
	return
}

// ParseLine splits a single KEY=VALUE line, for callers that have the line in hand.
func ParseLine(line string) (key string, values []string, err error) {
	line = strings.TrimRight(line, "\r\n")
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrSyntax, line)
	}
	return key, SplitList(strings.TrimLeft(value, " \t"), Separator), nil
}

// Section is a named group of already-formatted KEY=VALUE lines.
type Section struct {
	Name  string
	Lines []string
}

func (s Section) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", s.Name)
	for _, l := range s.Lines {
		b.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteBenchmarkConf writes the sections in order, separated by blank lines.
func WriteBenchmarkConf(output io.Writer, sections []Section) error {
	w := bufio.NewWriter(output)
	for i, s := range sections {
		if i > 0 {
			w.WriteByte('\n')
		}
		w.WriteString(s.String())
	}
	return w.Flush()
}
