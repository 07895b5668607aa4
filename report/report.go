// Human-readable reports in the key-file style used by the result viewers:
//
//   [Section]
//   Key=Value
//
// Reports are built as data first and rendered last so that their content can be checked without
// depending on layout.

package report

import (
	"fmt"
	"strings"
)

// Unknown is the placeholder for absent values.  It is a message key; translate it at render time.
const Unknown = "(Unknown)"

// ProblemMarker flags an entry that the reader should treat with suspicion.
const ProblemMarker = "(!)"

type Entry struct {
	Key   string
	Value string
}

type Section struct {
	Name    string
	Entries []Entry
}

type Report []Section

// Add appends an entry.
func (s *Section) Add(key, value string) {
	s.Entries = append(s.Entries, Entry{Key: key, Value: value})
}

// Addf appends an entry with a formatted value.
func (s *Section) Addf(key, format string, args ...any) {
	s.Add(key, fmt.Sprintf(format, args...))
}

// AddIf appends the entry only if cond holds.
func (s *Section) AddIf(cond bool, key, value string) {
	if cond {
		s.Add(key, value)
	}
}

func (s Section) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", s.Name)
	for _, e := range s.Entries {
		fmt.Fprintf(&b, "%s=%s\n", e.Key, e.Value)
	}
	return b.String()
}

func (r Report) String() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.String())
	}
	return b.String()
}
