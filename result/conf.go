// Decoding benchmark.conf lines.
//
// A line is `key=v0|v1|...` in a section named for the benchmark.  The number of values identifies
// the generation of the writer:
//
//   - ModernLegacy (10 or more): the key is the machine id and the values are positional, see
//     EncodeConfigLine.  Writers have appended fields over time; trailing fields beyond the tenth
//     are each optional.
//   - OldLegacy (2 to 9): the key is the CPU name, possibly with an "Nx" core count prefix, and
//     the values are the score and the CPU configuration.  Everything else is guessed.
//   - Malformed (fewer than 2): only the benchmark name is known.
//
// Decoding never fails.  Unparsable numbers become 0 as they would with atoi.

package result

import (
	"strings"

	"benchres/benchvalue"
	"benchres/common"
	"benchres/freq"
	"benchres/i18n"
	"benchres/machine"
	"benchres/numtext"
	"benchres/x86"
)

type LineLayout int

const (
	Malformed LineLayout = iota
	OldLegacy
	ModernLegacy
)

const (
	modernMinFields = 10
	oldMinFields    = 2
)

func (l LineLayout) String() string {
	switch l {
	case ModernLegacy:
		return "modern"
	case OldLegacy:
		return "old"
	default:
		return "malformed"
	}
}

func ClassifyLine(values []string) LineLayout {
	switch {
	case len(values) >= modernMinFields:
		return ModernLegacy
	case len(values) >= oldMinFields:
		return OldLegacy
	default:
		return Malformed
	}
}

// DecodeConfigLine decodes one line from section `section` of benchmark.conf.  The translator
// provides the unit in the CPU configuration; nil means English.
func DecodeConfigLine(section, key string, values []string, tr i18n.Translator) *Result {
	r := &Result{
		Name:    section,
		Value:   benchvalue.Value{Revision: -1},
		Machine: &machine.Snapshot{},
	}
	layout := ClassifyLine(values)
	switch layout {
	case ModernLegacy:
		decodeModern(r, key, values)
	case OldLegacy:
		common.Log.Debugf("[%s] %q: %s layout", section, key, layout)
		decodeOld(r, key, values, tr)
	default:
		common.Log.Debugf("[%s] %q: %d values, only the name is kept", section, key, len(values))
	}

	m := r.Machine
	m.CpuConfig = freq.Retranslate(m.CpuConfig, false, tr)
	m.NormalizeText()
	m.GenerateId()
	return r
}

func decodeModern(r *Result, key string, values []string) {
	m := r.Machine
	m.MachineId = key
	r.Value = benchvalue.Parse(values[0])
	if r.Value.Result == -1 {
		r.Value.Result = float64(numtext.Atoi(values[0]))
	}
	r.Value.ThreadsUsed = numtext.Atoi(values[1])
	m.Board = values[2]
	m.CpuName = values[3]
	m.CpuDesc = values[4]
	m.CpuConfig = values[5]
	m.MemoryKiB = numtext.Atou64(values[6])
	m.Processors = numtext.Atoi(values[7])
	m.Cores = numtext.Atoi(values[8])
	m.Threads = numtext.Atoi(values[9])

	optional := func(ix int) (string, bool) {
		if ix < len(values) {
			return values[ix], true
		}
		return "", false
	}
	if s, ok := optional(10); ok {
		m.OglRenderer = s
	}
	if s, ok := optional(11); ok {
		m.GpuDesc = s
	}
	if s, ok := optional(12); ok {
		m.DataVersion = numtext.Atoi(s)
	}
	if s, ok := optional(13); ok {
		m.PointerBits = numtext.Atoi(s)
	}
	if s, ok := optional(14); ok {
		m.IsSuData = numtext.Atoi(s) != 0
	}
	if s, ok := optional(15); ok {
		m.PhysMemoryMiB = numtext.Atou64(s)
	}
	if s, ok := optional(16); ok {
		m.RamTypes = s
	}
	r.Legacy = false
}

func decodeOld(r *Result, key string, values []string, tr i18n.Translator) {
	m := r.Machine
	r.Value.Result = numtext.Atof(values[0])
	r.Legacy = true

	// The oldest lines put the core count before the CPU name: "4x Pentium III".
	if n, rest, ok := freq.MultiplierPrefix(key); ok && n > 0 {
		m.CpuName = strings.TrimSpace(rest)
		m.Threads = n
	} else {
		m.CpuName = strings.TrimSpace(key)
		m.Threads = 1
	}

	// Later ones carry it in the configuration instead, and that wins.
	m.CpuConfig = values[1]
	if n, _, ok := freq.MultiplierPrefix(values[1]); ok && n > 0 {
		m.Threads = n
	}

	r.Value.ThreadsUsed = GuessThreads(r.Name, m.Threads)

	// Old writers recorded the current clock rather than the maximum.  If the name advertises a
	// clock ("... @ 2.00GHz") that is clearly higher, use that instead.
	if mhz, ok := ClockFromName(m.CpuName); ok {
		unit := freq.EnglishUnit
		if tr != nil {
			unit = tr.Translate(freq.EnglishUnit)
		}
		synth := freq.Format(r.Value.ThreadsUsed, mhz, unit)
		if freq.Compare(m.CpuConfig, synth) == -1 && !freq.IsClose(m.CpuConfig, synth) {
			common.Log.Debugf("[%s] %q: config %s replaced by %s",
				r.Name, key, freq.Describe(m.CpuConfig), freq.Describe(synth))
			m.CpuConfig = synth
		}
	}

	m.Processors = -1
	m.Cores = -1

	if x86.NeedsCleanup(m.CpuName) {
		m.CpuName = x86.NiceName(m.CpuName)
	}
}

// ClockFromName finds the clock rate advertised in a CPU name, in MHz: "Pentium III @ 1.00GHz"
// yields 1000.  It looks at the first "Hz" only, which must not be at the very start of the name.
// The letter before "Hz" is the scale, 'G' meaning GHz and anything else MHz, and the number is
// the run of digits, dots and spaces before that.
func ClockFromName(name string) (float64, bool) {
	hz := strings.Index(name, "Hz")
	if hz <= 2 {
		return 0, false
	}
	scale := 1.0
	if name[hz-1] == 'G' {
		scale = 1000
	}
	i := hz - 2
	for i > 0 && strings.IndexByte("0123456789. ", name[i]) != -1 {
		i--
	}
	if i == 0 {
		return 0, false
	}
	return numtext.Atof(name[i+1:]) * scale, true
}
