// Human-readable reports on a result.  Keys, section names and units are translated; values are
// not, except for the placeholder for unknown values.

package result

import (
	"fmt"
	"strings"

	"benchres/freq"
	"benchres/i18n"
	"benchres/machine"
	"benchres/report"
)

type Variant int

const (
	SummaryVariant Variant = iota
	CompleteVariant
)

func (v Variant) String() string {
	if v == CompleteVariant {
		return "complete"
	}
	return "summary"
}

// ParseVariant maps "summary" (or "") and "complete" to a variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "summary":
		return SummaryVariant, nil
	case "complete":
		return CompleteVariant, nil
	}
	return SummaryVariant, fmt.Errorf("Unknown report variant %q", s)
}

const legacyNote = "This result is from an old version of the benchmark suite. " +
	"Results might not be comparable to the current version. Some details are missing."

// Describe renders the summary report.
func Describe(r *Result, tr i18n.Translator) string {
	return Summary(r, tr)
}

// DescribeAs renders the report of the given variant.
func DescribeAs(r *Result, tr i18n.Translator, v Variant) string {
	if v == CompleteVariant {
		return Complete(r, tr)
	}
	return Summary(r, tr)
}

func Summary(r *Result, tr i18n.Translator) string {
	return SummaryReport(r, tr).String()
}

func Complete(r *Result, tr i18n.Translator) string {
	return CompleteReport(r, tr).String()
}

func SummaryReport(r *Result, tr i18n.Translator) report.Report {
	tr = orEnglish(tr)
	v := &r.Value
	m := r.Machine

	bench := report.Section{Name: tr.Translate("Benchmark Result")}
	bench.Addf(tr.Translate("Threads"), "%d", v.ThreadsUsed)
	bench.Addf(tr.Translate("Elapsed Time"), "%0.4f %s", v.ElapsedTime, tr.Translate("seconds"))
	bench.AddIf(v.Revision >= 0, tr.Translate("Revision"), fmt.Sprint(v.Revision))
	addNotes(&bench, r, tr)

	var memory string
	switch {
	case m.PhysMemoryMiB != 0:
		memory = strings.TrimRight(
			fmt.Sprintf("%d %s %s", m.PhysMemoryMiB, tr.Translate("MiB"), m.RamTypes), " ")
	case m.MemoryKiB > 0:
		memory = fmt.Sprintf("%d %s %s", m.MemoryKiB, tr.Translate("kiB"), report.ProblemMarker)
	default:
		memory = tr.Translate(report.Unknown)
	}

	mach := machineSection(m, tr)
	mach.Add(tr.Translate("Memory"), memory)
	addPointerSize(&mach, m.PointerBits, tr)

	return report.Report{bench, mach}
}

func CompleteReport(r *Result, tr i18n.Translator) report.Report {
	tr = orEnglish(tr)
	v := &r.Value
	m := r.Machine

	name := r.Name
	if v.Revision >= 0 {
		name = fmt.Sprintf("%s (r%d)", name, v.Revision)
	}
	bench := report.Section{Name: tr.Translate("Benchmark Result")}
	bench.Add(tr.Translate("Benchmark"), name)
	bench.Addf(tr.Translate("Threads"), "%d", v.ThreadsUsed)
	bench.Addf(tr.Translate("Result"), "%0.2f", v.Result)
	bench.Addf(tr.Translate("Elapsed Time"), "%0.4f %s", v.ElapsedTime, tr.Translate("seconds"))
	addNotes(&bench, r, tr)

	su := 0
	if m.IsSuData {
		su = 1
	}
	mach := machineSection(m, tr)
	mach.Addf(tr.Translate("Memory"), "%d %s", m.MemoryKiB, tr.Translate("kiB"))
	mach.Add(tr.Translate("Physical Memory"), strings.TrimRight(
		fmt.Sprintf("%d %s %s", m.PhysMemoryMiB, tr.Translate("MiB"), m.RamTypes), " "))
	addPointerSize(&mach, m.PointerBits, tr)
	mach.Addf(".machine_data_version", "%d", m.DataVersion)
	mach.Addf(".is_su_data", "%d", su)

	handles := report.Section{Name: tr.Translate("Handles")}
	handles.Add("mid", m.MachineId)
	handles.Addf("cfg_val", "%.2f", freq.Value(m.CpuConfig))

	return report.Report{bench, mach, handles}
}

func orEnglish(tr i18n.Translator) i18n.Translator {
	if tr == nil {
		return i18n.English
	}
	return tr
}

func machineSection(m *machine.Snapshot, tr i18n.Translator) report.Section {
	orUnknown := func(s string) string {
		if s == "" {
			return tr.Translate(report.Unknown)
		}
		return s
	}
	s := report.Section{Name: tr.Translate("Machine")}
	s.Add(tr.Translate("Board"), orUnknown(m.Board))
	s.Add(tr.Translate("CPU Name"), m.CpuName)
	s.Add(tr.Translate("CPU Description"), orUnknown(m.CpuDesc))
	s.Add(tr.Translate("CPU Config"), m.CpuConfig)
	s.Addf(tr.Translate("Threads Available"), "%d", m.Threads)
	s.Add(tr.Translate("GPU"), orUnknown(m.GpuDesc))
	s.Add(tr.Translate("OpenGL Renderer"), orUnknown(m.OglRenderer))
	return s
}

func addNotes(s *report.Section, r *Result, tr i18n.Translator) {
	s.AddIf(r.Value.Extra != "", tr.Translate("Extra Information"), r.Value.Extra)
	s.AddIf(r.Value.UserNote != "", tr.Translate("User Note"), r.Value.UserNote)
	s.AddIf(r.Legacy, report.ProblemMarker+tr.Translate("Note"), tr.Translate(legacyNote))
}

func addPointerSize(s *report.Section, bits int, tr i18n.Translator) {
	if bits != 0 {
		s.Add(tr.Translate("Pointer Size"), tr.Translate("%d-bit", bits))
	}
}
