package result

import (
	"strconv"
	"strings"

	"benchres/freq"
	"benchres/keyfile"
	"benchres/machine"
)

// EncodeConfigLine renders r as a current benchmark.conf line, newline included:
//
//   mid=value|threadsUsed|board|cpuName|cpuDesc|cpuConfig|memKiB|procs|cores|threads|
//       ogl|gpu|dataVersion|ptrBits|isSu|physMiB|ramTypes
//
// The machine id is sanitized as by machine.MakeId, since ids from JSON are not, and generated if
// missing.  Free text is escaped for the separator and the CPU configuration is written with the
// English unit so that files do not depend on the locale.
func EncodeConfigLine(r *Result) string {
	m := r.Machine
	text := func(s string) string {
		return keyfile.EscapeValue(s, keyfile.Separator)
	}
	su := 0
	if m.IsSuData {
		su = 1
	}
	fields := []string{
		text(r.Value.String()),
		strconv.Itoa(r.Value.ThreadsUsed),
		text(m.Board),
		text(m.CpuName),
		text(m.CpuDesc),
		text(freq.Retranslate(m.CpuConfig, true, nil)),
		strconv.FormatUint(m.MemoryKiB, 10),
		strconv.Itoa(m.Processors),
		strconv.Itoa(m.Cores),
		strconv.Itoa(m.Threads),
		text(m.OglRenderer),
		text(m.GpuDesc),
		strconv.Itoa(m.DataVersion),
		strconv.Itoa(m.PointerBits),
		strconv.Itoa(su),
		strconv.FormatUint(m.PhysMemoryMiB, 10),
		text(m.RamTypes),
	}
	mid := machine.SanitizeId(m.MachineId)
	if mid == "" {
		mid = machine.MakeId(m.Board, m.CpuName, m.CpuConfig)
	}
	return mid + "=" + strings.Join(fields, string(keyfile.Separator)) + "\n"
}
