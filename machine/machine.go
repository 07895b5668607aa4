// A snapshot of the hardware a benchmark ran on.
//
// Text fields use "" for "not known".  Numeric fields use 0, except that Processors and Cores are
// -1 in results that predate their collection.

package machine

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"benchres/freq"
	"benchres/numtext"
)

type Snapshot struct {
	Board         string
	MemoryKiB     uint64 // total memory as the OS sees it
	CpuName       string
	CpuDesc       string
	CpuConfig     string // see package freq
	OglRenderer   string
	GpuDesc       string
	Processors    int
	Cores         int
	Threads       int // available, not necessarily used
	MachineId     string
	PointerBits   int    // 32, 64...; 0 for unspecified
	IsSuData      bool   // collected with root privileges
	PhysMemoryMiB uint64 // installed memory from DMI/SPD/device tree/memory blocks
	RamTypes      string
	DataVersion   int
}

// The machine id is built from untranslated text so that it is the same in every locale.
const unknownBoard = "(Unknown)"

// MakeId computes the machine id for the board, CPU name and CPU configuration.
func MakeId(board, cpuName, cpuConfig string) string {
	if board == "" {
		board = unknownBoard
	}
	return SanitizeId(fmt.Sprintf("%s;%s;%.2f", board, cpuName, freq.Value(cpuConfig)))
}

// SanitizeId replaces every byte outside [A-Za-z0-9();] by '_'.
func SanitizeId(s string) string {
	id := []byte(s)
	for i, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '(', c == ')', c == ';':
		default:
			id[i] = '_'
		}
	}
	return string(id)
}

// GenerateId recomputes MachineId from the other fields.
func (m *Snapshot) GenerateId() {
	m.MachineId = MakeId(m.Board, m.CpuName, m.CpuConfig)
}

// Inventory is the source of live machine facts.  Implementations return "" or 0 for what they
// cannot find out; none of the methods fail.
type Inventory interface {
	Motherboard() string
	ProcessorName() string
	ProcessorDesc() string
	ProcessorFrequencyDesc() string
	GPUList() string
	OGLRenderer() string
	MemoryTotalKiB() string
	SystemMemoryMiB() uint64
	SystemMemoryTypes() string
	ProcessorTopology() (processors, cores, threads int)
}

// An Inventory describing some other machine than the one we are running on implements this.
type PointerBitser interface {
	PointerBits() int
}

// This builds a snapshot of the machine described by inv, as seen by the running program.
func This(inv Inventory) *Snapshot {
	m := &Snapshot{
		PointerBits:   strconv.IntSize,
		IsSuData:      os.Getuid() == 0,
		Board:         inv.Motherboard(),
		CpuName:       inv.ProcessorName(),
		CpuDesc:       inv.ProcessorDesc(),
		CpuConfig:     inv.ProcessorFrequencyDesc(),
		GpuDesc:       inv.GPUList(),
		OglRenderer:   inv.OGLRenderer(),
		MemoryKiB:     numtext.Atou64(inv.MemoryTotalKiB()),
		PhysMemoryMiB: inv.SystemMemoryMiB(),
		RamTypes:      inv.SystemMemoryTypes(),
	}
	m.Processors, m.Cores, m.Threads = inv.ProcessorTopology()
	if pb, ok := inv.(PointerBitser); ok {
		m.PointerBits = pb.PointerBits()
	}
	m.GenerateId()
	return m
}

// NormalizeText nulls text fields that hold only white space.
func (m *Snapshot) NormalizeText() {
	if strings.TrimSpace(m.Board) == "" {
		m.Board = ""
	}
	if strings.TrimSpace(m.CpuDesc) == "" {
		m.CpuDesc = ""
	}
}
