// Machine facts from Sonar `sysinfo` records (v0 "new format" JSON).
//
// Sonar does not record the board, clock speeds, memory types or an OpenGL renderer; those come
// back empty.

package sysinfo

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NordicHPC/sonar/util/formats/newfmt"

	"benchres/machine"
)

type Sonar struct {
	Node           string
	Architecture   string
	CpuModel       string
	Sockets        uint64
	CoresPerSocket uint64
	ThreadsPerCore uint64
	MemoryKiB      uint64
	Gpus           []string // model name per card
}

var _ machine.Inventory = (*Sonar)(nil)

func NewSonar(d *newfmt.SysinfoAttributes) *Sonar {
	s := &Sonar{
		Node:           string(d.Node),
		Architecture:   string(d.Architecture),
		CpuModel:       d.CpuModel,
		Sockets:        uint64(d.Sockets),
		CoresPerSocket: uint64(d.CoresPerSocket),
		ThreadsPerCore: uint64(d.ThreadsPerCore),
		MemoryKiB:      uint64(d.Memory),
		Gpus:           make([]string, 0, len(d.Cards)),
	}
	for i := range d.Cards {
		c := &d.Cards[i]
		model := c.Model
		if c.Manufacturer != "" && !strings.HasPrefix(model, c.Manufacturer) {
			model = c.Manufacturer + " " + model
		}
		s.Gpus = append(s.Gpus, strings.TrimSpace(model))
	}
	return s
}

// ReadSonar returns one inventory per sysinfo record in the input.  Records that carry errors
// rather than data are counted and skipped.
func ReadSonar(input io.Reader) (inventories []*Sonar, softErrors int, err error) {
	inventories = make([]*Sonar, 0)
	err = newfmt.ConsumeJSONSysinfo(input, false, func(r *newfmt.SysinfoEnvelope) {
		if r.Data == nil {
			softErrors++
			return
		}
		inventories = append(inventories, NewSonar(&r.Data.Attributes))
	})
	if err != nil {
		err = fmt.Errorf("Reading Sonar sysinfo: %w", err)
	}
	return
}

func (s *Sonar) Motherboard() string {
	return ""
}

func (s *Sonar) ProcessorName() string {
	return s.CpuModel
}

func (s *Sonar) ProcessorDesc() string {
	p, c, t := s.ProcessorTopology()
	if t == 0 {
		return ""
	}
	return fmt.Sprintf("%s; %s; %s",
		plural(p, "physical processor", "physical processors"),
		plural(c, "core", "cores"),
		plural(t, "thread", "threads"))
}

func (s *Sonar) ProcessorFrequencyDesc() string {
	return ""
}

// GPUList groups identical cards: "4x NVIDIA A100-SXM4-40GB".
func (s *Sonar) GPUList() string {
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, g := range s.Gpus {
		if counts[g] == 0 {
			order = append(order, g)
		}
		counts[g]++
	}
	groups := make([]string, 0, len(order))
	for _, g := range order {
		if counts[g] > 1 {
			groups = append(groups, fmt.Sprintf("%dx %s", counts[g], g))
		} else {
			groups = append(groups, g)
		}
	}
	return strings.Join(groups, " + ")
}

func (s *Sonar) OGLRenderer() string {
	return ""
}

func (s *Sonar) MemoryTotalKiB() string {
	if s.MemoryKiB == 0 {
		return ""
	}
	return strconv.FormatUint(s.MemoryKiB, 10)
}

func (s *Sonar) SystemMemoryMiB() uint64 {
	return s.MemoryKiB / 1024
}

func (s *Sonar) SystemMemoryTypes() string {
	return ""
}

func (s *Sonar) ProcessorTopology() (processors, cores, threads int) {
	processors = int(s.Sockets)
	cores = int(s.Sockets * s.CoresPerSocket)
	threads = int(s.Sockets * s.CoresPerSocket * s.ThreadsPerCore)
	return
}

// PointerBits guesses the pointer width from the architecture name.
func (s *Sonar) PointerBits() int {
	switch s.Architecture {
	case "x86_64", "aarch64", "ppc64le", "riscv64", "s390x":
		return 64
	case "i386", "i686", "armv7l", "arm":
		return 32
	}
	return 0
}
