package sysinfo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NordicHPC/sonar/util/formats/newfmt"

	"benchres/machine"
)

const cpuinfo2x2 = `processor	: 0
model name	: Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz
cpu MHz		: 1200.000
physical id	: 0
core id		: 0

processor	: 1
model name	: Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz
cpu MHz		: 2600.000
physical id	: 0
core id		: 1

processor	: 2
model name	: Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz
physical id	: 1
core id		: 0

processor	: 3
model name	: Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz
physical id	: 1
core id		: 0
`

func writeTree(t *testing.T, files map[string]string) string {
	root := t.TempDir()
	for name, content := range files {
		fn := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestParseCpuInfo(t *testing.T) {
	info, err := ParseCpuInfo(strings.Split(cpuinfo2x2, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if info.ModelName != "Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz" {
		t.Fatalf("Model: %q", info.ModelName)
	}
	if info.Sockets != 2 || info.Cores != 3 || info.Threads != 4 {
		t.Fatalf("Topology: %+v", info)
	}
	if info.MHz != 1200 {
		t.Fatalf("MHz: %v", info.MHz)
	}

	// ARM style, no physical id, model under "Processor"
	info, err = ParseCpuInfo([]string{
		"Processor	: ARMv7 Processor rev 4 (v7l)",
		"processor	: 0",
		"processor	: 1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if info.ModelName != "ARMv7 Processor rev 4 (v7l)" || info.Sockets != 1 || info.Cores != 2 || info.Threads != 2 {
		t.Fatalf("ARM: %+v", info)
	}

	_, err = ParseCpuInfo([]string{"nothing here"})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Expected ErrIncomplete, got %v", err)
	}
	_, err = ParseCpuInfo([]string{"processor : 0", "physical id : zero"})
	if err == nil {
		t.Fatalf("Expected number syntax error")
	}
}

func TestLocal(t *testing.T) {
	root := writeTree(t, map[string]string{
		"proc/cpuinfo": cpuinfo2x2,
		"proc/meminfo": "MemTotal:       16308280 kB\nMemFree:  100 kB\n",
		"sys/devices/virtual/dmi/id/board_vendor":                 "ASUSTeK COMPUTER INC.\n",
		"sys/devices/virtual/dmi/id/board_name":                   "Z9PE-D8 WS\n",
		"sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq":    "3300000\n",
		"sys/devices/system/cpu/cpu1/cpufreq/cpuinfo_max_freq":    "3300000\n",
		"sys/devices/system/cpu/cpu2/cpufreq/cpuinfo_max_freq":    "2600000\n",
		"sys/devices/system/cpu/cpu3/cpufreq/cpuinfo_max_freq":    "3300000\n",
		"sys/devices/system/memory/block_size_bytes":              "8000000\n",
		"sys/devices/system/memory/memory0/online":                "1\n",
		"sys/devices/system/memory/memory1/online":                "1\n",
		"sys/devices/system/memory/memory2/online":                "0\n",
		"sys/class/drm/card0/device/vendor":                       "0x10de\n",
		"sys/class/drm/card0/device/device":                       "0x1c8d\n",
		"sys/class/drm/card1/device/vendor":                       "0xabcd\n",
	})
	l := &Local{Root: root}
	if s := l.Motherboard(); s != "ASUSTeK COMPUTER INC. Z9PE-D8 WS" {
		t.Fatalf("Motherboard: %q", s)
	}
	if s := l.ProcessorName(); s != "Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz" {
		t.Fatalf("ProcessorName: %q", s)
	}
	if s := l.ProcessorDesc(); s != "2 physical processors; 3 cores; 4 threads" {
		t.Fatalf("ProcessorDesc: %q", s)
	}
	if s := l.ProcessorFrequencyDesc(); s != "3x 3300.00 MHz + 1x 2600.00 MHz" {
		t.Fatalf("ProcessorFrequencyDesc: %q", s)
	}
	if s := l.GPUList(); s != "NVIDIA 0x1c8d + 0xabcd" {
		t.Fatalf("GPUList: %q", s)
	}
	if s := l.MemoryTotalKiB(); s != "16308280" {
		t.Fatalf("MemoryTotalKiB: %q", s)
	}
	if n := l.SystemMemoryMiB(); n != 256 {
		t.Fatalf("SystemMemoryMiB: %d", n)
	}

	m := machine.This(l)
	if m.Processors != 2 || m.Cores != 3 || m.Threads != 4 || m.MemoryKiB != 16308280 {
		t.Fatalf("Snapshot: %+v", m)
	}
	if m.MachineId != "ASUSTeK_COMPUTER_INC__Z9PE_D8_WS;Intel(R)_Xeon(R)_CPU_E5_2670_0___2_60GHz;12500_00" {
		t.Fatalf("Machine id: %q", m.MachineId)
	}
}

func TestLocalFallbacks(t *testing.T) {
	root := writeTree(t, map[string]string{
		"proc/device-tree/model": "Raspberry Pi 4 Model B Rev 1.4\x00",
	})
	l := &Local{
		Root: root,
		Cpuid: func() CpuidFacts {
			return CpuidFacts{BrandName: " Fake Brand ", PhysicalCores: 2, LogicalCores: 4, Hz: 1500000000}
		},
	}
	if s := l.Motherboard(); s != "Raspberry Pi 4 Model B Rev 1.4" {
		t.Fatalf("Device tree model: %q", s)
	}
	if s := l.ProcessorName(); s != "Fake Brand" {
		t.Fatalf("Cpuid name: %q", s)
	}
	if s := l.ProcessorFrequencyDesc(); s != "4x 1500.00 MHz" {
		t.Fatalf("Cpuid frequency: %q", s)
	}
	p, c, th := l.ProcessorTopology()
	if p != 1 || c != 2 || th != 4 {
		t.Fatalf("Cpuid topology: %d %d %d", p, c, th)
	}
	if s := l.MemoryTotalKiB(); s != "" {
		t.Fatalf("Missing meminfo: %q", s)
	}
	if n := l.SystemMemoryMiB(); n != 0 {
		t.Fatalf("Missing memory blocks: %d", n)
	}

	empty := &Local{Root: t.TempDir()}
	if s := empty.ProcessorDesc(); s != "" {
		t.Fatalf("Empty tree desc: %q", s)
	}
}

func TestProbeMemTotal(t *testing.T) {
	l := &Local{Root: writeTree(t, map[string]string{"proc/meminfo": "MemFree: 1 kB\n"})}
	_, err := l.ProbeMemTotalKiB()
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Expected ErrIncomplete, got %v", err)
	}
}

func TestSonar(t *testing.T) {
	s := NewSonar(&newfmt.SysinfoAttributes{
		Node:           "gpu-1.example.org",
		Architecture:   "x86_64",
		CpuModel:       "AMD EPYC 7642 48-Core Processor",
		Sockets:        2,
		CoresPerSocket: 48,
		ThreadsPerCore: 2,
		Memory:         1056000000,
		Cards: []newfmt.SysinfoGpuCard{
			{Model: "GeForce RTX 3090", Manufacturer: "NVIDIA"},
			{Model: "NVIDIA GeForce RTX 3090", Manufacturer: "NVIDIA"},
			{Model: "Instinct MI100", Manufacturer: "AMD"},
		},
	})
	if s := s.GPUList(); s != "2x NVIDIA GeForce RTX 3090 + AMD Instinct MI100" {
		t.Fatalf("GPUList: %q", s)
	}
	if s := s.ProcessorDesc(); s != "2 physical processors; 96 cores; 192 threads" {
		t.Fatalf("ProcessorDesc: %q", s)
	}
	if n := s.SystemMemoryMiB(); n != 1031250 {
		t.Fatalf("SystemMemoryMiB: %d", n)
	}
	m := machine.This(s)
	if m.PointerBits != 64 || m.CpuName != "AMD EPYC 7642 48-Core Processor" || m.Threads != 192 ||
		m.MemoryKiB != 1056000000 || m.Board != "" || m.CpuConfig != "" {
		t.Fatalf("Snapshot: %+v", m)
	}
	if m.MachineId != "(Unknown);AMD_EPYC_7642_48_Core_Processor;0_00" {
		t.Fatalf("Machine id: %q", m.MachineId)
	}
}

func TestReadSonarError(t *testing.T) {
	_, _, err := ReadSonar(strings.NewReader("{ this is not json"))
	if err == nil {
		t.Fatalf("Expected an error")
	}
}
