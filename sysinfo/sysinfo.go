// Live machine facts for benchmark results, read from /proc and /sys with cpuid as the fallback.
//
// All paths are resolved below Local.Root so that tests can run against a fixture tree.  Facts that
// cannot be found come back as "" or 0, matching the machine.Inventory contract; the Probe*
// functions that return errors are there for callers that care why.

package sysinfo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"benchres/freq"
	"benchres/machine"
)

// MT: Constant after initialization; immutable
var ErrIncomplete = errors.New("Incomplete information")

// CpuidFacts is what we use from the CPUID instruction.
type CpuidFacts struct {
	BrandName     string
	PhysicalCores int
	LogicalCores  int
	Hz            int64
}

func hostCpuid() CpuidFacts {
	return CpuidFacts{
		BrandName:     cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		Hz:            cpuid.CPU.Hz,
	}
}

type Local struct {
	Root  string
	Cpuid func() CpuidFacts
}

var _ machine.Inventory = (*Local)(nil)

func NewLocal() *Local {
	return &Local{Root: "/", Cpuid: hostCpuid}
}

func (l *Local) path(p string) string {
	return filepath.Join(l.Root, p)
}

func (l *Local) cpuidFacts() CpuidFacts {
	if l.Cpuid == nil {
		return CpuidFacts{}
	}
	return l.Cpuid()
}

func (l *Local) Motherboard() string {
	vendor := l.readTrimmed("sys/devices/virtual/dmi/id/board_vendor")
	name := l.readTrimmed("sys/devices/virtual/dmi/id/board_name")
	switch {
	case vendor != "" && name != "":
		return vendor + " " + name
	case name != "":
		return name
	}
	// Device-tree systems
	return strings.TrimRight(l.readTrimmed("proc/device-tree/model"), "\x00")
}

func (l *Local) ProcessorName() string {
	if info, err := l.ProbeCpuInfo(); err == nil && info.ModelName != "" {
		return info.ModelName
	}
	return strings.TrimSpace(l.cpuidFacts().BrandName)
}

func (l *Local) ProcessorDesc() string {
	p, c, t := l.ProcessorTopology()
	if t == 0 {
		return ""
	}
	return fmt.Sprintf("%s; %s; %s",
		plural(p, "physical processor", "physical processors"),
		plural(c, "core", "cores"),
		plural(t, "thread", "threads"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// ProcessorFrequencyDesc groups logical CPUs by maximum clock, fastest first, as in
// "4x 3400.00 MHz + 4x 2200.00 MHz".
func (l *Local) ProcessorFrequencyDesc() string {
	counts := make(map[int64]int)
	for _, kHz := range l.ProbeMaxFrequencies() {
		counts[kHz]++
	}
	if len(counts) == 0 {
		info, err := l.ProbeCpuInfo()
		if err == nil && info.MHz > 0 && info.Threads > 0 {
			return freq.Format(info.Threads, info.MHz, freq.EnglishUnit)
		}
		facts := l.cpuidFacts()
		if facts.Hz > 0 && facts.LogicalCores > 0 {
			return freq.Format(facts.LogicalCores, float64(facts.Hz)/1e6, freq.EnglishUnit)
		}
		return ""
	}
	speeds := make([]int64, 0, len(counts))
	for kHz := range counts {
		speeds = append(speeds, kHz)
	}
	sort.Slice(speeds, func(i, j int) bool { return speeds[i] > speeds[j] })
	groups := make([]string, 0, len(speeds))
	for _, kHz := range speeds {
		groups = append(groups, freq.Format(counts[kHz], float64(kHz)/1000, freq.EnglishUnit))
	}
	return strings.Join(groups, " + ")
}

// ProbeMaxFrequencies returns cpuinfo_max_freq in kHz for every CPU that has cpufreq.
func (l *Local) ProbeMaxFrequencies() []int64 {
	matches, _ := filepath.Glob(l.path("sys/devices/system/cpu/cpu[0-9]*/cpufreq/cpuinfo_max_freq"))
	sort.Strings(matches)
	result := make([]int64, 0, len(matches))
	for _, fn := range matches {
		n, err := strconv.ParseInt(readTrimmedFile(fn), 10, 64)
		if err == nil && n > 0 {
			result = append(result, n)
		}
	}
	return result
}

var pciVendors = map[string]string{
	"0x10de": "NVIDIA",
	"0x1002": "AMD",
	"0x1022": "AMD",
	"0x8086": "Intel",
	"0x1a03": "ASPEED",
	"0x15ad": "VMware",
	"0x1af4": "Virtio",
	"0x1234": "QEMU",
}

// GPUList names the DRM display devices, eg "Intel 0x5917 + NVIDIA 0x1c8d".
func (l *Local) GPUList() string {
	matches, _ := filepath.Glob(l.path("sys/class/drm/card[0-9]*/device/vendor"))
	sort.Strings(matches)
	gpus := make([]string, 0, len(matches))
	for _, fn := range matches {
		// Connector entries like card0-HDMI-A-1 do not match the pattern.
		vendor := readTrimmedFile(fn)
		device := readTrimmedFile(filepath.Join(filepath.Dir(fn), "device"))
		name, found := pciVendors[vendor]
		if !found {
			name = vendor
		}
		if device != "" {
			name += " " + device
		}
		if name != "" {
			gpus = append(gpus, name)
		}
	}
	return strings.Join(gpus, " + ")
}

// There is no OpenGL context in this program.
func (l *Local) OGLRenderer() string {
	return ""
}

func (l *Local) MemoryTotalKiB() string {
	kib, err := l.ProbeMemTotalKiB()
	if err != nil {
		return ""
	}
	return strconv.FormatUint(kib, 10)
}

// SystemMemoryMiB counts online memory blocks, which unlike MemTotal includes memory reserved by
// the kernel and firmware.
func (l *Local) SystemMemoryMiB() uint64 {
	bs := l.readTrimmed("sys/devices/system/memory/block_size_bytes")
	if bs == "" {
		return 0
	}
	blockSize, err := strconv.ParseUint(bs, 16, 64)
	if err != nil {
		return 0
	}
	matches, _ := filepath.Glob(l.path("sys/devices/system/memory/memory[0-9]*/online"))
	var online uint64
	for _, fn := range matches {
		if readTrimmedFile(fn) == "1" {
			online++
		}
	}
	return online * blockSize / (1024 * 1024)
}

// Memory types require DMI tables, which are only readable by root; not implemented here.
func (l *Local) SystemMemoryTypes() string {
	return ""
}

func (l *Local) ProcessorTopology() (processors, cores, threads int) {
	if info, err := l.ProbeCpuInfo(); err == nil {
		return info.Sockets, info.Cores, info.Threads
	}
	facts := l.cpuidFacts()
	if facts.LogicalCores > 0 {
		return 1, facts.PhysicalCores, facts.LogicalCores
	}
	return 0, 0, 0
}

// CpuInfo: what we get from /proc/cpuinfo

type CpuInfo struct {
	ModelName string
	Sockets   int
	Cores     int
	Threads   int
	MHz       float64 // current clock of the first CPU
}

func (l *Local) ProbeCpuInfo() (*CpuInfo, error) {
	lines, err := fileLines(l.path("proc/cpuinfo"))
	if err != nil {
		return nil, err
	}
	return ParseCpuInfo(lines)
}

// ParseCpuInfo reads the text of /proc/cpuinfo.  Processors without "physical id" (most ARM
// systems, many VMs) count as one socket, and cores then fall back to the thread count.
func ParseCpuInfo(lines []string) (*CpuInfo, error) {
	info := new(CpuInfo)
	physids := make(map[int64]bool)
	coreids := make(map[[2]int64]bool)
	physid := int64(-1)
	var n int64
	var err error
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "processor"):
			info.Threads++
			physid = -1
		case strings.HasPrefix(l, "model name"), strings.HasPrefix(l, "Processor"):
			if info.ModelName == "" {
				info.ModelName, err = textField(l)
			}
		case strings.HasPrefix(l, "physical id"):
			n, err = numField(l)
			physid = n
			physids[n] = true
		case strings.HasPrefix(l, "core id"):
			n, err = numField(l)
			coreids[[2]int64{physid, n}] = true
		case strings.HasPrefix(l, "cpu MHz"):
			if info.MHz == 0 {
				var s string
				s, err = textField(l)
				if err == nil {
					info.MHz, err = strconv.ParseFloat(s, 64)
				}
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if info.Threads == 0 {
		return nil, fmt.Errorf("%w in /proc/cpuinfo", ErrIncomplete)
	}
	info.Sockets = len(physids)
	if info.Sockets == 0 {
		info.Sockets = 1
	}
	info.Cores = len(coreids)
	if info.Cores == 0 {
		info.Cores = info.Threads
	}
	return info, nil
}

// ProbeMemTotalKiB: MemTotal from /proc/meminfo

func (l *Local) ProbeMemTotalKiB() (uint64, error) {
	lines, err := fileLines(l.path("proc/meminfo"))
	if err != nil {
		return 0, err
	}
	for _, s := range lines {
		if strings.HasPrefix(s, "MemTotal:") {
			n, err := numField(strings.TrimSuffix(strings.TrimSpace(s), "kB"))
			if err != nil {
				return 0, err
			}
			return uint64(n), nil
		}
	}
	return 0, fmt.Errorf("%w: No MemTotal field in /proc/meminfo", ErrIncomplete)
}

func (l *Local) readTrimmed(p string) string {
	return readTrimmedFile(l.path(p))
}

func readTrimmedFile(fn string) string {
	bytes, err := os.ReadFile(fn)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}

func fileLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("Could not open %s: %w", filename, err)
	}
	defer f.Close()

	bytes, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("Could not read %s: %w", filename, err)
	}
	return strings.Split(string(bytes), "\n"), nil
}

// Line must be <whatever>: <text>, return <text> with spaces trimmed

func textField(s string) (string, error) {
	if _, after, found := strings.Cut(s, ":"); found {
		return strings.TrimSpace(after), nil
	}
	return "", fmt.Errorf("Bad line: %s", s)
}

// Line must be <whatever>: <text>, return <text> converted to int64

func numField(s string) (int64, error) {
	if _, after, found := strings.Cut(s, ":"); found {
		return strconv.ParseInt(strings.TrimSpace(after), 10, 64)
	}
	return 0, fmt.Errorf("Bad line: %s", s)
}
