// Normalization of x86 CPUID model-name strings.
//
// The brand strings reported by x86 processors are noisy and inconsistent across generations:
//
//   "Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz"
//   "Genuine Intel(R) CPU           T2400  @ 1.83GHz"
//   "AMD Ryzen 7 PRO 4750U with Radeon Graphics"
//   "AMD Athlon(tm) 64 X2 Dual Core Processor 4200+"
//
// NiceName reduces them to a vendor-first short form that compares well across sources, eg
// "Intel Core i7-8550U", "Intel T2400", "AMD Ryzen 7 PRO 4750U", "AMD Athlon 64 X2 4200+".

package x86

import (
	"regexp"
	"strings"
)

var vendors = []string{"Intel", "AMD", "VIA", "Cyrix"}

// NeedsCleanup is true for names that look like they came from an x86 CPUID brand string.
func NeedsCleanup(name string) bool {
	for _, v := range vendors {
		if strings.Contains(name, v) {
			return true
		}
	}
	return false
}

type rewrite struct {
	re   *regexp.Regexp
	with string
}

// MT: Constant after initialization; immutable
var rewrites = []rewrite{
	{regexp.MustCompile(`\((R|r|TM|tm)\)|®|™`), ""},
	{regexp.MustCompile(`Genuine Intel`), "Intel"},
	{regexp.MustCompile(`AuthenticAMD`), "AMD"},
	{regexp.MustCompile(`CentaurHauls`), "VIA"},
	{regexp.MustCompile(`CyrixInstead`), "Cyrix"},
	{regexp.MustCompile(`\s*@\s*[0-9.]+\s*[GM]Hz`), ""},
	{regexp.MustCompile(`\s+with\s+Radeon.*$`), ""},
	{regexp.MustCompile(`\b(Dual|Triple|Quad|Six|Eight|Twelve|Sixteen|[0-9]+)[- ]Core\b`), ""},
	{regexp.MustCompile(`\b[0-9]+ Compute Cores [0-9]+C\+[0-9]+G\b`), ""},
	{regexp.MustCompile(`\b(CPU|Processor|APU)\b`), ""},
}

var spaces = regexp.MustCompile(`\s+`)

// NiceName returns the normalized form of a CPU model name.  Names that contain no x86 vendor
// are returned with white space cleaned up but otherwise unchanged.
func NiceName(name string) string {
	if NeedsCleanup(name) {
		for _, r := range rewrites {
			name = r.re.ReplaceAllString(name, r.with)
		}
	}
	name = strings.TrimSpace(spaces.ReplaceAllString(name, " "))
	return vendorFirst(name)
}

func vendorFirst(name string) string {
	for _, v := range vendors {
		if strings.HasPrefix(name, v) {
			return name
		}
	}
	for _, v := range vendors {
		if ix := strings.Index(name, " "+v); ix != -1 {
			rest := strings.TrimSpace(name[:ix] + name[ix+len(v)+1:])
			return v + " " + rest
		}
	}
	return name
}
