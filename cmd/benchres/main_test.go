package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"benchres/common"
	"benchres/status"
)

const benchmarkConf = `[CPU Blowfish]
4x Pentium III @ 1.00GHz=123.4|1x 800.00 MHz
broken line

[CPU Zlib]
stale=1500|2||Some CPU||2x 1000 MHz|1024|1|2|2
`

func writeFile(t *testing.T, name, content string) string {
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--defaults", filepath.Join(t.TempDir(), "none"), "--language", "en"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	fn := writeFile(t, "benchmark.conf", benchmarkConf)
	out, err := run(t, "describe", fn)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "[Benchmark Result]\n") != 2 {
		t.Fatalf("Output:\n%s", out)
	}
	if !strings.Contains(out, "CPU Config=1x 1000.00 MHz\n") || !strings.Contains(out, "(!)Note=") {
		t.Fatalf("Output:\n%s", out)
	}

	out, err = run(t, "describe", "--complete", fn)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Benchmark=CPU Zlib\n") || !strings.Contains(out, "[Handles]\n") {
		t.Fatalf("Output:\n%s", out)
	}

	if _, err = run(t, "describe", "--report", "full", fn); err == nil {
		t.Fatalf("Expected error for bad report variant")
	}
	if _, err = run(t, "describe", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("Expected error for missing file")
	}
}

func TestConvert(t *testing.T) {
	fn := writeFile(t, "results.json", `{"CPU Zlib": [{"BenchmarkResult": 2.5, "UsedThreads": 4,
"BenchmarkRevision": 1, "CpuName": "X", "CpuConfig": "4x 1000.00 MHz", "NumThreads": 4, "MachineId": "m1"}]}`)
	out, err := run(t, "convert", fn)
	if err != nil {
		t.Fatal(err)
	}
	expected := "[CPU Zlib]\nm1=2.500000; 0.000000; 4; 1|4||X||4x 1000.00 MHz|0|0|0|4|||0|0|0|0|\n"
	if out != expected {
		t.Fatalf("Output:\n%q\n%q", out, expected)
	}

	conf := writeFile(t, "benchmark.conf", benchmarkConf)
	output := filepath.Join(t.TempDir(), "out.conf")
	if _, err = run(t, "convert", "-o", output, conf); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	expected = "[CPU Blowfish]\n" +
		"(Unknown);Pentium_III___1_00GHz;1000_00=123.400000; 0.000000; 1|1||Pentium III @ 1.00GHz||" +
		"1x 1000.00 MHz|0|-1|-1|1|||0|0|0|0|\n" +
		"\n" +
		"[CPU Zlib]\n" +
		"(Unknown);Some_CPU;2000_00=1500.000000; 0.000000; 2|2||Some CPU||2x 1000.00 MHz|1024|1|2|2|||0|0|0|0|\n"
	if string(data) != expected {
		t.Fatalf("Output:\n%q\n%q", string(data), expected)
	}
}

func TestDefaultsFile(t *testing.T) {
	defaults := writeFile(t, "benchres", "[display]\nlanguage=de\nreport=complete\n")
	fn := writeFile(t, "benchmark.conf", benchmarkConf)
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--defaults", defaults, "describe", fn})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[Benchmark-Ergebnis]\n") || !strings.Contains(out.String(), "[Kennungen]\n") {
		t.Fatalf("Output:\n%s", out.String())
	}
}

func TestVerboseLogsLineNumbers(t *testing.T) {
	var logged strings.Builder
	saved := common.Log
	defer func() { common.Log = saved }()
	common.Log = status.NewLogger("benchres", &logged)

	fn := writeFile(t, "benchmark.conf", benchmarkConf)
	if _, err := run(t, "--verbose", "describe", fn); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		fn + ":2: [CPU Blowfish] 4x Pentium III @ 1.00GHz: 2 values",
		fn + ":6: [CPU Zlib] stale: 10 values",
	} {
		if !strings.Contains(logged.String(), s) {
			t.Fatalf("Missing %q in log:\n%s", s, logged.String())
		}
	}
}

// The test binary reruns itself as the command when BENCHRES_RUN_MAIN is set.
func TestMainExitStatus(t *testing.T) {
	if os.Getenv("BENCHRES_RUN_MAIN") != "" {
		os.Args = []string{"benchres", "--defaults", "", "describe", filepath.Join(t.TempDir(), "missing")}
		main()
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=^TestMainExitStatus$")
	cmd.Env = append(os.Environ(), "BENCHRES_RUN_MAIN=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit status 1, got %v", err)
	}
	if !strings.Contains(stderr.String(), "benchres: critical: ") {
		t.Fatalf("Stderr: %q", stderr.String())
	}
}
