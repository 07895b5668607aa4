package result

import (
	"encoding/json"
	"strings"
	"testing"
)

const jsonResult = `{
  "Legacy": false,
  "BenchmarkResult": 4321.5,
  "ElapsedTime": 5.125,
  "UsedThreads": 16,
  "BenchmarkRevision": 2,
  "ExtraInfo": "zlib 1.2.13",
  "UserNote": "line1\nline2;x|y",
  "Board": "Gigabyte X570 AORUS ELITE",
  "MemoryInKiB": 32802356,
  "CpuName": "AMD Ryzen 9 3950X",
  "CpuDesc": "1 physical processor; 16 cores; 32 threads",
  "CpuConfig": "32x 3500.00 MHz",
  "OpenGlRenderer": "AMD Radeon RX 6600",
  "GpuDesc": "AMD Navi 23",
  "NumCpus": 1,
  "NumCores": 16,
  "NumThreads": 32,
  "MachineId": "server_provided_id",
  "PointerBits": 64,
  "DataFromSuperUser": true,
  "PhysicalMemoryInMiB": 32768,
  "MemoryTypes": "DDR4",
  "MachineDataVersion": 2
}`

func TestDecodeJSON(t *testing.T) {
	r, ok := DecodeJSON("CPU Zlib", json.RawMessage(jsonResult))
	if !ok {
		t.Fatalf("Not decoded")
	}
	v := r.Value
	m := r.Machine
	if r.Name != "CPU Zlib" || r.Legacy {
		t.Fatalf("Result: %+v", r)
	}
	if v.Result != 4321.5 || v.ElapsedTime != 5.125 || v.ThreadsUsed != 16 || v.Revision != 2 ||
		v.Extra != "zlib 1.2.13" {
		t.Fatalf("Value: %+v", v)
	}
	if v.UserNote != "line1_line2_x_y" {
		t.Fatalf("User note: %q", v.UserNote)
	}
	if m.Board != "Gigabyte X570 AORUS ELITE" || m.MemoryKiB != 32802356 || m.CpuName != "AMD Ryzen 9 3950X" ||
		m.CpuConfig != "32x 3500.00 MHz" || m.OglRenderer != "AMD Radeon RX 6600" || m.GpuDesc != "AMD Navi 23" ||
		m.Processors != 1 || m.Cores != 16 || m.Threads != 32 || m.PointerBits != 64 || !m.IsSuData ||
		m.PhysMemoryMiB != 32768 || m.RamTypes != "DDR4" || m.DataVersion != 2 {
		t.Fatalf("Machine: %+v", m)
	}
	// Taken as given, not regenerated
	if m.MachineId != "server_provided_id" {
		t.Fatalf("Machine id: %q", m.MachineId)
	}
}

func TestDecodeJSONDefaults(t *testing.T) {
	r, ok := DecodeJSON("B", json.RawMessage(`{"NumCpus": "four", "Legacy": 1, "CpuName": 7, "UsedThreads": 3.9, "boardname": "x"}`))
	if !ok {
		t.Fatalf("Not decoded")
	}
	if r.Machine.Processors != 0 || r.Legacy || r.Machine.CpuName != "" || r.Machine.Board != "" {
		t.Fatalf("Defaults: %+v %+v", r, r.Machine)
	}
	if r.Value.ThreadsUsed != 3 {
		t.Fatalf("Threads: %d", r.Value.ThreadsUsed)
	}
	if r.Value.Revision != 0 || r.Value.Result != 0 {
		t.Fatalf("Value: %+v", r.Value)
	}
}

func TestDecodeJSONNotObject(t *testing.T) {
	for _, s := range []string{`[1, 2]`, `3`, `"x"`, `null`, ``, `{ broken`} {
		if r, ok := DecodeJSON("B", json.RawMessage(s)); ok || r != nil {
			t.Fatalf("Decoded %q", s)
		}
	}
}

func TestDecodeJSONTruncation(t *testing.T) {
	long := strings.Repeat("é", 200)
	r, ok := DecodeJSON("B", json.RawMessage(`{"ExtraInfo": "`+long+`", "UserNote": "`+strings.Repeat("a", 300)+`"}`))
	if !ok {
		t.Fatalf("Not decoded")
	}
	if len(r.Value.Extra) != 254 || r.Value.Extra != strings.Repeat("é", 127) {
		t.Fatalf("Extra: %d bytes", len(r.Value.Extra))
	}
	if len(r.Value.UserNote) != 255 {
		t.Fatalf("User note: %d bytes", len(r.Value.UserNote))
	}
}

func TestDecodeJSONDocument(t *testing.T) {
	doc := `{
  "FPU FFT": [ { "BenchmarkResult": 2 }, 3, { "BenchmarkResult": 4 } ],
  "CPU Blowfish": [ { "BenchmarkResult": 1 } ],
  "GPU Drawing": 5
}`
	results, soft, err := DecodeJSONDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if soft != 2 {
		t.Fatalf("Soft errors: %d", soft)
	}
	if len(results) != 3 {
		t.Fatalf("Results: %d", len(results))
	}
	if results[0].Name != "CPU Blowfish" || results[1].Name != "FPU FFT" || results[1].Value.Result != 2 ||
		results[2].Value.Result != 4 {
		t.Fatalf("Order: %s %s %v", results[0].Name, results[1].Name, results[2].Value)
	}

	_, _, err = DecodeJSONDocument(strings.NewReader("[]"))
	if err == nil {
		t.Fatalf("Expected error for non-object document")
	}
}
