// Decoding JSON results, as served by the result database:
//
//   { "CPU Blowfish (Single-thread)": [ { "BenchmarkResult": 1.23, "CpuName": "...", ... }, ... ],
//     ... }
//
// Field names are exact.  A missing field or one of the wrong type reads as false, 0 or "".

package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"

	"benchres/benchvalue"
	"benchres/common"
	"benchres/machine"
)

type jsonObject map[string]any

func (o jsonObject) boolean(key string) bool {
	b, _ := o[key].(bool)
	return b
}

func (o jsonObject) float(key string) float64 {
	if n, ok := o[key].(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return 0
}

func (o jsonObject) integer(key string) int64 {
	n, ok := o[key].(json.Number)
	if !ok {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return int64(f)
	}
	return 0
}

func (o jsonObject) unsigned(key string) uint64 {
	return uint64(max(o.integer(key), 0))
}

func (o jsonObject) str(key string) string {
	s, _ := o[key].(string)
	return s
}

// The note fields are limited in length and must not contain the config-line separators.
func (o jsonObject) note(key string) string {
	return benchvalue.Sanitize(benchvalue.Truncate(o.str(key), benchvalue.MaxTextLen))
}

// DecodeJSON decodes one result object.  It fails only if node is not a JSON object.
func DecodeJSON(benchName string, node json.RawMessage) (*Result, bool) {
	trimmed := bytes.TrimSpace(node)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var o jsonObject
	if err := dec.Decode(&o); err != nil {
		return nil, false
	}

	r := &Result{
		Name:   benchName,
		Legacy: o.boolean("Legacy"),
		Value: benchvalue.Value{
			Result:      o.float("BenchmarkResult"),
			ElapsedTime: o.float("ElapsedTime"),
			ThreadsUsed: int(o.integer("UsedThreads")),
			Revision:    int(o.integer("BenchmarkRevision")),
			Extra:       o.note("ExtraInfo"),
			UserNote:    o.note("UserNote"),
		},
		Machine: &machine.Snapshot{
			Board:         o.str("Board"),
			MemoryKiB:     o.unsigned("MemoryInKiB"),
			CpuName:       o.str("CpuName"),
			CpuDesc:       o.str("CpuDesc"),
			CpuConfig:     o.str("CpuConfig"),
			OglRenderer:   o.str("OpenGlRenderer"),
			GpuDesc:       o.str("GpuDesc"),
			Processors:    int(o.integer("NumCpus")),
			Cores:         int(o.integer("NumCores")),
			Threads:       int(o.integer("NumThreads")),
			MachineId:     o.str("MachineId"),
			PointerBits:   int(o.integer("PointerBits")),
			IsSuData:      o.boolean("DataFromSuperUser"),
			PhysMemoryMiB: o.unsigned("PhysicalMemoryInMiB"),
			RamTypes:      o.str("MemoryTypes"),
			DataVersion:   int(o.integer("MachineDataVersion")),
		},
	}
	return r, true
}

// DecodeJSONDocument reads a whole document of results keyed by benchmark name.  Results are
// returned in benchmark name order and in document order within a benchmark.  Entries that are
// not objects, and benchmarks whose value is not an array, are skipped and counted.
func DecodeJSONDocument(input io.Reader) (results []*Result, softErrors int, err error) {
	var doc map[string]json.RawMessage
	if err = json.NewDecoder(input).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("Reading result document: %w", err)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	slices.Sort(names)

	results = make([]*Result, 0)
	for _, name := range names {
		var nodes []json.RawMessage
		if json.Unmarshal(doc[name], &nodes) != nil {
			common.Log.Debugf("Benchmark %q: not an array of results", name)
			softErrors++
			continue
		}
		for _, node := range nodes {
			r, ok := DecodeJSON(name, node)
			if !ok {
				softErrors++
				continue
			}
			results = append(results, r)
		}
	}
	return results, softErrors, nil
}
