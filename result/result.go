// Benchmark results: a measured value paired with a snapshot of the machine that produced it.
//
// Results come from three places: the running machine (ThisMachine), the JSON result documents
// (DecodeJSON), and lines of benchmark.conf in any of its generations (DecodeConfigLine).  They
// go out as current-generation benchmark.conf lines (EncodeConfigLine) and as human-readable
// reports (Summary, Complete).

package result

import (
	"benchres/benchvalue"
	"benchres/machine"
)

type Result struct {
	Name    string
	Value   benchvalue.Value
	Machine *machine.Snapshot

	// Legacy results were read from the oldest benchmark.conf lines, which lack most of the
	// machine description.  Processors and cores are -1 and the thread counts are guesses.
	Legacy bool
}

// ThisMachine wraps a value measured on the machine described by inv.
func ThisMachine(name string, value benchvalue.Value, inv machine.Inventory) *Result {
	return &Result{
		Name:    name,
		Value:   value,
		Machine: machine.This(inv),
	}
}
