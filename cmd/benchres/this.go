package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"benchres/benchvalue"
	"benchres/common"
	"benchres/keyfile"
	"benchres/machine"
	"benchres/result"
	"benchres/sysinfo"
)

type thisOptions struct {
	Bench    string
	Result   float64
	Elapsed  float64
	Threads  int
	Revision int
	Extra    string
	Note     string
	Sonar    string
}

func newThisCommand(opts *globalOptions) *cobra.Command {
	to := &thisOptions{}
	cmd := &cobra.Command{
		Use:   "this",
		Short: "Print a benchmark.conf line for a result measured on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inventories, err := to.inventories()
			if err != nil {
				return err
			}
			results := make([]*result.Result, 0, len(inventories))
			for _, inv := range inventories {
				results = append(results, result.ThisMachine(to.Bench, to.value(), inv))
			}
			return keyfile.WriteBenchmarkConf(cmd.OutOrStdout(), confSections(results))
		},
	}
	cmd.Flags().StringVar(&to.Bench, "bench", "", "Benchmark `name` (required)")
	cmd.Flags().Float64Var(&to.Result, "result", -1, "Benchmark `score`")
	cmd.Flags().Float64Var(&to.Elapsed, "elapsed", 0, "Elapsed `seconds`")
	cmd.Flags().IntVar(&to.Threads, "threads", 1, "Threads used")
	cmd.Flags().IntVar(&to.Revision, "revision", -1, "Benchmark revision")
	cmd.Flags().StringVar(&to.Extra, "extra", "", "Extra information")
	cmd.Flags().StringVar(&to.Note, "note", "", "User note")
	cmd.Flags().StringVar(&to.Sonar, "sonar", "",
		"Describe the machines in Sonar sysinfo `file` rather than this one")
	cmd.MarkFlagRequired("bench")
	cmd.MarkFlagRequired("result")
	return cmd
}

func (to *thisOptions) value() benchvalue.Value {
	return benchvalue.Value{
		Result:      to.Result,
		ElapsedTime: to.Elapsed,
		ThreadsUsed: to.Threads,
		Revision:    to.Revision,
		Extra:       benchvalue.Sanitize(benchvalue.Truncate(to.Extra, benchvalue.MaxTextLen)),
		UserNote:    benchvalue.Sanitize(benchvalue.Truncate(to.Note, benchvalue.MaxTextLen)),
	}
}

func (to *thisOptions) inventories() ([]machine.Inventory, error) {
	if to.Sonar == "" {
		return []machine.Inventory{sysinfo.NewLocal()}, nil
	}
	f, err := os.Open(to.Sonar)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, softErrors, err := sysinfo.ReadSonar(f)
	if err != nil {
		return nil, err
	}
	if softErrors > 0 {
		common.Log.Warningf("%s: %d sysinfo records without data", to.Sonar, softErrors)
	}
	if len(records) == 0 {
		return nil, errors.New("No sysinfo records in " + to.Sonar)
	}
	inventories := make([]machine.Inventory, 0, len(records))
	for _, r := range records {
		inventories = append(inventories, r)
	}
	return inventories, nil
}
