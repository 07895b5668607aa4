package main

import (
	"os"

	"github.com/spf13/cobra"

	"benchres/common"
	"benchres/keyfile"
)

func newConvertCommand(opts *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite the results in FILE as a current benchmark.conf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := readResults(args[0], opts.tr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			common.Log.Infof("Converting %d results", len(results))
			return keyfile.WriteBenchmarkConf(out, confSections(results))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to `file` instead of stdout")
	return cmd
}
