package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"benchres/result"
)

func newDescribeCommand(opts *globalOptions) *cobra.Command {
	var complete bool
	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Print a report for each result in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if complete {
				opts.variant = result.CompleteVariant
			}
			results, err := readResults(args[0], opts.tr)
			if err != nil {
				return err
			}
			return describe(cmd.OutOrStdout(), results, opts)
		},
	}
	cmd.Flags().BoolVar(&complete, "complete", false, "Print the complete report rather than the summary")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Report `variant`, summary or complete")
	return cmd
}

func describe(out io.Writer, results []*result.Result, opts *globalOptions) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, result.DescribeAs(r, opts.tr, opts.variant)); err != nil {
			return err
		}
	}
	return nil
}
