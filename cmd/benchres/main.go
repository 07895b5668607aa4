// benchres reads, converts and describes benchmark results.
//
//   benchres describe [--complete] FILE
//   benchres convert [-o OUTPUT] FILE
//   benchres this --bench NAME --result N [--elapsed SECS] [--threads N] [--sonar SYSINFO.json]
//
// FILE is either a benchmark.conf or a JSON result document.  Defaults for the display language,
// the report variant, the message catalog directory and the log level are read from ~/.benchres.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"benchres/common"
	"benchres/i18n"
	"benchres/result"
	"benchres/status"
)

type globalOptions struct {
	DefaultsFile string
	Verbose      bool
	Language     string
	CatalogDir   string
	Report       string

	tr      i18n.Translator
	variant result.Variant
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		status.Fatalf("%v", err)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "benchres",
		Short:         "Read, convert and describe benchmark results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
	}
	root.PersistentFlags().StringVar(&opts.DefaultsFile, "defaults", common.DefaultsFile(),
		"Read user defaults from `file`")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug information")
	root.PersistentFlags().StringVar(&opts.Language, "language", "",
		"Translate reports to `lang` (default from defaults file, then $LANG)")
	root.PersistentFlags().StringVar(&opts.CatalogDir, "catalog-dir", "",
		"Load additional message catalogs from `dir`")
	root.AddCommand(newDescribeCommand(opts), newConvertCommand(opts), newThisCommand(opts))
	return root
}

// resolve applies the user defaults to options not given on the command line, then sets up logging
// and translation.
func (opts *globalOptions) resolve() error {
	defaults, err := common.LoadDefaults(opts.DefaultsFile)
	if err != nil {
		return err
	}
	if err := defaults.ApplyLogging(); err != nil {
		return err
	}
	if opts.Verbose {
		common.Log.LowerLevelTo(status.LogLevelDebug)
	}
	defaults.Apply(&opts.Language, common.DisplayLanguage)
	defaults.Apply(&opts.CatalogDir, common.DisplayCatalogDir)
	defaults.Apply(&opts.Report, common.DisplayReport)
	if opts.Language == "" {
		opts.Language = os.Getenv("LANG")
	}

	opts.variant, err = result.ParseVariant(opts.Report)
	if err != nil {
		return err
	}

	catalog, err := i18n.BuiltinCatalog()
	if err != nil {
		return err
	}
	if opts.CatalogDir != "" {
		if err := catalog.LoadDir(opts.CatalogDir); err != nil {
			return err
		}
	}
	opts.tr = catalog.Printer(opts.Language)
	common.Log.Debugf("Language %q, report %q, catalogs for %v", opts.Language, opts.variant, catalog.Languages())
	return nil
}
