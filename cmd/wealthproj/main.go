package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsim/wealth-projector/pkg/logging"
)

var (
	flagLogLevel    string
	flagLogFormat   string
	flagAssumptions string
	flagTaxTable    string
	flagSeed        int64
	flagPaths       int
	flagWorkers     int
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wealthproj",
		Short:         "Stochastic household wealth projection",
		Long:          "wealthproj projects a household's future net worth under uncertainty and reports ruin probability and estate-tax exposure.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "log format (console or json)")
	root.PersistentFlags().StringVar(&flagAssumptions, "assumptions", "", "market assumptions YAML (defaults used when omitted)")
	root.PersistentFlags().StringVar(&flagTaxTable, "jurisdictions", "", "jurisdiction tax table YAML (statutory defaults when omitted)")
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed (0 = time-based)")
	root.PersistentFlags().IntVar(&flagPaths, "paths", 0, "ensemble size override (0 = per-user setting)")
	root.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "worker goroutines (0 = NumCPU)")

	root.AddCommand(newProjectCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newExampleConfigCmd())
	return root
}

func newLogger() (*logging.Logger, error) {
	return logging.New(logging.Config{Level: flagLogLevel, Format: flagLogFormat}, os.Stderr)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
