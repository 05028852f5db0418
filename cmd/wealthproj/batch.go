package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/finsim/wealth-projector/internal/batch"
	"github.com/finsim/wealth-projector/internal/config"
)

func newBatchCmd() *cobra.Command {
	var (
		resultsDir  string
		userTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "batch <users.yaml>",
		Short: "Re-evaluate every user in a batch file and persist summaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}

			parser := config.NewInputParser()
			batchInput, err := parser.LoadBatch(args[0])
			if err != nil {
				return err
			}

			assumptions, err := config.LoadAssumptions(flagAssumptions)
			if err != nil {
				logger.Warnf("falling back to default assumptions: %v", err)
			}
			taxes, err := config.LoadJurisdictions(flagTaxTable)
			if err != nil {
				logger.Warnf("falling back to default jurisdiction table: %v", err)
			}

			runner := batch.NewRunner(assumptions, taxes, batch.NewFileStore(resultsDir), logger)
			runner.UserTimeout = userTimeout
			runner.Workers = flagWorkers
			runner.Seed = flagSeed

			report, err := runner.Run(cmd.Context(), batchInput.Users)
			if err != nil {
				return err
			}
			logger.Infof("batch finished: processed=%d failed=%d elapsed=%s", report.Processed, report.Failed, report.Elapsed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resultsDir, "results", "r", "results", "directory for per-user result JSON")
	cmd.Flags().DurationVar(&userTimeout, "user-timeout", batch.DefaultUserTimeout, "per-user projection deadline")
	return cmd
}
