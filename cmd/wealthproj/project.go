package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsim/wealth-projector/internal/config"
	"github.com/finsim/wealth-projector/internal/output"
	"github.com/finsim/wealth-projector/internal/simulation"
)

func newProjectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "project <input.yaml>",
		Short: "Project a single household and print the summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}

			parser := config.NewInputParser()
			user, err := parser.LoadUser(args[0])
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

			ensembleSize := user.EnsembleSize
			if flagPaths > 0 {
				ensembleSize = flagPaths
			}

			engine := simulation.NewEngine(simulation.EngineConfig{
				EnsembleSize: ensembleSize,
				Workers:      flagWorkers,
				Seed:         flagSeed,
				Logger:       logger,
			})

			summary, err := engine.Project(cmd.Context(), user.ToProjectionInput(assumptions, taxes))
			if err != nil {
				return err
			}
			summary.UserID = user.UserID

			formatter, err := output.ByName(format)
			if err != nil {
				return err
			}
			data, err := formatter.Format(summary)
			if err != nil {
				return fmt.Errorf("format output: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, csv)")
	return cmd
}
