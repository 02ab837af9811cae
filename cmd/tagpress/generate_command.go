package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tagpress/internal/logging"
	"tagpress/internal/pipeline"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		count       int
		area        int
		producer    string
		year        int
		model       string
		serialWidth int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate identifiers and write QR label pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Flag overrides replace config values for this run only.
			if cmd.Flags().Changed("area") {
				cfg.Code.Area = area
			}
			if cmd.Flags().Changed("producer") {
				cfg.Code.ProducerCode = producer
			}
			if cmd.Flags().Changed("year") {
				cfg.Code.Year = year
			}
			if cmd.Flags().Changed("model") {
				cfg.Code.ModelCode = model
			}
			if cmd.Flags().Changed("serial-width") {
				cfg.Code.SerialWidth = serialWidth
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			runner, err := pipeline.NewRunner(cfg, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := runner.Run(runCtx, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Issued %d identifier(s) across %d page(s)\n", result.Issued, result.Pages)
			if result.Issued > 0 {
				fmt.Fprintf(out, "Token range: %s .. %s\n", result.FirstToken, result.LastToken)
			}
			fmt.Fprintf(out, "Output: %s\n", result.OutputDir)
			if result.SkippedLedgerRows > 0 {
				fmt.Fprintf(out, "Warning: %d malformed ledger row(s) were skipped\n", result.SkippedLedgerRows)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of identifiers to generate")
	cmd.Flags().IntVar(&area, "area", 0, "Override the configured area code")
	cmd.Flags().StringVar(&producer, "producer", "", "Override the configured producer code")
	cmd.Flags().IntVar(&year, "year", 0, "Override the configured production year")
	cmd.Flags().StringVar(&model, "model", "", "Override the configured model code")
	cmd.Flags().IntVar(&serialWidth, "serial-width", 0, "Override the configured serial digit width")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}
