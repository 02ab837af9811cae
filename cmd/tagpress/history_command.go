package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tagpress/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg.Paths.JournalPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				tokenRange := "-"
				if run.FirstToken != "" {
					tokenRange = run.FirstToken + " .. " + run.LastToken
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					strconv.Itoa(run.Issued),
					strconv.Itoa(run.Pages),
					tokenRange,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Issued", "Pages", "Tokens"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}
