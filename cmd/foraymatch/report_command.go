package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"foraymatch/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the stored results of the last matching run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				summary, err := st.Summarize(cmd.Context())
				if err != nil {
					return fmt.Errorf("summarize results: %w", err)
				}

				out := cmd.OutOrStdout()

				if summary.LastRun != nil {
					run := summary.LastRun
					fmt.Fprintf(out, "Last run %s finished %s (%d workers, %s elapsed)\n",
						run.RunID,
						run.FinishedAt.Local().Format(time.RFC822),
						run.Workers,
						run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
					)
				} else {
					fmt.Fprintln(out, "No matching run recorded yet")
				}

				fmt.Fprintln(out, renderTable(
					[]string{"Totals", "Count"},
					[][]string{
						{"Foray specimens", strconv.Itoa(summary.SpecimenCount)},
						{"MycoBank references", strconv.Itoa(summary.ReferenceCount)},
						{"Perfect matches", strconv.Itoa(summary.PerfectMatches)},
						{"Exact MycoBank hits", strconv.Itoa(summary.PerfectMycoMatches)},
						{"Mismatches", strconv.Itoa(summary.Mismatches)},
					},
					[]columnAlignment{alignLeft, alignRight},
				))

				if summary.Mismatches == 0 {
					return nil
				}

				categoryRows := make([][]string, 0, len(summary.Categories))
				for _, cc := range summary.Categories {
					categoryRows = append(categoryRows, []string{string(cc.Category), strconv.Itoa(cc.Count)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Mismatch category", "Count"},
					categoryRows,
					[]columnAlignment{alignLeft, alignRight},
				))

				bandRows := make([][]string, 0, len(summary.SimilarityBands))
				for _, band := range summary.SimilarityBands {
					bandRows = append(bandRows, []string{band.Label, strconv.Itoa(band.Count)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Best similarity", "Count"},
					bandRows,
					[]columnAlignment{alignLeft, alignRight},
				))

				return nil
			})
		},
	}
}
