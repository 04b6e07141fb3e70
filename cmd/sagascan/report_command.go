package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sagascan/internal/catalog"
	"sagascan/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var crossCheck bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the collection by series, author, and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.ensureRegistry()
			if err != nil {
				return err
			}

			var summary *report.Summary
			var stats *catalog.Stats
			runCtx, cancel := signalContext(cmd)
			defer cancel()
			err = ctx.withStore(func(store catalog.Store) error {
				books, err := store.FetchAllBooks(runCtx)
				if err != nil {
					return err
				}
				summary = report.BuildSummary(books, reg.All())
				if crossCheck {
					stats, err = store.FetchStats(runCtx)
					if err != nil {
						return fmt.Errorf("fetch stats for cross-check: %w", err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), summary)
			}
			printSummary(cmd, summary)
			if crossCheck {
				printCrossCheck(cmd, summary, stats)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON")
	cmd.Flags().BoolVar(&crossCheck, "cross-check", false, "Compare the summary against the store's own counts")
	return cmd
}

func printSummary(cmd *cobra.Command, summary *report.Summary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Total books: %d\n", summary.TotalBooks)

	if len(summary.Series) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, seriesProgressTable(summary.Series))
	}

	if len(summary.Categories) > 0 {
		fmt.Fprintln(out)
		for _, c := range summary.Categories {
			fmt.Fprintf(out, "  %-10s %3d (%.0f%% of collection, %.0f%% in a series)\n",
				c.Name+":", c.Books, c.Share, c.SeriesParticipation)
		}
	}

	if len(summary.AddedByMonth) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Added by month:")
		for _, bucket := range summary.AddedByMonth {
			fmt.Fprintf(out, "  %s  %d\n", bucket.Month, bucket.Count)
		}
	}

	rec := summary.Recommendations
	if len(rec.SuggestedAcquisitions) > 0 || len(rec.MultiSeriesAuthors) > 0 || len(rec.UnderRepresented) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recommendations:")
		for _, s := range rec.SuggestedAcquisitions {
			fmt.Fprintf(out, "  %s\n", renderStatus(statusInfo, s, colorize))
		}
		for _, a := range rec.MultiSeriesAuthors {
			fmt.Fprintf(out, "  %s\n", renderStatus(statusInfo,
				fmt.Sprintf("%s spans multiple series in your collection", a), colorize))
		}
		for _, c := range rec.UnderRepresented {
			fmt.Fprintf(out, "  %s\n", renderStatus(statusInfo,
				fmt.Sprintf("category %q is under-represented", c), colorize))
		}
	}
}

func printCrossCheck(cmd *cobra.Command, summary *report.Summary, stats *catalog.Stats) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	diffs := report.CrossCheck(summary, stats)
	fmt.Fprintln(out)
	if len(diffs) == 0 {
		fmt.Fprintln(out, renderStatus(statusOK, "store counts match the summary", colorize))
		return
	}
	for _, diff := range diffs {
		fmt.Fprintln(out, renderStatus(statusWarn, diff, colorize))
	}
}
