package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sagascan/internal/analyzer"
	"sagascan/internal/catalog"
	"sagascan/internal/resolve"
)

func newCommitCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var minConfidence float64
	var delayMs int
	var dryRun bool
	var confirmEach bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Analyze the catalog and write accepted detections back",
		Long: `Run the same analysis as "sagascan analyze", then write the saga name
and inferred volume number of every detection at or above the confidence
threshold back to the catalog. With --dry-run the planned updates are
printed without writing anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runAnalysis(cmd, ctx, minConfidence, delayMs, !jsonOutput)
			if err != nil {
				return err
			}

			commitOpts := analyzer.CommitOptions{
				MinConfidence: ctx.analyzerMinConfidence(minConfidence),
				Delay:         ctx.analyzerDelay(delayMs),
				DryRun:        dryRun,
			}
			if confirmEach {
				commitOpts.Confirm = confirmPrompt(cmd)
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			var result *analyzer.CommitResult
			runCtx, cancel := signalContext(cmd)
			defer cancel()
			err = ctx.withStore(func(store catalog.Store) error {
				a := analyzer.New(store, nil, logger)
				result, err = a.Commit(runCtx, report.Detected, commitOpts)
				return err
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), result)
			}
			printCommitResult(cmd, result, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Accept threshold on the 0-100 score scale (default from config)")
	cmd.Flags().IntVar(&delayMs, "delay", -1, "Milliseconds to pause between items (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan updates without writing anything")
	cmd.Flags().BoolVar(&confirmEach, "confirm", false, "Ask before each individual update")
	return cmd
}

func confirmPrompt(cmd *cobra.Command) func(resolve.Detection) bool {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	return func(det resolve.Detection) bool {
		fmt.Fprintf(out, "Assign %q to series %q (confidence %s)? [y/N] ",
			det.Book.Title, det.SeriesName, formatConfidence(det.Confidence))
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func printCommitResult(cmd *cobra.Command, result *analyzer.CommitResult, dryRun bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	if dryRun {
		fmt.Fprintf(out, "Dry run: %d update(s) planned, %d skipped\n", len(result.Planned), result.Skipped)
		if len(result.Planned) > 0 {
			fmt.Fprintln(out, detectionTable(result.Planned))
		}
		return
	}

	fmt.Fprintf(out, "Updated: %s\n", renderStatus(statusOK, fmt.Sprintf("%d", result.Updated), colorize))
	fmt.Fprintf(out, "Skipped: %d\n", result.Skipped)
	if result.Failed > 0 {
		fmt.Fprintf(out, "Failed:  %s\n", renderStatus(statusError, fmt.Sprintf("%d", result.Failed), colorize))
		for _, failed := range result.FailedBooks {
			fmt.Fprintf(out, "  %q: %s\n", failed.Book.Title, failed.Err)
		}
	}
}
