package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sagascan/internal/analyzer"
	"sagascan/internal/catalog"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var minConfidence float64
	var delayMs int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Resolve every unassigned book against the series registry",
		Long: `Fetch the full collection from the configured catalog, run series
resolution over every book that has no saga yet, and print the resulting
detection report. Nothing is written back; use "sagascan commit" for that.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runAnalysis(cmd, ctx, minConfidence, delayMs, !jsonOutput)
			if err != nil {
				return err
			}
			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), report)
			}
			printAnalysisReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Accept threshold on the 0-100 score scale (default from config)")
	cmd.Flags().IntVar(&delayMs, "delay", -1, "Milliseconds to pause between items (default from config)")
	return cmd
}

func runAnalysis(cmd *cobra.Command, ctx *commandContext, minConfidence float64, delayMs int, showProgress bool) (*analyzer.Report, error) {
	resolver, err := ctx.newResolver()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.newLogger()
	if err != nil {
		return nil, err
	}

	opts := analyzer.Options{
		MinConfidence: ctx.analyzerMinConfidence(minConfidence),
		Delay:         ctx.analyzerDelay(delayMs),
	}
	if showProgress && shouldColorize(cmd.OutOrStdout()) {
		out := cmd.OutOrStdout()
		opts.OnProgress = func(done, total int, percent float64) {
			fmt.Fprintf(out, "\rAnalyzing %d/%d (%.0f%%)", done, total, percent)
			if done == total {
				fmt.Fprintln(out)
			}
		}
	}

	var report *analyzer.Report
	runCtx, cancel := signalContext(cmd)
	defer cancel()
	err = ctx.withStore(func(store catalog.Store) error {
		a := analyzer.New(store, analyzer.NewLocalResolver(resolver), logger)
		report, err = a.Analyze(runCtx, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func printAnalysisReport(cmd *cobra.Command, report *analyzer.Report) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Books in catalog:  %d\n", report.TotalBooks)
	fmt.Fprintf(out, "Books analyzed:    %d\n", report.BooksAnalyzed)
	fmt.Fprintf(out, "Series detected:   %s\n", renderStatus(statusOK, fmt.Sprintf("%d", report.SeriesDetected), colorize))
	fmt.Fprintf(out, "Standalone books:  %d\n", report.StandaloneBooks)
	if report.Errors > 0 {
		fmt.Fprintf(out, "Errors:            %s\n", renderStatus(statusError, fmt.Sprintf("%d", report.Errors), colorize))
	}

	if len(report.Detected) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, detectionTable(report.Detected))
	}
	for _, det := range report.Detected {
		if det.RunnerUp != nil {
			fmt.Fprintf(out, "%s\n", renderStatus(statusWarn,
				fmt.Sprintf("ambiguous: %q also matched %q (%s vs %s)",
					det.Book.Title, det.RunnerUp.SeriesName,
					formatConfidence(det.Confidence), formatConfidence(det.RunnerUp.Confidence)),
				colorize))
		}
	}
	for _, errBook := range report.ErrorBooks {
		fmt.Fprintf(out, "%s\n", renderStatus(statusError,
			fmt.Sprintf("failed: %q: %s", errBook.Book.Title, errBook.Err), colorize))
	}
}
