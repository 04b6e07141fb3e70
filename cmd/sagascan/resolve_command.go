package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sagascan/internal/catalog"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var author string
	var category string
	var subjects []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Resolve a single title against the series registry",
		Long: `Run series resolution for one book without touching the catalog.
Useful for probing why a title does or does not match a series.

Examples:
  sagascan resolve "Harry Poter et la Chambre des Secrets" --author "J.K. Rowling"
  sagascan resolve "One Piece Tome 42" --category manga --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}

			book := catalog.Book{
				Title:    strings.TrimSpace(args[0]),
				Author:   strings.TrimSpace(author),
				Category: strings.TrimSpace(category),
				Subjects: subjects,
			}
			detection := resolver.Resolve(book)

			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), detection)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if !detection.Found {
				fmt.Fprintln(out, renderStatus(statusWarn, "no series matched", colorize))
				return nil
			}
			fmt.Fprintf(out, "Series:     %s\n", renderStatus(statusOK, detection.SeriesName, colorize))
			fmt.Fprintf(out, "Confidence: %s\n", formatConfidence(detection.Confidence))
			if detection.VolumeNumber > 0 {
				fmt.Fprintf(out, "Volume:     %d\n", detection.VolumeNumber)
			}
			for _, reason := range detection.Reasons {
				fmt.Fprintf(out, "  - %s\n", reason)
			}
			if detection.RunnerUp != nil {
				fmt.Fprintf(out, "%s\n", renderStatus(statusWarn,
					fmt.Sprintf("runner-up: %s (%s)", detection.RunnerUp.SeriesName,
						formatConfidence(detection.RunnerUp.Confidence)), colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Book author")
	cmd.Flags().StringVar(&category, "category", "", "Book category (novel, comic, manga)")
	cmd.Flags().StringSliceVar(&subjects, "subject", nil, "Topical tag (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the detection as JSON")
	return cmd
}
