package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sagascan/internal/catalog"
	"sagascan/internal/catalog/catalogdb"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local book catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var unassignedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cancel := signalContext(cmd)
			defer cancel()
			return ctx.withStore(func(store catalog.Store) error {
				books, err := store.FetchAllBooks(runCtx)
				if err != nil {
					return err
				}
				if unassignedOnly {
					filtered := books[:0]
					for _, book := range books {
						if book.Saga == "" {
							filtered = append(filtered, book)
						}
					}
					books = filtered
				}

				if jsonOutput {
					return emitJSON(cmd.OutOrStdout(), books)
				}
				fmt.Fprintln(cmd.OutOrStdout(), bookTable(books))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the book list as JSON")
	cmd.Flags().BoolVar(&unassignedOnly, "unassigned", false, "Show only books without a saga")
	return cmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var author string
	var category string
	var status string
	var saga string
	var volume int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add one book to the local catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("title must not be empty")
			}
			runCtx, cancel := signalContext(cmd)
			defer cancel()
			return ctx.withLocalStore(func(store *catalogdb.Store) error {
				book, err := store.AddBook(runCtx, catalog.Book{
					Title:        title,
					Author:       strings.TrimSpace(author),
					Category:     strings.ToLower(strings.TrimSpace(category)),
					Status:       strings.ToLower(strings.TrimSpace(status)),
					Saga:         strings.TrimSpace(saga),
					VolumeNumber: volume,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", book.Title, book.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Book author")
	cmd.Flags().StringVar(&category, "category", "", "Book category (novel, comic, manga)")
	cmd.Flags().StringVar(&status, "status", "", "Reading status (to_read, reading, completed)")
	cmd.Flags().StringVar(&saga, "saga", "", "Assigned series name, if already known")
	cmd.Flags().IntVar(&volume, "volume", 0, "Volume number within the series")
	return cmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import books from a CSV file into the local catalog",
		Long: `Import books from a CSV file with a header row. Recognized columns:
title, author, category, status, saga, volume_number. Only title is
required; unrecognized columns are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			runCtx, cancel := signalContext(cmd)
			defer cancel()
			return ctx.withLocalStore(func(store *catalogdb.Store) error {
				imported, err := store.ImportCSV(runCtx, file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d book(s)\n", imported)
				return nil
			})
		},
	}
	return cmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate catalog counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cancel := signalContext(cmd)
			defer cancel()
			return ctx.withStore(func(store catalog.Store) error {
				stats, err := store.FetchStats(runCtx)
				if err != nil {
					return err
				}
				if jsonOutput {
					return emitJSON(cmd.OutOrStdout(), stats)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total books: %d\n", stats.TotalBooks)
				fmt.Fprintf(out, "Sagas:       %d\n", stats.SagaCount)
				names := make([]string, 0, len(stats.Categories))
				for name := range stats.Categories {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "  %-10s %d\n", name+":", stats.Categories[name])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the stats as JSON")
	return cmd
}
