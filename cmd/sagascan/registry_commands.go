package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sagascan/internal/registry"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	registryCmd := &cobra.Command{
		Use:         "registry",
		Short:       "Inspect the series registry",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	registryCmd.AddCommand(newRegistryListCommand(ctx))
	registryCmd.AddCommand(newRegistryShowCommand(ctx))

	return registryCmd
}

func newRegistryListCommand(ctx *commandContext) *cobra.Command {
	var category string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered series",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.ensureRegistry()
			if err != nil {
				return err
			}
			series := reg.ByCategory(registry.Category(strings.ToLower(strings.TrimSpace(category))))

			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), series)
			}
			fmt.Fprintln(cmd.OutOrStdout(), registryTable(series))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Restrict to one category (novel, comic, manga)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the series list as JSON")
	return cmd
}

func newRegistryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one series definition in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.ensureRegistry()
			if err != nil {
				return err
			}
			series, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("series %q is not in the registry", args[0])
			}

			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), series)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", series.Name)
			fmt.Fprintf(out, "Authors:    %s\n", strings.Join(series.Authors, ", "))
			fmt.Fprintf(out, "Category:   %s\n", series.Category)
			fmt.Fprintf(out, "Volumes:    %d\n", series.VolumeCount)
			fmt.Fprintf(out, "Status:     %s\n", series.Status)
			printList(out, "Keywords", series.Keywords)
			printList(out, "Variations", series.Variations)
			printList(out, "Exclusions", series.Exclusions)
			printList(out, "Canonical", series.CanonicalVolumes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the series as JSON")
	return cmd
}

func printList(out io.Writer, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, value := range values {
		fmt.Fprintf(out, "  - %s\n", value)
	}
}
