package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"triggergen/internal/trigger"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category labels in assignment order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, c := range trigger.DefaultCategories() {
			if _, err := fmt.Fprintf(out, "%d\t%s\n", i, c); err != nil {
				return err
			}
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tool and dataset versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "triggergen %s (dataset %s)\n", toolVersion, trigger.DatasetVersion)
		return err
	},
}
