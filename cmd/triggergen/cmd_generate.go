package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"triggergen/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the trigger dataset and write it to disk",
	Long: `Builds every trigger record, checks the dataset, and writes it to the
output path, replacing any existing file. The output directory must exist.

With --sqlite the same dataset is also mirrored into a SQLite database.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output JSON path (default from config: data/triggers_v3.json)")
	cmd.Flags().IntP("count", "n", 0, "Number of triggers to generate (default from config: 2000)")
	cmd.Flags().String("sqlite", "", "Also export the dataset to this SQLite file")
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		v, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output.Path = v
	}
	if flags.Changed("count") {
		v, err := flags.GetInt("count")
		if err != nil {
			return err
		}
		cfg.Generation.Count = v
	}
	if flags.Changed("sqlite") {
		v, err := flags.GetString("sqlite")
		if err != nil {
			return err
		}
		cfg.Export.SQLitePath = v
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := applyFlags(cmd); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := generator.Run(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("generation complete",
		zap.String("run_id", res.RunID),
		zap.Any("categories", res.Categories))
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
