// Command triggergen writes the auto-generated trigger dataset.
//
// Usage:
//
//	triggergen                      # writes data/triggers_v3.json
//	triggergen generate --sqlite data/triggers_v3.db
//	triggergen categories
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"triggergen/internal/config"
	"triggergen/internal/logging"
)

// toolVersion is overridden at build time with -ldflags "-X main.toolVersion=...".
var toolVersion = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "triggergen",
	Short: "Generate the static trigger dataset",
	Long: `triggergen builds the auto-generated trigger dataset (version 3.0) and
writes it as indented JSON.

Run without arguments to write data/triggers_v3.json with the default settings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to YAML config file")

	addGenerateFlags(rootCmd)
	addGenerateFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
