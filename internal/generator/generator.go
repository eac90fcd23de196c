// Package generator runs one complete dataset generation pass: build the
// envelope, check it, write the JSON file and optionally mirror it to SQLite.
package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"triggergen/internal/config"
	"triggergen/internal/logging"
	"triggergen/internal/output"
	"triggergen/internal/store"
	"triggergen/internal/trigger"
)

// Result summarizes a finished run.
type Result struct {
	RunID      string
	Path       string
	Bytes      int
	Triggers   int
	Categories map[string]int
	SQLitePath string
}

// Run generates the dataset described by cfg. The JSON file is written before the
// SQLite export starts; an export failure does not remove it.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	runID := uuid.NewString()
	log := logging.For(logger, logging.CategoryGenerate).With(zap.String("run_id", runID))

	categories := trigger.DefaultCategories()
	env, err := trigger.Generate(categories, cfg.Generation.Count)
	if err != nil {
		return nil, err
	}
	if err := trigger.Check(env, categories); err != nil {
		return nil, fmt.Errorf("generated dataset is inconsistent: %w", err)
	}
	log.Debug("envelope built",
		zap.Int("triggers", len(env.Triggers)),
		zap.String("version", env.Version))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := output.WriteEnvelope(cfg.Output.Path, env)
	if err != nil {
		return nil, err
	}
	logging.For(logger, logging.CategoryOutput).Info("dataset written",
		zap.String("run_id", runID),
		zap.String("path", cfg.Output.Path),
		zap.Int("bytes", n),
		zap.Int("triggers", env.Meta.TotalTriggers))

	res := &Result{
		RunID:      runID,
		Path:       cfg.Output.Path,
		Bytes:      n,
		Triggers:   env.Meta.TotalTriggers,
		Categories: trigger.CategoryCounts(env),
	}

	if cfg.Export.SQLitePath == "" {
		return res, nil
	}
	if err := exportSQLite(ctx, cfg.Export.SQLitePath, env, logging.For(logger, logging.CategoryStore)); err != nil {
		return res, err
	}
	res.SQLitePath = cfg.Export.SQLitePath
	return res, nil
}

func exportSQLite(ctx context.Context, path string, env *trigger.Envelope, log *zap.Logger) error {
	s, err := store.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("sqlite export: %w", err)
	}
	defer s.Close()

	if err := s.SaveEnvelope(ctx, env); err != nil {
		return fmt.Errorf("sqlite export: %w", err)
	}

	n, err := s.CountTriggers(ctx)
	if err != nil {
		return fmt.Errorf("sqlite export: %w", err)
	}
	if n != env.Meta.TotalTriggers {
		return fmt.Errorf("sqlite export: stored %d triggers, expected %d", n, env.Meta.TotalTriggers)
	}
	log.Info("dataset exported", zap.String("path", path), zap.Int("triggers", n))
	return nil
}
