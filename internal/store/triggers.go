// Package store mirrors a generated trigger dataset into SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"triggergen/internal/trigger"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS triggers (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	text TEXT NOT NULL,
	category TEXT NOT NULL,
	base_conversion_rate INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_triggers_category ON triggers(category);

CREATE TABLE IF NOT EXISTS trigger_resonance (
	trigger_id TEXT NOT NULL,
	dimension TEXT NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY (trigger_id, dimension)
);

CREATE TABLE IF NOT EXISTS dataset_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is a SQLite copy of one trigger envelope.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates (or reuses) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEnvelope replaces the stored dataset with env in a single transaction.
func (s *Store) SaveEnvelope(ctx context.Context, env *trigger.Envelope) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"trigger_resonance", "triggers", "dataset_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insTrigger, err := tx.PrepareContext(ctx,
		`INSERT INTO triggers (position, id, text, category, base_conversion_rate) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare trigger insert: %w", err)
	}
	defer insTrigger.Close()

	insResonance, err := tx.PrepareContext(ctx,
		`INSERT INTO trigger_resonance (trigger_id, dimension, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare resonance insert: %w", err)
	}
	defer insResonance.Close()

	for i, t := range env.Triggers {
		if _, err = insTrigger.ExecContext(ctx, i+1, t.ID, t.Text, t.Category, t.BaseConversionRate); err != nil {
			return fmt.Errorf("failed to insert %s: %w", t.ID, err)
		}
		r := t.PersonalityResonance
		for _, dim := range []struct {
			name   string
			weight float64
		}{{"D", r.D}, {"I", r.I}, {"S", r.S}, {"C", r.C}} {
			if _, err = insResonance.ExecContext(ctx, t.ID, dim.name, dim.weight); err != nil {
				return fmt.Errorf("failed to insert resonance for %s: %w", t.ID, err)
			}
		}
	}

	meta := map[string]string{
		"version":        env.Version,
		"total_triggers": fmt.Sprint(env.Meta.TotalTriggers),
	}
	for k, v := range meta {
		if _, err = tx.ExecContext(ctx, `INSERT INTO dataset_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write meta %s: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// CountTriggers returns the number of stored trigger rows.
func (s *Store) CountTriggers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triggers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count triggers: %w", err)
	}
	return n, nil
}

// Meta returns a stored dataset_meta value.
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM dataset_meta WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return "", fmt.Errorf("failed to read meta %s: %w", key, err)
	}
	return v, nil
}

// CategoryCounts returns stored trigger counts grouped by category.
func (s *Store) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM triggers GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}
