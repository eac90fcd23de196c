package trigger

import (
	"errors"
	"fmt"
)

var (
	ErrCountMismatch   = errors.New("meta.total_triggers does not match trigger count")
	ErrDuplicateID     = errors.New("duplicate trigger id")
	ErrUnknownCategory = errors.New("category not in label set")
)

// Check verifies the invariants of a freshly generated envelope and returns the
// first violation found.
func Check(env *Envelope, categories []string) error {
	if env == nil {
		return errors.New("nil envelope")
	}
	if env.Meta.TotalTriggers != len(env.Triggers) {
		return fmt.Errorf("%w: meta=%d triggers=%d", ErrCountMismatch, env.Meta.TotalTriggers, len(env.Triggers))
	}

	allowed := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}

	seen := make(map[string]int, len(env.Triggers))
	for pos, t := range env.Triggers {
		if prev, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, t.ID, prev, pos)
		}
		seen[t.ID] = pos

		if _, ok := allowed[t.Category]; !ok {
			return fmt.Errorf("%w: %q on %s", ErrUnknownCategory, t.Category, t.ID)
		}
	}
	return nil
}

// CategoryCounts tallies triggers per category label.
func CategoryCounts(env *Envelope) map[string]int {
	counts := make(map[string]int)
	for _, t := range env.Triggers {
		counts[t.Category]++
	}
	return counts
}
