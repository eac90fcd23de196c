// Package trigger builds the auto-generated trigger dataset.
//
// Generation is pure: Generate takes the category labels and a record count and
// returns a fully populated Envelope. Nothing in this package touches the disk.
package trigger

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DatasetVersion is the static version tag written at the top of the envelope.
	DatasetVersion = "3.0"

	// DefaultCount is the number of records produced by a default run.
	DefaultCount = 2000

	// BaseConversionRate is assigned to every generated trigger.
	BaseConversionRate = 50

	// ResonanceWeight is the uniform weight for every DISC dimension.
	ResonanceWeight = 0.5

	idPrefix   = "auto_trigger_"
	textPrefix = "Auto generated trigger "
)

var (
	// ErrNoCategories is returned when the category list is empty.
	ErrNoCategories = errors.New("category list is empty")
	// ErrInvalidCount is returned when the record count is not positive.
	ErrInvalidCount = errors.New("trigger count must be positive")
)

// Resonance is the per-dimension DISC weighting attached to a trigger.
// Field order fixes the serialized key order (D, I, S, C).
type Resonance struct {
	D float64 `json:"D"`
	I float64 `json:"I"`
	S float64 `json:"S"`
	C float64 `json:"C"`
}

// Trigger is a single generated record.
type Trigger struct {
	ID                   string    `json:"id"`
	Text                 string    `json:"text"`
	Category             string    `json:"category"`
	BaseConversionRate   int       `json:"base_conversion_rate"`
	PersonalityResonance Resonance `json:"personality_resonance"`
}

// Meta holds summary metadata for the dataset.
type Meta struct {
	TotalTriggers int `json:"total_triggers"`
}

// Envelope is the top-level document written to disk.
type Envelope struct {
	Version  string    `json:"version"`
	Triggers []Trigger `json:"triggers"`
	Meta     Meta      `json:"meta"`
}

// defaultCategories is the fixed label ordering. Index 0 ("company") is reached
// only by indices divisible by the list length.
var defaultCategories = []string{
	"company",
	"pv",
	"children",
	"eco",
	"performance",
	"tech",
	"status",
	"maintenance",
	"warranty",
	"other",
}

// DefaultCategories returns a copy of the fixed category labels in order.
func DefaultCategories() []string {
	out := make([]string, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// DefaultResonance returns the uniform resonance map.
func DefaultResonance() Resonance {
	return Resonance{D: ResonanceWeight, I: ResonanceWeight, S: ResonanceWeight, C: ResonanceWeight}
}

// ID returns the trigger id for a 1-based generation index.
func ID(index int) string {
	return idPrefix + strconv.Itoa(index)
}

// CategoryFor returns the label for a 1-based index. The first record maps to
// categories[1], not categories[0]; existing datasets depend on that ordering.
func CategoryFor(categories []string, index int) string {
	return categories[index%len(categories)]
}

// Generate builds an envelope with n triggers, numbered 1..n.
func Generate(categories []string, n int) (*Envelope, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	triggers := make([]Trigger, 0, n)
	for i := 1; i <= n; i++ {
		triggers = append(triggers, Trigger{
			ID:                   ID(i),
			Text:                 textPrefix + strconv.Itoa(i),
			Category:             CategoryFor(categories, i),
			BaseConversionRate:   BaseConversionRate,
			PersonalityResonance: DefaultResonance(),
		})
	}

	return &Envelope{
		Version:  DatasetVersion,
		Triggers: triggers,
		Meta:     Meta{TotalTriggers: len(triggers)},
	}, nil
}
