package trigger

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DefaultRun(t *testing.T) {
	env, err := Generate(DefaultCategories(), DefaultCount)
	require.NoError(t, err)

	assert.Equal(t, DatasetVersion, env.Version)
	assert.Len(t, env.Triggers, 2000)
	assert.Equal(t, 2000, env.Meta.TotalTriggers)
	assert.Equal(t, "auto_trigger_1", env.Triggers[0].ID)
	assert.Equal(t, "auto_trigger_2000", env.Triggers[1999].ID)
}

func TestGenerate_FirstRecord(t *testing.T) {
	env, err := Generate(DefaultCategories(), 1)
	require.NoError(t, err)

	want := Trigger{
		ID:                   "auto_trigger_1",
		Text:                 "Auto generated trigger 1",
		Category:             "pv",
		BaseConversionRate:   50,
		PersonalityResonance: Resonance{D: 0.5, I: 0.5, S: 0.5, C: 0.5},
	}
	if diff := cmp.Diff(want, env.Triggers[0]); diff != "" {
		t.Fatalf("first trigger mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_CyclicCategories(t *testing.T) {
	cats := DefaultCategories()
	env, err := Generate(cats, 25)
	require.NoError(t, err)

	// Index 10 wraps back to the first label.
	assert.Equal(t, "company", env.Triggers[9].Category)
	assert.Equal(t, "other", env.Triggers[8].Category)
	assert.Equal(t, "pv", env.Triggers[10].Category)
	assert.Equal(t, "company", env.Triggers[19].Category)

	for i, tr := range env.Triggers {
		assert.Equal(t, cats[(i+1)%len(cats)], tr.Category, "index %d", i+1)
	}
}

func TestGenerate_UniqueIDs(t *testing.T) {
	for _, n := range []int{1, 2, 9, 10, 11, 137, DefaultCount} {
		env, err := Generate(DefaultCategories(), n)
		require.NoError(t, err)

		seen := make(map[string]bool, n)
		for _, tr := range env.Triggers {
			require.False(t, seen[tr.ID], "duplicate id %s for n=%d", tr.ID, n)
			seen[tr.ID] = true
		}
		assert.Equal(t, n, env.Meta.TotalTriggers)
		assert.Len(t, env.Triggers, env.Meta.TotalTriggers)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(DefaultCategories(), 300)
	require.NoError(t, err)
	b, err := Generate(DefaultCategories(), 300)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("generation is not deterministic:\n%s", diff)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	_, err := Generate(nil, 10)
	assert.ErrorIs(t, err, ErrNoCategories)

	_, err = Generate(DefaultCategories(), 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Generate(DefaultCategories(), -3)
	assert.True(t, errors.Is(err, ErrInvalidCount))
}

func TestGenerate_SingleCategory(t *testing.T) {
	env, err := Generate([]string{"only"}, 5)
	require.NoError(t, err)
	for _, tr := range env.Triggers {
		assert.Equal(t, "only", tr.Category)
	}
}

func TestDefaultCategories_ReturnsCopy(t *testing.T) {
	cats := DefaultCategories()
	require.Len(t, cats, 10)
	cats[0] = "mutated"
	assert.Equal(t, "company", DefaultCategories()[0])
}
