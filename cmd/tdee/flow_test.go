package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/wizard"
)

var today = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// answers in step order, matching the 2594.3125 kcal/day example.
var answers = []string{"2026-01-05", "70", "65", "-0.5", "175", "25", "Male", "moderate"}

func TestFlow_CommitWalksToResult(t *testing.T) {
	f, err := newFlow().start()
	require.NoError(t, err)

	for i, a := range answers {
		require.Nil(t, f.result, "step %d", i)
		f, err = f.commit(a)
		require.NoError(t, err, "answer %q", a)
	}
	require.NotNil(t, f.result)
	assert.InDelta(t, 2594.3125, f.result.TDEE, 1e-9)
	assert.True(t, f.state.Done())

	_, ok := f.prompt()
	assert.False(t, ok)
}

func TestFlow_EmptyAnswerKeepsStep(t *testing.T) {
	f, _ := newFlow().start()
	f, _ = f.commit("2026-01-05")

	next, err := f.commit("  ")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.MissingField))
	assert.Equal(t, wizard.StepWeight, next.state.Step)
	assert.Equal(t, "Starting Weight: please fill in the field", errorText(err))
}

// TestFlow_RejectedFieldIsReprompted verifies a non-numeric weight surfaces
// at submit time and the weight prompt comes back until it is fixed.
func TestFlow_RejectedFieldIsReprompted(t *testing.T) {
	f, _ := newFlow().start()
	var err error
	for _, a := range append([]string{answers[0], "abc"}, answers[2:]...) {
		f, err = f.commit(a)
	}
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
	assert.Nil(t, f.result)
	assert.Equal(t, wizard.StepActivityLevel, f.state.Step)

	p, ok := f.prompt()
	require.True(t, ok)
	assert.Equal(t, wizard.FieldWeight, p.Field)
	assert.Equal(t, "abc", f.defaultValue(p, today))

	f, err = f.commit("70")
	require.NoError(t, err)
	require.NotNil(t, f.result)
	assert.Equal(t, wizard.Field(""), f.editing)
}

func TestFlow_DefaultValue(t *testing.T) {
	f, _ := newFlow().start()
	p, _ := f.prompt()
	assert.Equal(t, "2026-01-05", f.defaultValue(p, today))

	activity, _ := wizard.PromptForField(wizard.FieldActivityLevel)
	assert.Equal(t, "moderate", f.defaultValue(activity, today))

	weight, _ := wizard.PromptForField(wizard.FieldWeight)
	assert.Empty(t, f.defaultValue(weight, today))
}

func TestFlow_CommitOnWelcome(t *testing.T) {
	_, err := newFlow().commit("70")
	assert.True(t, apperr.Is(err, apperr.InvalidAction))
}
