package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	cases := map[string]Outcome{
		"Reachable":      OutcomeReachable,
		"unreachable":    OutcomeUnreachable,
		"Not Interested": OutcomeNotInterested,
		"not_interested": OutcomeNotInterested,
		" reachable ":    OutcomeReachable,
	}
	for in, want := range cases {
		got, err := ParseOutcome(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseOutcome("Maybe later")
	assert.ErrorIs(t, err, ErrInvalidOutcome)
	_, err = ParseOutcome("")
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	s, err = ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.False(t, TaskPriority("urgent").Valid())
}
