package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceWinnerFillsNextSlot(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)
	clone := b.Clone()

	require.NoError(t, clone.AdvanceWinner("east-r64-g1", "east-1"))

	r32, _ := clone.Slot("east-r32-g1")
	assert.Equal(t, "east-1", r32.Team1ID)

	decided, _ := clone.Slot("east-r64-g1")
	assert.Equal(t, "east-1", decided.WinnerID)
}

func TestAdvanceWinnerRejectsNonParticipant(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)
	clone := b.Clone()

	err = clone.AdvanceWinner("east-r64-g1", "west-1")
	require.Error(t, err)
	var invalid *InvalidAdvancementError
	assert.ErrorAs(t, err, &invalid)
}

func TestAdvanceWinnerRejectsConflictingReDecision(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)
	clone := b.Clone()

	require.NoError(t, clone.AdvanceWinner("east-r64-g1", "east-1"))
	err = clone.AdvanceWinner("east-r64-g1", "east-16")
	assert.Error(t, err)
}

func TestAdvanceWinnerIsIdempotentForSameWinner(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)
	clone := b.Clone()

	require.NoError(t, clone.AdvanceWinner("east-r64-g1", "east-1"))
	assert.NoError(t, clone.AdvanceWinner("east-r64-g1", "east-1"))
}

func TestAdvanceWinnerUnknownSlotErrors(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)
	clone := b.Clone()

	err = clone.AdvanceWinner("does-not-exist", "east-1")
	require.Error(t, err)
	var unknown *UnknownSlotError
	assert.ErrorAs(t, err, &unknown)
}
