package bracket

import (
	"fmt"
	"testing"

	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticTeams() []Team {
	teams := make([]Team, 0, 64)
	for _, region := range Regions {
		for seed := 1; seed <= 16; seed++ {
			teams = append(teams, Team{
				ID:      fmt.Sprintf("%s-%d", region, seed),
				Name:    fmt.Sprintf("%s Team %d", region, seed),
				Seed:    seed,
				Region:  region,
				Metrics: metrics.DefaultMetrics(),
			})
		}
	}
	return teams
}

func TestBuildFromTeamsProducesExactly63Slots(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)
	assert.Len(t, b.Slots(), 63)
}

func TestBuildFromTeamsRoundOf64HasFixedMatchups(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)

	slot, ok := b.Slot("east-r64-g1")
	require.True(t, ok)
	assert.Equal(t, "east-1", slot.Team1ID)
	assert.Equal(t, "east-16", slot.Team2ID)

	slot2, ok := b.Slot("east-r64-g2")
	require.True(t, ok)
	assert.Equal(t, "east-8", slot2.Team1ID)
	assert.Equal(t, "east-9", slot2.Team2ID)
}

func TestBuildFromTeamsFinalFourWiring(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)

	eastE8, _ := b.Slot("east-e8-g1")
	westE8, _ := b.Slot("west-e8-g1")
	southE8, _ := b.Slot("south-e8-g1")
	midwestE8, _ := b.Slot("midwest-e8-g1")

	assert.Equal(t, "ff-g1", eastE8.NextSlotID)
	assert.Equal(t, 0, eastE8.FeederRank)
	assert.Equal(t, "ff-g1", westE8.NextSlotID)
	assert.Equal(t, 1, westE8.FeederRank)
	assert.Equal(t, "ff-g2", southE8.NextSlotID)
	assert.Equal(t, "ff-g2", midwestE8.NextSlotID)

	ff1, _ := b.Slot("ff-g1")
	ff2, _ := b.Slot("ff-g2")
	assert.Equal(t, "championship", ff1.NextSlotID)
	assert.Equal(t, "championship", ff2.NextSlotID)
}

func TestBuildFromTeamsRejectsWrongRegionCount(t *testing.T) {
	teams := syntheticTeams()[:16] // only one region
	_, err := BuildFromTeams(teams)
	require.Error(t, err)
	var invalid *InvalidBracketError
	assert.ErrorAs(t, err, &invalid)
}

func TestBuildFromTeamsRejectsDuplicateSeed(t *testing.T) {
	teams := syntheticTeams()
	teams[1].Seed = teams[0].Seed // duplicate seed 1 within east
	_, err := BuildFromTeams(teams)
	require.Error(t, err)
}

func TestNewRejectsCycle(t *testing.T) {
	a := &Slot{SlotID: "a", NextSlotID: "b", FeederRank: 0}
	b := &Slot{SlotID: "b", NextSlotID: "a", FeederRank: 0}
	c := &Slot{SlotID: "c", NextSlotID: "a", FeederRank: 1}
	d := &Slot{SlotID: "d", NextSlotID: "b", FeederRank: 1}
	_, err := New([]*Slot{a, b, c, d})
	require.Error(t, err)
}

func TestNewRejectsOrphanSlot(t *testing.T) {
	a := &Slot{SlotID: "a", NextSlotID: "c", FeederRank: 0}
	b := &Slot{SlotID: "b", NextSlotID: "c", FeederRank: 1}
	c := &Slot{SlotID: "c"}
	orphan := &Slot{SlotID: "orphan"}
	_, err := New([]*Slot{a, b, c, orphan})
	require.Error(t, err)
}

func TestNewRejectsDuplicateFeederRank(t *testing.T) {
	a := &Slot{SlotID: "a", NextSlotID: "c", FeederRank: 0}
	b := &Slot{SlotID: "b", NextSlotID: "c", FeederRank: 0}
	c := &Slot{SlotID: "c"}
	_, err := New([]*Slot{a, b, c})
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := BuildFromTeams(syntheticTeams())
	require.NoError(t, err)

	clone := b.Clone()
	slot, _ := clone.Slot("east-r64-g1")
	slot.WinnerID = "east-1"

	original, _ := b.Slot("east-r64-g1")
	assert.Empty(t, original.WinnerID, "mutating a clone must not affect the source bracket")
}
