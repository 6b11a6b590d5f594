package engine

import (
	"fmt"
	"testing"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticTeams() []bracket.Team {
	teams := make([]bracket.Team, 0, 64)
	for _, region := range bracket.Regions {
		for seed := 1; seed <= 16; seed++ {
			teams = append(teams, bracket.Team{
				ID:             fmt.Sprintf("%s-%d", region, seed),
				Seed:           seed,
				Region:         region,
				Metrics:        metrics.DefaultMetrics(),
				TournamentType: bracket.Mens,
			})
		}
	}
	return teams
}

func TestSimulateProducesAForecast(t *testing.T) {
	teams := syntheticTeams()
	b, err := bracket.BuildFromTeams(teams)
	require.NoError(t, err)

	result, err := Simulate(SimulationRequest{
		Bracket:        b,
		Teams:          teams,
		ModeID:         "statistical",
		NumSimulations: 50,
		BaseSeed:       7,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, result.TotalRuns)
	assert.NotEmpty(t, result.Champion)
	assert.Len(t, result.FinalFour, 4)
	assert.Equal(t, "Statistical", result.ModeName)
	assert.NotEmpty(t, result.TournamentType)
	assert.False(t, result.Timestamp.IsZero())
	assert.GreaterOrEqual(t, result.VolatilityIndex, 0.0)
}

func TestSimulateRejectsUnknownMode(t *testing.T) {
	teams := syntheticTeams()
	b, err := bracket.BuildFromTeams(teams)
	require.NoError(t, err)

	_, err = Simulate(SimulationRequest{
		Bracket:        b,
		Teams:          teams,
		ModeID:         "does-not-exist",
		NumSimulations: 10,
	})
	assert.Error(t, err)
}

func TestSimulateRejectsNonPositiveSimulationCount(t *testing.T) {
	teams := syntheticTeams()
	b, err := bracket.BuildFromTeams(teams)
	require.NoError(t, err)

	_, err = Simulate(SimulationRequest{Bracket: b, Teams: teams, ModeID: "statistical", NumSimulations: 0})
	assert.Error(t, err)
}

func TestSimulateIsDeterministicGivenSameSeed(t *testing.T) {
	teams := syntheticTeams()
	b, err := bracket.BuildFromTeams(teams)
	require.NoError(t, err)

	req := SimulationRequest{Bracket: b, Teams: teams, ModeID: "statistical", NumSimulations: 40, BaseSeed: 123, Workers: 1}
	r1, err := Simulate(req)
	require.NoError(t, err)
	r2, err := Simulate(req)
	require.NoError(t, err)

	assert.Equal(t, r1.Champion, r2.Champion)
	assert.Equal(t, r1.ChampionProbability, r2.ChampionProbability)
}

func TestSimulateRespectsLockedResults(t *testing.T) {
	teams := syntheticTeams()
	b, err := bracket.BuildFromTeams(teams)
	require.NoError(t, err)

	result, err := Simulate(SimulationRequest{
		Bracket:        b,
		Teams:          teams,
		ModeID:         "statistical",
		NumSimulations: 30,
		BaseSeed:       9,
		LockedResults:  []LockedResult{{SlotID: "east-r64-g1", WinnerID: "east-16"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, result.ExpectedWins["east-1"], 1e-9)
}

func TestSimulateWithProgressChannel(t *testing.T) {
	teams := syntheticTeams()
	b, err := bracket.BuildFromTeams(teams)
	require.NoError(t, err)

	progress := make(chan DriverProgress, 100)
	result, err := Simulate(SimulationRequest{
		Bracket:        b,
		Teams:          teams,
		ModeID:         "statistical",
		NumSimulations: 20,
		BaseSeed:       3,
		ProgressChan:   progress,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, result.TotalRuns)
	assert.NotEmpty(t, progress)
}
