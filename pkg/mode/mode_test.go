package mode

import (
	"testing"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/orangejack9christian/madness-engine/pkg/probability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("statistical", func() Mode { return newStatisticalMode() }))

	got, err := r.Get("statistical")
	require.NoError(t, err)
	assert.Equal(t, "statistical", got.Identity().ID)
}

func TestRegistryDuplicateRegistrationFails(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("statistical", func() Mode { return newStatisticalMode() }))
	err := r.Register("statistical", func() Mode { return newStatisticalMode() })
	assert.Error(t, err)
}

func TestRegistryUnknownModeListsAvailable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("statistical", func() Mode { return newStatisticalMode() }))
	_, err := r.Get("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statistical")
}

func TestRegistryFreezeRejectsFurtherRegistration(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	err := r.Register("statistical", func() Mode { return newStatisticalMode() })
	assert.Error(t, err)
}

func TestRegistryGetReturnsFreshInstance(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("hybrid-momentum", func() Mode { return newHybridMomentumMode() }))

	a, err := r.Get("hybrid-momentum")
	require.NoError(t, err)
	b, err := r.Get("hybrid-momentum")
	require.NoError(t, err)

	winner := bracket.Team{ID: "team-a"}
	loser := bracket.Team{ID: "team-b"}
	stateA := a.InitializeSimState()
	stateB := b.InitializeSimState()
	a.OnGameComplete(winner, loser, bracket.RoundOf64, stateA)

	assert.Equal(t, 1, stateA.(*hotHandState).streak["team-a"])
	assert.Equal(t, 0, stateB.(*hotHandState).streak["team-a"], "each Get returns a mode whose state is independent of any other instance's")
}

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	ids := Default().IDs()
	assert.Contains(t, ids, "statistical")
	assert.Contains(t, ids, "upset-chaos")
	assert.Contains(t, ids, "mascot-fury")
	assert.Contains(t, ids, "hybrid-momentum")
}

func TestStatisticalModeIsPassthrough(t *testing.T) {
	m := newStatisticalMode()
	ctx := probability.SimulationContext{Round: bracket.RoundOf64}
	got := m.Adjust(0.63, bracket.Team{}, bracket.Team{}, ctx)
	assert.Equal(t, 0.63, got)
}

func TestMascotFuryFavorsFiercerMascot(t *testing.T) {
	m := newMascotFuryMode()
	team1 := bracket.Team{ID: "t1", Mascot: &bracket.MascotProfile{Fierceness: 9}}
	team2 := bracket.Team{ID: "t2", Mascot: &bracket.MascotProfile{Fierceness: 2}}
	ctx := probability.SimulationContext{}
	got := m.Adjust(0.5, team1, team2, ctx)
	assert.Greater(t, got, 0.5)
}

func TestMascotFuryNoOpWithoutMascotData(t *testing.T) {
	m := newMascotFuryMode()
	got := m.Adjust(0.5, bracket.Team{ID: "t1"}, bracket.Team{ID: "t2"}, probability.SimulationContext{})
	assert.Equal(t, 0.5, got)
}

func TestHybridMomentumBumpsHotTeam(t *testing.T) {
	m := newHybridMomentumMode()
	state := m.InitializeSimState()

	winner := bracket.Team{ID: "hot"}
	loser := bracket.Team{ID: "cold"}
	m.OnGameComplete(winner, loser, bracket.RoundOf64, state)
	m.OnGameComplete(winner, bracket.Team{ID: "someone-else"}, bracket.RoundOf32, state)

	adjusted := m.Adjust(0.5, winner, bracket.Team{ID: "no-history"}, probability.SimulationContext{ModeState: state})
	assert.Greater(t, adjusted, 0.5)
}

func TestHybridMomentumIgnoresMissingState(t *testing.T) {
	m := newHybridMomentumMode()
	adjusted := m.Adjust(0.5, bracket.Team{ID: "a"}, bracket.Team{ID: "b"}, probability.SimulationContext{})
	assert.Equal(t, 0.5, adjusted, "Adjust must be a pure function of ctx and never fall back to instance state")
}

func TestHybridMomentumStreakResetsOnLoss(t *testing.T) {
	m := newHybridMomentumMode()
	state := m.InitializeSimState()
	teamA := bracket.Team{ID: "a"}
	teamB := bracket.Team{ID: "b"}
	m.OnGameComplete(teamA, teamB, bracket.RoundOf64, state)
	m.OnGameComplete(teamB, teamA, bracket.RoundOf32, state)

	s := state.(*hotHandState)
	assert.Equal(t, 0, s.streak["a"])
	assert.Equal(t, 1, s.streak["b"])
}

func TestBlendRejectsFewerThanTwoComponents(t *testing.T) {
	_, err := Blend(Component{Mode: newStatisticalMode(), Weight: 1.0})
	assert.Error(t, err)
}

func TestBlendRejectsNonPositiveWeight(t *testing.T) {
	_, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newUpsetChaosMode(), Weight: 0},
	)
	assert.Error(t, err)
}

func TestBlendWeightsAreWeightedAverage(t *testing.T) {
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newUpsetChaosMode(), Weight: 1.0},
	)
	require.NoError(t, err)

	statW := newStatisticalMode().Weights()[metrics.KeyAdjOffensiveEfficiency]
	chaosW := newUpsetChaosMode().Weights()[metrics.KeyAdjOffensiveEfficiency]
	got := blended.Weights()[metrics.KeyAdjOffensiveEfficiency]
	assert.InDelta(t, (statW+chaosW)/2, got, 1e-9)
}

func TestBlendConfidenceTakesLeastTrusted(t *testing.T) {
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newMascotFuryMode(), Weight: 1.0},
	)
	require.NoError(t, err)
	assert.Equal(t, ConfidenceWhimsical, blended.Identity().Confidence)
}

func TestBlendCategoryBecomesHybridWhenComponentsDiffer(t *testing.T) {
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newUpsetChaosMode(), Weight: 1.0},
	)
	require.NoError(t, err)
	assert.Equal(t, CategoryHybrid, blended.Identity().Category)
}

func TestBlendDataSourcesIsUnion(t *testing.T) {
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newMascotFuryMode(), Weight: 1.0},
	)
	require.NoError(t, err)
	ds := blended.DataSources()
	assert.Contains(t, ds, DataSourceHistorical)
	assert.Contains(t, ds, DataSourceMascot)
}

func TestBlendStateRoutesToRightComponent(t *testing.T) {
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newHybridMomentumMode(), Weight: 1.0},
	)
	require.NoError(t, err)

	state := blended.InitializeSimState()
	winner := bracket.Team{ID: "hot"}
	loser := bracket.Team{ID: "cold"}
	blended.OnGameComplete(winner, loser, bracket.RoundOf64, state)

	s := state.(*blendState)
	momentumState := s.perComponent[1].(*hotHandState)
	assert.Equal(t, 1, momentumState.streak["hot"])
}

func TestBlendAdjustRoutesStateToRightComponent(t *testing.T) {
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newHybridMomentumMode(), Weight: 1.0},
	)
	require.NoError(t, err)

	state := blended.InitializeSimState()
	winner := bracket.Team{ID: "hot"}
	loser := bracket.Team{ID: "cold"}
	blended.OnGameComplete(winner, loser, bracket.RoundOf64, state)
	blended.OnGameComplete(winner, bracket.Team{ID: "someone-else"}, bracket.RoundOf32, state)

	withoutState := blended.Adjust(0.5, winner, bracket.Team{ID: "no-history"}, probability.SimulationContext{})
	withState := blended.Adjust(0.5, winner, bracket.Team{ID: "no-history"}, probability.SimulationContext{ModeState: state})
	assert.Greater(t, withState, withoutState, "the hybrid-momentum component must see its own state through the blend")
}

func TestBlendVarianceLeavesRoundMultipliersEmpty(t *testing.T) {
	// Both components' VarianceConfig carries non-trivial
	// RoundVarianceMultipliers (DefaultVarianceConfig sets them), but a
	// blend must not average them into a synthetic per-round table.
	blended, err := Blend(
		Component{Mode: newStatisticalMode(), Weight: 1.0},
		Component{Mode: newUpsetChaosMode(), Weight: 1.0},
	)
	require.NoError(t, err)

	vc := blended.VarianceConfig()
	assert.Empty(t, vc.RoundVarianceMultipliers)
}

func TestBundledPresetsParse(t *testing.T) {
	presets, err := BundledPresets()
	require.NoError(t, err)
	require.Contains(t, presets, "efficiency-heavy")
	p := presets["efficiency-heavy"]
	assert.InDelta(t, 1.4, p.Weights[metrics.KeyAdjOffensiveEfficiency], 1e-9)
	assert.InDelta(t, 1.2, p.Variance.RoundVarianceMultipliers[bracket.Championship], 1e-9)
}

func TestFromPresetBuildsUsableMode(t *testing.T) {
	m, err := FromPreset("guard-play")
	require.NoError(t, err)
	assert.Equal(t, "guard-play", m.Identity().ID)
	assert.InDelta(t, 0.9, m.Weights()[metrics.KeyEffectiveFGPct], 1e-9)
}

func TestFromPresetUnknownIDFails(t *testing.T) {
	_, err := FromPreset("does-not-exist")
	assert.Error(t, err)
}

func TestDefaultRegistryIncludesBundledPresets(t *testing.T) {
	ids := Default().IDs()
	assert.Contains(t, ids, "efficiency-heavy")
	assert.Contains(t, ids, "guard-play")

	got, err := Default().Get("efficiency-heavy")
	require.NoError(t, err)
	assert.Equal(t, "efficiency-heavy", got.Identity().ID)
}

func TestDefaultWeightsCoversAllKeys(t *testing.T) {
	w := DefaultWeights()
	for _, k := range metrics.AllKeys {
		_, ok := w[k]
		assert.True(t, ok, "missing weight for %s", k)
	}
}
