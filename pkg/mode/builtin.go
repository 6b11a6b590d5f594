package mode

import (
	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/orangejack9christian/madness-engine/pkg/probability"
)

// RegisterBuiltins registers every mode this package ships with. It is
// called once by Default(); callers assembling a custom registry (for
// example in tests, to isolate registration order) may call it
// directly against their own *Registry.
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		id      string
		factory Factory
	}{
		{"statistical", func() Mode { return newStatisticalMode() }},
		{"upset-chaos", func() Mode { return newUpsetChaosMode() }},
		{"mascot-fury", func() Mode { return newMascotFuryMode() }},
		{"hybrid-momentum", func() Mode { return newHybridMomentumMode() }},
	}
	for _, b := range builtins {
		if err := r.Register(b.id, b.factory); err != nil {
			return err
		}
	}
	return nil
}

// noOpSimState is embedded by modes that carry no per-run state.
type noOpSimState struct{}

func (noOpSimState) InitializeSimState() interface{} { return nil }
func (noOpSimState) OnGameComplete(winner, loser bracket.Team, round bracket.Round, state interface{}) {
}

// statisticalMode is the research-grade default: plain metric-weighted
// probability, no adjustment, no per-run state.
type statisticalMode struct {
	noOpSimState
}

func newStatisticalMode() *statisticalMode { return &statisticalMode{} }

func (m *statisticalMode) Identity() Identity {
	return Identity{
		ID:          "statistical",
		DisplayName: "Statistical",
		Description: "Metric-weighted probability model with no editorializing adjustment.",
		Category:    CategoryResearch,
		Confidence:  ConfidenceValidated,
	}
}

func (m *statisticalMode) Weights() probability.Weights                { return DefaultWeights() }
func (m *statisticalMode) VarianceConfig() probability.VarianceConfig  { return DefaultVarianceConfig() }
func (m *statisticalMode) DataSources() []DataSource                   { return []DataSource{DataSourceHistorical} }
func (m *statisticalMode) Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64 {
	return baseProb
}

// upsetChaosMode leans into variance: it de-emphasizes efficiency in
// favor of tempo/turnover-driven metrics and widens the Monte Carlo
// noise so lower seeds win far more often than the statistical model
// would predict.
type upsetChaosMode struct {
	noOpSimState
}

func newUpsetChaosMode() *upsetChaosMode { return &upsetChaosMode{} }

func (m *upsetChaosMode) Identity() Identity {
	return Identity{
		ID:          "upset-chaos",
		DisplayName: "Upset Chaos",
		Description: "Widens Monte Carlo variance and rewards tempo/turnover volatility for a wilder bracket.",
		Category:    CategoryEntertainment,
		Confidence:  ConfidenceExperimental,
	}
}

func (m *upsetChaosMode) Weights() probability.Weights {
	w := CopyWeights(DefaultWeights())
	w[metrics.KeyAdjOffensiveEfficiency] = 0.5
	w[metrics.KeyAdjDefensiveEfficiency] = 0.5
	w[metrics.KeyAdjTempo] = 0.6
	w[metrics.KeyTurnoverPct] = 1.0
	w[metrics.KeyMomentumScore] = 0.8
	return w
}

func (m *upsetChaosMode) VarianceConfig() probability.VarianceConfig {
	v := CopyVarianceConfig(DefaultVarianceConfig())
	v.BaseVariance = 0.4
	v.UpsetMultiplier = 1.8
	v.SeedGapSensitivity = 0.1
	return v
}

func (m *upsetChaosMode) DataSources() []DataSource { return []DataSource{DataSourceHistorical} }

func (m *upsetChaosMode) Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64 {
	return baseProb
}

// mascotFuryMode is the whimsical mode where mascot fierceness
// dominates the outcome, with the statistical model contributing only
// a small residual.
type mascotFuryMode struct {
	noOpSimState
}

func newMascotFuryMode() *mascotFuryMode { return &mascotFuryMode{} }

func (m *mascotFuryMode) Identity() Identity {
	return Identity{
		ID:          "mascot-fury",
		DisplayName: "Mascot Fury",
		Description: "Decides games mostly by mascot fierceness rating, for entertainment brackets only.",
		Category:    CategoryEntertainment,
		Confidence:  ConfidenceWhimsical,
	}
}

func (m *mascotFuryMode) Weights() probability.Weights {
	w := make(probability.Weights, len(metrics.AllKeys))
	for _, k := range metrics.AllKeys {
		w[k] = 0.1
	}
	return w
}

func (m *mascotFuryMode) VarianceConfig() probability.VarianceConfig {
	v := CopyVarianceConfig(DefaultVarianceConfig())
	v.BaseVariance = 0.3
	v.SeedGapSensitivity = 0
	return v
}

func (m *mascotFuryMode) DataSources() []DataSource { return []DataSource{DataSourceMascot} }

// fierceGapSigma normalizes a fierceness rating difference (1-10 scale)
// onto roughly the same logit scale the statistical model uses.
const fierceGapSigma = 3.0

func (m *mascotFuryMode) Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64 {
	f1, f2 := 5, 5
	if team1.Mascot != nil {
		f1 = team1.Mascot.Fierceness
	}
	if team2.Mascot != nil {
		f2 = team2.Mascot.Fierceness
	}
	if f1 == f2 {
		return baseProb
	}
	mascotProb := probability.Sigmoid(float64(f1-f2) / fierceGapSigma)
	return 0.15*baseProb + 0.85*mascotProb
}

// hotHandState is the per-run opaque state hybridMomentumMode threads
// through InitializeSimState/OnGameComplete: a running count of
// consecutive wins ("hot hand") for every team still alive in this
// run only.
type hotHandState struct {
	streak map[string]int
}

// hybridMomentumMode blends the statistical model with a run-local hot
// hand effect: a team that has already won games earlier in this same
// simulated bracket run gets a small confidence bump on top of its
// static momentumScore metric, which only reflects season history.
// The mode instance itself carries no per-run data — the streak lives
// entirely in the opaque state InitializeSimState allocates, read back
// through SimulationContext.ModeState in Adjust the same way
// OnGameComplete receives it as a parameter.
type hybridMomentumMode struct{}

func newHybridMomentumMode() *hybridMomentumMode { return &hybridMomentumMode{} }

func (m *hybridMomentumMode) Identity() Identity {
	return Identity{
		ID:          "hybrid-momentum",
		DisplayName: "Hybrid Momentum",
		Description: "Statistical baseline plus a run-local hot hand bump for teams on a simulated win streak.",
		Category:    CategoryHybrid,
		Confidence:  ConfidenceExperimental,
	}
}

func (m *hybridMomentumMode) Weights() probability.Weights               { return DefaultWeights() }
func (m *hybridMomentumMode) VarianceConfig() probability.VarianceConfig { return DefaultVarianceConfig() }
func (m *hybridMomentumMode) DataSources() []DataSource                  { return []DataSource{DataSourceHistorical} }

func (m *hybridMomentumMode) InitializeSimState() interface{} {
	return &hotHandState{streak: make(map[string]int)}
}

func (m *hybridMomentumMode) OnGameComplete(winner, loser bracket.Team, round bracket.Round, state interface{}) {
	s, ok := state.(*hotHandState)
	if !ok || s == nil {
		return
	}
	s.streak[winner.ID]++
	delete(s.streak, loser.ID)
}

const hotHandBumpPerWin = 0.015
const hotHandBumpCap = 0.06

func (m *hybridMomentumMode) Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64 {
	s, ok := ctx.ModeState.(*hotHandState)
	if !ok || s == nil {
		return baseProb
	}
	bump := func(id string) float64 {
		streak := s.streak[id]
		b := float64(streak) * hotHandBumpPerWin
		if b > hotHandBumpCap {
			b = hotHandBumpCap
		}
		return b
	}
	net := bump(team1.ID) - bump(team2.ID)
	return probability.Clamp(baseProb + net)
}
