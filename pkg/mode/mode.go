// Package mode implements the pluggable capability-set abstraction:
// every simulation mode declares its metric weights,
// variance configuration, a deterministic probability adjuster, the
// external data sources it depends on, and may opt into per-run
// state. Modes are looked up by id from a process-wide registry and
// may be composed via a weighted blender.
package mode

import (
	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/probability"
)

// Category classifies a mode's overall character.
type Category string

const (
	CategoryResearch      Category = "research"
	CategoryEntertainment Category = "entertainment"
	CategoryHybrid        Category = "hybrid"
)

// Confidence tags how seriously a mode's output should be taken.
type Confidence string

const (
	ConfidenceValidated    Confidence = "statistically-validated"
	ConfidenceExperimental Confidence = "experimental"
	ConfidenceWhimsical    Confidence = "whimsical"
)

// DataSource is a closed enum of external datasets a mode may declare
// it needs. The core engine does not fetch these; it only carries the
// declaration for the embedding runtime to resolve.
type DataSource string

const (
	DataSourceMascot     DataSource = "mascot-data"
	DataSourceCoaching   DataSource = "coaching-ratings"
	DataSourceDraft      DataSource = "nba-draft-rankings"
	DataSourceBetting    DataSource = "betting-lines"
	DataSourceHistorical DataSource = "historical-results"
	DataSourceAI         DataSource = "ai-model"
)

// Identity is a mode's fixed metadata.
type Identity struct {
	ID          string
	DisplayName string
	Description string
	Category    Category
	Confidence  Confidence
}

// Mode is the full capability set every simulation strategy
// implements. InitializeSimState/OnGameComplete are the
// optional per-Monte-Carlo-run state hook; modes that don't need
// per-run state return nil from InitializeSimState and no-op
// OnGameComplete.
type Mode interface {
	Identity() Identity
	Weights() probability.Weights
	VarianceConfig() probability.VarianceConfig
	DataSources() []DataSource

	// Adjust must be a pure function of its arguments: equal inputs
	// produce equal outputs, and it must never draw from an RNG. A
	// mode with per-run state reads it only through ctx.ModeState and
	// never mutates it here; OnGameComplete is the only place it changes.
	Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64

	// InitializeSimState allocates a fresh, opaque state value owned
	// by exactly one Monte Carlo run. Returning nil means the mode
	// has no per-run state.
	InitializeSimState() interface{}
	// OnGameComplete is invoked by the propagator after each game's
	// winner is decided, with the same state value InitializeSimState
	// returned for this run. It is never called concurrently within a
	// single run and never shared across runs.
	OnGameComplete(winner, loser bracket.Team, round bracket.Round, state interface{})
}

// DefaultWeights returns the baseline metric weights many modes
// extend or override rather than restate from scratch.
func DefaultWeights() probability.Weights {
	return probability.Weights{
		"adjOffensiveEfficiency": 1.0,
		"adjDefensiveEfficiency": 1.0,
		"adjTempo":               0.1,
		"strengthOfSchedule":     0.5,
		"effectiveFGPct":         0.6,
		"threePointRate":         0.2,
		"threePointPct":          0.5,
		"freeThrowRate":          0.2,
		"freeThrowPct":           0.2,
		"offensiveReboundPct":    0.4,
		"defensiveReboundPct":    0.4,
		"turnoverPct":            0.5,
		"experienceRating":       0.3,
		"momentumScore":          0.3,
	}
}

// DefaultVarianceConfig returns the baseline variance configuration
// many modes extend.
func DefaultVarianceConfig() probability.VarianceConfig {
	return probability.VarianceConfig{
		BaseVariance:       0.18,
		UpsetMultiplier:    1.0,
		LiveStateWeight:    0.5,
		SeedGapSensitivity: 0.5,
		RoundVarianceMultipliers: map[bracket.Round]float64{
			bracket.FinalFour:    1.1,
			bracket.Championship: 1.2,
		},
	}
}

// CopyWeights returns a shallow copy of w so a mode can start from a
// shared default and override a handful of keys without mutating the
// shared map.
func CopyWeights(w probability.Weights) probability.Weights {
	out := make(probability.Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// CopyVarianceConfig returns a deep-enough copy of v (the round
// multiplier map is copied) so a mode can override fields without
// mutating a shared default.
func CopyVarianceConfig(v probability.VarianceConfig) probability.VarianceConfig {
	out := v
	if v.RoundVarianceMultipliers != nil {
		out.RoundVarianceMultipliers = make(map[bracket.Round]float64, len(v.RoundVarianceMultipliers))
		for k, val := range v.RoundVarianceMultipliers {
			out.RoundVarianceMultipliers[k] = val
		}
	}
	return out
}
