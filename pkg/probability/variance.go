package probability

import (
	"math"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/rng"
)

// VarianceConfig controls how much noise the Monte Carlo sampler
// injects into a matchup's win probability.
type VarianceConfig struct {
	BaseVariance             float64
	UpsetMultiplier          float64
	LiveStateWeight          float64
	SeedGapSensitivity       float64
	RoundVarianceMultipliers map[bracket.Round]float64
}

// EffectiveVariance returns the round-scaled variance for r, defaulting
// the round multiplier to 1.0 when unset.
func EffectiveVariance(v VarianceConfig, r bracket.Round) float64 {
	multiplier := 1.0
	if v.RoundVarianceMultipliers != nil {
		if m, ok := v.RoundVarianceMultipliers[r]; ok {
			multiplier = m
		}
	}
	return v.BaseVariance * multiplier
}

// SampleOutcome draws the boolean outcome of a single matchup: team1
// wins iff the return value is true. p must already have passed
// through the probability pipeline's earlier stages and clamp.
func SampleOutcome(p float64, v VarianceConfig, round bracket.Round, source rng.Source) bool {
	sigmaEff := EffectiveVariance(v, round)

	logitP := math.Log(p / (1 - p))
	noisy := Sigmoid(logitP + source.Gaussian()*sigmaEff*4)

	m := v.UpsetMultiplier
	if m == 0 {
		// Spec leaves M==0 undefined (division by zero in the
		// compression formula); treat it as the M==1 identity case
		// rather than propagate a NaN into the count matrices.
		m = 1
	}
	final := noisy/m + 0.5*(1-1/m)
	final = Clamp(final)

	return source.Float64() < final
}
