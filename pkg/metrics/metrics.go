// Package metrics defines the team performance record the probability
// model differentiates on, the fixed normalization constants for each
// recognized metric, and the momentum derivation used by the
// probability pipeline.
package metrics

import "math"

// Metrics is the complete per-team performance record. Not every
// field participates in the base probability model; fields outside
// the canonical set below are carried for completeness and for modes
// that declare their own data sources.
type Metrics struct {
	AdjOffensiveEfficiency float64 // points scored per 100 possessions, opponent-adjusted
	AdjDefensiveEfficiency float64 // points allowed per 100 possessions, opponent-adjusted
	AdjTempo               float64 // possessions per 40 minutes
	StrengthOfSchedule     float64

	EffectiveFGPct       float64
	ThreePointRate       float64
	ThreePointPct        float64
	FreeThrowRate        float64
	FreeThrowPct         float64
	OffensiveReboundPct  float64
	DefensiveReboundPct  float64
	TurnoverPct          float64

	StealPct        float64
	AvgHeightInches float64
	BenchMinutesPct float64
	ExperienceRating float64

	SeasonWins        int
	SeasonLosses      int
	ConferenceWins    int
	ConferenceLosses  int
	Last10Wins        int
	Last10Losses      int
	WinStreak         int
}

// DefaultMetrics returns the D-I midpoints used to fill in missing
// optional fields on team construction.
func DefaultMetrics() Metrics {
	return Metrics{
		AdjOffensiveEfficiency: 100.0,
		AdjDefensiveEfficiency: 100.0,
		AdjTempo:               68.0,
		StrengthOfSchedule:     0.0,
		EffectiveFGPct:         0.50,
		ThreePointRate:         0.36,
		ThreePointPct:          0.34,
		FreeThrowRate:          0.30,
		FreeThrowPct:           0.70,
		OffensiveReboundPct:    0.30,
		DefensiveReboundPct:    0.70,
		TurnoverPct:            0.18,
		StealPct:               0.09,
		AvgHeightInches:        77.0,
		BenchMinutesPct:        0.30,
		ExperienceRating:       2.0,
		Last10Wins:             5,
		Last10Losses:           5,
		WinStreak:              0,
	}
}

// Key identifies one of the canonical metrics the probability model
// knows how to weigh. Keys outside this set may be present on Metrics
// but are ignored by the base probability model.
type Key string

const (
	KeyAdjOffensiveEfficiency Key = "adjOffensiveEfficiency"
	KeyAdjDefensiveEfficiency Key = "adjDefensiveEfficiency"
	KeyAdjTempo               Key = "adjTempo"
	KeyStrengthOfSchedule     Key = "strengthOfSchedule"
	KeyEffectiveFGPct         Key = "effectiveFGPct"
	KeyThreePointRate         Key = "threePointRate"
	KeyThreePointPct          Key = "threePointPct"
	KeyFreeThrowRate          Key = "freeThrowRate"
	KeyFreeThrowPct           Key = "freeThrowPct"
	KeyOffensiveReboundPct    Key = "offensiveReboundPct"
	KeyDefensiveReboundPct    Key = "defensiveReboundPct"
	KeyTurnoverPct            Key = "turnoverPct"
	KeyExperienceRating       Key = "experienceRating"
	KeyMomentumScore          Key = "momentumScore"
)

// AllKeys enumerates the exactly-14 recognized metric keys, in a fixed
// order so iteration is deterministic wherever it matters (e.g.
// blending weight maps).
var AllKeys = []Key{
	KeyAdjOffensiveEfficiency,
	KeyAdjDefensiveEfficiency,
	KeyAdjTempo,
	KeyStrengthOfSchedule,
	KeyEffectiveFGPct,
	KeyThreePointRate,
	KeyThreePointPct,
	KeyFreeThrowRate,
	KeyFreeThrowPct,
	KeyOffensiveReboundPct,
	KeyDefensiveReboundPct,
	KeyTurnoverPct,
	KeyExperienceRating,
	KeyMomentumScore,
}

// Sigma holds the fixed empirical D-I standard deviation for each
// canonical metric, used to normalize raw differentials before
// weighting.
var Sigma = map[Key]float64{
	KeyAdjOffensiveEfficiency: 8.0,
	KeyAdjDefensiveEfficiency: 8.0,
	KeyAdjTempo:               4.0,
	KeyStrengthOfSchedule:     4.0,
	KeyEffectiveFGPct:         0.035,
	KeyThreePointRate:         0.06,
	KeyThreePointPct:          0.035,
	KeyFreeThrowRate:          0.08,
	KeyFreeThrowPct:           0.06,
	KeyOffensiveReboundPct:    0.04,
	KeyDefensiveReboundPct:    0.04,
	KeyTurnoverPct:            0.03,
	KeyExperienceRating:       0.6,
	KeyMomentumScore:          0.5,
}

// LowerIsBetter is the set of metrics whose differential is negated
// before weighting, since a smaller value indicates the stronger team.
var LowerIsBetter = map[Key]bool{
	KeyAdjDefensiveEfficiency: true,
	KeyTurnoverPct:            true,
}

// Last10WinPct returns the team's win percentage over its last 10
// games. If fewer than 10 games are recorded it still divides by the
// recorded total, defaulting to 0.5 when no games are recorded.
func Last10WinPct(m Metrics) float64 {
	total := m.Last10Wins + m.Last10Losses
	if total == 0 {
		return 0.5
	}
	return float64(m.Last10Wins) / float64(total)
}

// Momentum derives the momentumScore metric:
// 2*(last10WinPct - 0.5) + clamp(winStreak*0.03, 0, 0.15).
func Momentum(m Metrics) float64 {
	streakBoost := math.Max(0, math.Min(0.15, float64(m.WinStreak)*0.03))
	return 2*(Last10WinPct(m)-0.5) + streakBoost
}

// Extract returns the raw value of the named metric for m, including
// the derived momentumScore. Returns 0 and false for unrecognized keys.
func Extract(m Metrics, key Key) (float64, bool) {
	switch key {
	case KeyAdjOffensiveEfficiency:
		return m.AdjOffensiveEfficiency, true
	case KeyAdjDefensiveEfficiency:
		return m.AdjDefensiveEfficiency, true
	case KeyAdjTempo:
		return m.AdjTempo, true
	case KeyStrengthOfSchedule:
		return m.StrengthOfSchedule, true
	case KeyEffectiveFGPct:
		return m.EffectiveFGPct, true
	case KeyThreePointRate:
		return m.ThreePointRate, true
	case KeyThreePointPct:
		return m.ThreePointPct, true
	case KeyFreeThrowRate:
		return m.FreeThrowRate, true
	case KeyFreeThrowPct:
		return m.FreeThrowPct, true
	case KeyOffensiveReboundPct:
		return m.OffensiveReboundPct, true
	case KeyDefensiveReboundPct:
		return m.DefensiveReboundPct, true
	case KeyTurnoverPct:
		return m.TurnoverPct, true
	case KeyExperienceRating:
		return m.ExperienceRating, true
	case KeyMomentumScore:
		return Momentum(m), true
	default:
		return 0, false
	}
}

// SignedDiff returns the normalized, sign-adjusted differential of key
// between team1 and team2: (v1-v2)/sigma, negated for lower-is-better
// metrics. Unrecognized keys yield 0.
func SignedDiff(key Key, team1, team2 Metrics) float64 {
	v1, ok1 := Extract(team1, key)
	v2, ok2 := Extract(team2, key)
	if !ok1 || !ok2 {
		return 0
	}
	sigma, ok := Sigma[key]
	if !ok || sigma == 0 {
		return 0
	}
	diff := (v1 - v2) / sigma
	if LowerIsBetter[key] {
		diff = -diff
	}
	return diff
}
