// Package scoremodel is the auxiliary possession/score simulator. The
// propagator itself only needs the win/loss boolean from
// pkg/probability; this package exists for callers that want a
// plausible synthetic scoreline — for example, building a live-game
// snapshot to feed pkg/livestate in tests or demos.
package scoremodel

import (
	"math"

	"github.com/orangejack9christian/madness-engine/pkg/rng"
)

// D1AverageEfficiency is the reference points-per-100-possessions
// baseline the expected score formula centers on.
const D1AverageEfficiency = 100.0

// Possessions estimates the number of possessions in a matchup from
// both teams' adjusted tempo.
func Possessions(tempo1, tempo2 float64) float64 {
	return (tempo1 + tempo2) / 2
}

// ExpectedScore computes a matchup-adjusted expected score for one
// team: its own offensive efficiency plus how much the opponent's
// defense deviates from the D-I average, scaled by possessions.
func ExpectedScore(ownOffensiveEfficiency, opponentDefensiveEfficiency, possessions float64) float64 {
	return (ownOffensiveEfficiency + (D1AverageEfficiency - opponentDefensiveEfficiency)) / 100 * possessions
}

// SampleScore draws a single Gaussian-noised score sample around an
// expected value, floored at 30 (a team essentially never scores
// fewer than 30 in a 40-minute game).
func SampleScore(expected float64, source rng.Source) int {
	raw := expected + source.Gaussian()*8.0
	return int(math.Max(30, math.Round(raw)))
}

// IsOvertime reports whether two final regulation scores are tied.
func IsOvertime(score1, score2 int) bool {
	return score1 == score2
}

// maxOvertimePeriods bounds the overtime simulation; if teams are
// still tied after this many periods a coin flip resolves it, mirroring
// the vanishingly small real-world odds of a longer game.
const maxOvertimePeriods = 5

func overtimeAdd(source rng.Source) int {
	raw := 7 + source.Gaussian()*3
	return int(math.Max(2, math.Round(raw)))
}

// ResolveOvertime simulates overtime periods until the tie breaks or
// maxOvertimePeriods is reached, at which point a fair coin decides
// it. Returns the final scores and the number of OT periods played.
func ResolveOvertime(score1, score2 int, source rng.Source) (finalScore1, finalScore2, otPeriods int) {
	s1, s2 := score1, score2
	for ot := 0; ot < maxOvertimePeriods && s1 == s2; ot++ {
		s1 += overtimeAdd(source)
		s2 += overtimeAdd(source)
		otPeriods++
	}
	if s1 == s2 {
		if source.Float64() < 0.5 {
			s1++
		} else {
			s2++
		}
	}
	return s1, s2, otPeriods
}
