package aggregate

import (
	"sort"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
)

// historicalBaseline[seed][round] is the historically observed
// probability that a team seeded seed reaches round or further,
// drawn from the well-known NCAA tournament seed-line appearance
// rates. Seeds are capped at 8: seeds 9 and worse borrow row 8's
// baseline since no seed-line-specific data exists that deep in the
// bracket.
var historicalBaseline = map[int]map[bracket.Round]float64{
	1: {bracket.RoundOf32: 0.85, bracket.SweetSixteen: 0.62, bracket.EliteEight: 0.38, bracket.FinalFour: 0.21, bracket.Championship: 0.11},
	2: {bracket.RoundOf32: 0.83, bracket.SweetSixteen: 0.52, bracket.EliteEight: 0.28, bracket.FinalFour: 0.14, bracket.Championship: 0.06},
	3: {bracket.RoundOf32: 0.72, bracket.SweetSixteen: 0.38, bracket.EliteEight: 0.17, bracket.FinalFour: 0.07, bracket.Championship: 0.03},
	4: {bracket.RoundOf32: 0.69, bracket.SweetSixteen: 0.31, bracket.EliteEight: 0.12, bracket.FinalFour: 0.05, bracket.Championship: 0.02},
	5: {bracket.RoundOf32: 0.65, bracket.SweetSixteen: 0.22, bracket.EliteEight: 0.08, bracket.FinalFour: 0.03, bracket.Championship: 0.01},
	6: {bracket.RoundOf32: 0.63, bracket.SweetSixteen: 0.20, bracket.EliteEight: 0.07, bracket.FinalFour: 0.02, bracket.Championship: 0.01},
	7: {bracket.RoundOf32: 0.60, bracket.SweetSixteen: 0.17, bracket.EliteEight: 0.05, bracket.FinalFour: 0.02, bracket.Championship: 0.01},
	8: {bracket.RoundOf32: 0.51, bracket.SweetSixteen: 0.14, bracket.EliteEight: 0.04, bracket.FinalFour: 0.01, bracket.Championship: 0.01},
}

// minProjectedProbability floors which (team, round) pairs are worth
// reporting at all: a 0.3% shot at the Final Four isn't a projected
// Cinderella run, it's noise in the count matrix.
const minProjectedProbability = 0.01

// baselineFor returns round's historical baseline for seed, capping
// seed at 8 so double-digit seeds borrow row 8's baseline.
func baselineFor(seed int, round bracket.Round) (float64, bool) {
	if seed > 8 {
		seed = 8
	}
	byRound, ok := historicalBaseline[seed]
	if !ok {
		return 0, false
	}
	baseline, ok := byRound[round]
	return baseline, ok
}

// UpsetProjection is one seed-9-or-worse team's projected run: the gap
// between its simulated probability of reaching round and the
// historical baseline for teams of its seed line at that round.
type UpsetProjection struct {
	TeamID                     string
	Seed                       int
	Round                      bracket.Round
	ProjectedUpsetProbability  float64
	HistoricalUpsetProbability float64
	Delta                      float64 // projected minus historical; positive means the model sees more chaos than history does
}

// ProjectedUpsets scans every team seeded 9 or worse across every
// round except round-of-64 (round-of-64 pairings are never a
// Cinderella story by seed alone; the interesting question is how
// deep a double-digit seed runs afterward) and returns one
// UpsetProjection per (team, round) pair whose simulated probability
// of reaching that round clears minProjectedProbability. The original
// bracket isn't needed to compute this beyond identifying which teams
// exist; it's accepted for symmetry with the round-of-64 seed lookups
// callers already have on hand.
func ProjectedUpsets(matrix *CountMatrix, original *bracket.Bracket, teamSeed map[string]int) []UpsetProjection {
	_ = original
	var out []UpsetProjection
	for teamID, seed := range teamSeed {
		if seed < 9 {
			continue
		}
		for _, round := range bracket.AdvancementRounds {
			baseline, ok := baselineFor(seed, round)
			if !ok {
				continue
			}
			projected := matrix.ReachProbability(teamID, round)
			if projected < minProjectedProbability {
				continue
			}
			out = append(out, UpsetProjection{
				TeamID:                     teamID,
				Seed:                       seed,
				Round:                      round,
				ProjectedUpsetProbability:  projected,
				HistoricalUpsetProbability: baseline,
				Delta:                      projected - baseline,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Delta != out[j].Delta {
			return out[i].Delta > out[j].Delta
		}
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].Round < out[j].Round
	})
	return out
}

// BiggestProjectedUpset returns the (team, round) projection with the
// largest gap over its historical baseline. ok is false if no
// seed-9-or-worse team clears the probability floor at any round.
func BiggestProjectedUpset(matrix *CountMatrix, original *bracket.Bracket, teamSeed map[string]int) (proj UpsetProjection, ok bool) {
	projections := ProjectedUpsets(matrix, original, teamSeed)
	if len(projections) == 0 {
		return UpsetProjection{}, false
	}
	return projections[0], true
}
