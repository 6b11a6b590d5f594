// Package aggregate turns a stream of per-run propagator outcomes into
// the count matrices and summary statistics the engine's public result
// reports: per-team round-reach probabilities, expected
// wins, the most likely champion and Final Four, a volatility index,
// and the biggest projected upset.
package aggregate

import (
	"math"
	"sort"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/propagate"
)

// CountMatrix accumulates run outcomes without retaining every
// individual RunOutcome, so it merges cheaply across parallel workers.
type CountMatrix struct {
	TotalRuns int

	// FurthestRoundCounts[teamID][round] counts runs where the team's
	// terminal (last-played) round was exactly round.
	FurthestRoundCounts map[string]map[bracket.Round]int
	// GamesWonHistogram[teamID][wins] counts runs where the team won
	// exactly wins games (0 through 6). This is the raw distribution
	// RoundReachDistribution derives from.
	GamesWonHistogram map[string]map[int]int
	ChampionCounts    map[string]int
}

// NewCountMatrix returns an empty matrix ready for Add/Merge.
func NewCountMatrix() *CountMatrix {
	return &CountMatrix{
		FurthestRoundCounts: make(map[string]map[bracket.Round]int),
		GamesWonHistogram:   make(map[string]map[int]int),
		ChampionCounts:      make(map[string]int),
	}
}

// Add folds one run's outcome into the matrix.
func (c *CountMatrix) Add(o propagate.RunOutcome) {
	c.TotalRuns++
	for teamID, round := range o.FurthestRound {
		byRound, ok := c.FurthestRoundCounts[teamID]
		if !ok {
			byRound = make(map[bracket.Round]int)
			c.FurthestRoundCounts[teamID] = byRound
		}
		byRound[round]++
	}
	for teamID, wins := range o.GamesWon {
		byWins, ok := c.GamesWonHistogram[teamID]
		if !ok {
			byWins = make(map[int]int)
			c.GamesWonHistogram[teamID] = byWins
		}
		byWins[wins]++
	}
	if o.Champion != "" {
		c.ChampionCounts[o.Champion]++
	}
}

// Merge folds other's counts into c, for combining each parallel
// worker's partial matrix into the batch total.
func (c *CountMatrix) Merge(other *CountMatrix) {
	c.TotalRuns += other.TotalRuns
	for teamID, byRound := range other.FurthestRoundCounts {
		dst, ok := c.FurthestRoundCounts[teamID]
		if !ok {
			dst = make(map[bracket.Round]int)
			c.FurthestRoundCounts[teamID] = dst
		}
		for round, n := range byRound {
			dst[round] += n
		}
	}
	for teamID, byWins := range other.GamesWonHistogram {
		dst, ok := c.GamesWonHistogram[teamID]
		if !ok {
			dst = make(map[int]int)
			c.GamesWonHistogram[teamID] = dst
		}
		for wins, n := range byWins {
			dst[wins] += n
		}
	}
	for teamID, n := range other.ChampionCounts {
		c.ChampionCounts[teamID] += n
	}
}

// ReachProbability returns the fraction of runs in which teamID's
// terminal round was the given round or later — i.e. the probability
// the team survived at least that far.
func (c *CountMatrix) ReachProbability(teamID string, round bracket.Round) float64 {
	if c.TotalRuns == 0 {
		return 0
	}
	byRound, ok := c.FurthestRoundCounts[teamID]
	if !ok {
		return 0
	}
	count := 0
	for r, n := range byRound {
		if r >= round {
			count += n
		}
	}
	return float64(count) / float64(c.TotalRuns)
}

// ExpectedWins sums teamID's reach probability across every
// post-round-of-64 advancement round, the standard "expected wins"
// tournament forecasting statistic.
func (c *CountMatrix) ExpectedWins(teamID string) float64 {
	sum := 0.0
	for _, round := range bracket.AdvancementRounds {
		sum += c.ReachProbability(teamID, round)
	}
	return sum
}

// VolatilityIndex is the population standard deviation of every known
// team's championship probability: one scalar describing how spread
// out the whole championship-probability vector is. A field with one
// heavy favorite and a long tail of near-zero contenders has a high
// volatility index; a field where the title is a near-coin-flip among
// many teams has a low one.
func (c *CountMatrix) VolatilityIndex() float64 {
	if c.TotalRuns == 0 || len(c.FurthestRoundCounts) == 0 {
		return 0
	}
	n := float64(len(c.FurthestRoundCounts))
	sum, sumSquares := 0.0, 0.0
	for teamID := range c.FurthestRoundCounts {
		p := float64(c.ChampionCounts[teamID]) / float64(c.TotalRuns)
		sum += p
		sumSquares += p * p
	}
	mean := sum / n
	variance := sumSquares/n - mean*mean
	if variance < 0 {
		variance = 0 // guards float rounding on a near-zero true variance
	}
	return math.Sqrt(variance)
}

// MostLikelyChampion returns the team id with the highest championship
// count and its probability. Ties break by higher seed-rank (the
// lower seed number); a team absent from teamSeed never wins a tie
// against one that's present.
func (c *CountMatrix) MostLikelyChampion(teamSeed map[string]int) (teamID string, probability float64) {
	if c.TotalRuns == 0 || len(c.ChampionCounts) == 0 {
		return "", 0
	}
	best := ""
	bestCount := -1
	ids := sortedKeys(c.ChampionCounts)
	for _, id := range ids {
		n := c.ChampionCounts[id]
		switch {
		case n > bestCount:
			bestCount = n
			best = id
		case n == bestCount && seedRank(teamSeed, id) < seedRank(teamSeed, best):
			best = id
		}
	}
	return best, float64(bestCount) / float64(c.TotalRuns)
}

// MostLikelyFinalFour returns the four teams with the highest
// probability of reaching the Final Four, most likely first. Ties
// break first by championship probability, then by seed ascending.
func (c *CountMatrix) MostLikelyFinalFour(teamSeed map[string]int) []string {
	type entry struct {
		teamID    string
		prob      float64
		champProb float64
	}
	ids := sortedKeys(c.FurthestRoundCounts)
	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		champProb := 0.0
		if c.TotalRuns > 0 {
			champProb = float64(c.ChampionCounts[id]) / float64(c.TotalRuns)
		}
		entries = append(entries, entry{
			teamID:    id,
			prob:      c.ReachProbability(id, bracket.FinalFour),
			champProb: champProb,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].prob != entries[j].prob {
			return entries[i].prob > entries[j].prob
		}
		if entries[i].champProb != entries[j].champProb {
			return entries[i].champProb > entries[j].champProb
		}
		return seedRank(teamSeed, entries[i].teamID) < seedRank(teamSeed, entries[j].teamID)
	})
	limit := 4
	if len(entries) < limit {
		limit = len(entries)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = entries[i].teamID
	}
	return out
}

// seedRank orders teams for a tie-break: lower seed number wins. A
// team missing from teamSeed sorts last so it never wins a tie
// against a team the caller actually knows the seed of.
func seedRank(teamSeed map[string]int, teamID string) int {
	if seed, ok := teamSeed[teamID]; ok {
		return seed
	}
	return math.MaxInt
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
