package aggregate

import "sort"

// GamesWonDistribution mirrors the platform's simulation percentile
// summary (mean/median/percentile bands), computed over a team's
// games-won-per-run histogram instead of a lineup score distribution.
// This is a supplement beyond the core round-reach counts: useful for
// a UI that wants "typical outcome" language rather than raw
// probabilities.
type GamesWonDistribution struct {
	TeamID       string
	Samples      int
	Mean         float64
	Median       float64
	Percentile10 float64
	Percentile25 float64
	Percentile75 float64
	Percentile90 float64
}

// RoundReachDistribution computes the games-won percentile summary for
// every team present in the matrix's histogram.
func (c *CountMatrix) RoundReachDistribution() []GamesWonDistribution {
	ids := sortedKeys(c.GamesWonHistogram)
	out := make([]GamesWonDistribution, 0, len(ids))
	for _, teamID := range ids {
		out = append(out, c.teamDistribution(teamID))
	}
	return out
}

// TeamDistribution computes one team's games-won percentile summary.
func (c *CountMatrix) TeamDistribution(teamID string) GamesWonDistribution {
	return c.teamDistribution(teamID)
}

func (c *CountMatrix) teamDistribution(teamID string) GamesWonDistribution {
	hist := c.GamesWonHistogram[teamID]
	total := 0
	for _, n := range hist {
		total += n
	}
	dist := GamesWonDistribution{TeamID: teamID, Samples: total}
	if total == 0 {
		return dist
	}

	sorted := expandHistogram(hist)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	dist.Mean = float64(sum) / float64(total)
	dist.Median = percentile(sorted, 0.5)
	dist.Percentile10 = percentile(sorted, 0.10)
	dist.Percentile25 = percentile(sorted, 0.25)
	dist.Percentile75 = percentile(sorted, 0.75)
	dist.Percentile90 = percentile(sorted, 0.90)
	return dist
}

// expandHistogram materializes a histogram's samples in ascending
// order. Games-won values range 0-6, so this is bounded and cheap even
// for large run counts.
func expandHistogram(hist map[int]int) []int {
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]int, 0)
	for _, k := range keys {
		for i := 0; i < hist[k]; i++ {
			out = append(out, k)
		}
	}
	return out
}

// percentile linearly interpolates between the two nearest ranks of an
// already-sorted slice.
func percentile(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}
