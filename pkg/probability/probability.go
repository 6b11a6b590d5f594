// Package probability implements the win-probability pipeline: a
// weighted logistic base probability over normalized metric
// differentials, a seed-gap blend, a live in-game-state blend, and a
// noisy Monte Carlo outcome sampler.
package probability

import (
	"math"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/orangejack9christian/madness-engine/pkg/rng"
)

// Weights maps a recognized metric key to a non-negative weight. The
// mode contract requires every registered mode's weights to be
// non-negative; this package trusts that contract rather than
// re-validating it on every call.
type Weights map[metrics.Key]float64

// SimulationContext is the read-only per-game context passed to a
// mode's probability adjuster. ModeState carries the same per-run
// opaque value a mode's OnGameComplete receives, so Adjust can read
// run-local state (a win streak, momentum counter, and so on) without
// ever storing it on the mode instance itself — Adjust stays a pure
// function of its arguments even when the mode is stateful.
type SimulationContext struct {
	Round              bracket.Round
	Region             bracket.Region
	TournamentType     bracket.TournamentType
	GamesPlayedByTeam1 int
	GamesPlayedByTeam2 int
	ModeState          interface{}
}

// Sigmoid is the standard logistic function.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Clamp restricts p to the engine's operating range [0.001, 0.999].
// Pipeline clamps after its last adjustment stage and SampleOutcome
// clamps again after upset compression, so the probability an outcome
// is sampled against never reaches exactly 0 or 1. The individual
// stages do not all clamp: ApplyLiveState returns exactly 0 or 1 for a
// final game.
func Clamp(p float64) float64 {
	if p < 0.001 {
		return 0.001
	}
	if p > 0.999 {
		return 0.999
	}
	return p
}

// BaseProbability computes team1's pre-game win probability against
// team2 under the given weights: a weighted logistic over each
// metric's normalized, sign-adjusted differential.
//
// Contract: identical metrics for both teams yields exactly 0.5, and
// BaseProbability(w, a, b) + BaseProbability(w, b, a) == 1 up to
// floating-point rounding, because swapping the teams negates every
// differential and Sigmoid(-x) == 1 - Sigmoid(x).
func BaseProbability(weights Weights, team1, team2 metrics.Metrics) float64 {
	logit := 0.0
	for key, weight := range weights {
		if weight == 0 {
			continue
		}
		logit += weight * metrics.SignedDiff(key, team1, team2)
	}
	return Sigmoid(logit * 0.25)
}

// ApplySeedGap blends p toward the seed-implied probability by a
// fraction controlled by sensitivity s. s == 0 or equal seeds is a
// no-op.
func ApplySeedGap(p float64, seed1, seed2 int, sensitivity float64) float64 {
	if sensitivity == 0 || seed1 == seed2 {
		return p
	}
	seedImplied := Sigmoid(float64(seed2-seed1) * 0.18)
	return p*(1-0.15*sensitivity) + seedImplied*(0.15*sensitivity)
}

// ApplyLiveState blends p with the in-game live probability implied by
// game, from team1's perspective (team1ID identifies which side of the
// live game corresponds to the team whose probability p represents).
// gamma controls how quickly the blend shifts weight onto the live
// signal as the game clock runs down. This function applies no default
// itself; engine.Simulate passes 0.7 when its LiveGamma is zero, and
// engineconfig's LIVE_STATE_GAMMA also defaults to 0.7.
func ApplyLiveState(p float64, game *bracket.LiveGameState, team1ID string, gamma float64) float64 {
	if game == nil || game.Status == bracket.StatusPreGame {
		return p
	}

	team1IsHome := game.HomeTeamID == team1ID

	if game.Status == bracket.StatusFinal {
		if game.HomeScore == game.AwayScore {
			return 0.5
		}
		team1Won := (team1IsHome && game.HomeScore > game.AwayScore) || (!team1IsHome && game.AwayScore > game.HomeScore)
		if team1Won {
			return 1.0
		}
		return 0.0
	}

	totalTime := 2400.0
	if game.Period > 2 {
		totalTime += 300.0 * float64(game.Period-2)
	}
	remaining := float64(game.TimeRemainingSec)
	if remaining < 0 {
		remaining = 0
	}
	elapsed := totalTime - remaining
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > totalTime {
		elapsed = totalTime
	}

	alpha := math.Pow(elapsed/totalTime, gamma)
	remainingPossessions := math.Max(1, (remaining/2400.0)*70.0)

	var scoreDiff float64
	if team1IsHome {
		scoreDiff = float64(game.HomeScore - game.AwayScore)
	} else {
		scoreDiff = float64(game.AwayScore - game.HomeScore)
	}

	liveProb := Phi(scoreDiff / (math.Sqrt(remainingPossessions) * 2.5))
	return alpha*liveProb + (1-alpha)*p
}

// Pipeline runs the full per-matchup probability computation: base
// probability, seed-gap adjustment, an optional mode-specific
// adjustment, an optional live-state blend, a defensive clamp, and
// finally a noisy Monte Carlo sample. adjust may be nil.
func Pipeline(
	weights Weights,
	team1, team2 metrics.Metrics,
	seed1, seed2 int,
	seedGapSensitivity float64,
	adjust func(baseProb float64) float64,
	liveGame *bracket.LiveGameState,
	team1ID string,
	liveGamma float64,
	variance VarianceConfig,
	round bracket.Round,
	source rng.Source,
) bool {
	p := BaseProbability(weights, team1, team2)
	p = ApplySeedGap(p, seed1, seed2, seedGapSensitivity)
	if adjust != nil {
		p = adjust(p)
	}
	if liveGame != nil && liveGame.Status != bracket.StatusPreGame {
		p = ApplyLiveState(p, liveGame, team1ID, liveGamma)
	}
	p = Clamp(p)
	return SampleOutcome(p, variance, round, source)
}
