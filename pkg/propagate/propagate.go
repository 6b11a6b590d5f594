// Package propagate is the hot-path Monte Carlo propagator: given one
// seeded RNG stream, one cloned bracket, and one mode, it plays every
// game in round order and returns which round each team reached.
package propagate

import (
	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/mode"
	"github.com/orangejack9christian/madness-engine/pkg/probability"
	"github.com/orangejack9christian/madness-engine/pkg/rng"
	"github.com/sirupsen/logrus"
)

// TeamIndex is the by-id team lookup a run needs; the propagator never
// mutates it.
type TeamIndex map[string]bracket.Team

// RunOutcome is one Monte Carlo run's result: the furthest round each
// team that actually played reached, and the champion's team id (empty
// if the bracket's championship slot never resolved, which should not
// happen for a validly constructed bracket).
type RunOutcome struct {
	FurthestRound map[string]bracket.Round
	GamesWon      map[string]int
	Champion      string
}

// Options bundles the run-invariant inputs a single propagation needs
// beyond the bracket and RNG: the mode driving weights/variance/adjust
// and the run's optional per-run mode state.
type Options struct {
	Mode          mode.Mode
	ModeState     interface{}
	LiveGamma     float64
	CorrelationID string
	Log           *logrus.Logger
}

// Run simulates every game in b, in ascending round order, mutating b
// in place — callers must pass a bracket already owned exclusively by
// this run (see bracket.Bracket.Clone). It returns the per-team
// furthest-round-reached map and the champion.
//
// A slot whose team reference isn't present in teams is skipped: the
// game is logged as a warning and neither team accrues that round's
// reach, no winner advances, and the next slot that depends on it
// stays unfilled. One bad team record shouldn't crash an entire Monte
// Carlo batch, but it also shouldn't be silently resolved as a real
// result.
func Run(b *bracket.Bracket, teams TeamIndex, source rng.Source, opts Options) RunOutcome {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	gamesPlayed := make(map[string]int)
	gamesWon := make(map[string]int)
	furthest := make(map[string]bracket.Round)

	weights := opts.Mode.Weights()
	variance := opts.Mode.VarianceConfig()

	for _, round := range bracket.Rounds {
		for _, slot := range b.SlotsInRound(round) {
			if !slot.IsReady() {
				if slot.WinnerID != "" {
					recordReached(furthest, slot.Team1ID, slot.Round)
					recordReached(furthest, slot.Team2ID, slot.Round)
				}
				continue
			}

			team1, ok1 := teams[slot.Team1ID]
			team2, ok2 := teams[slot.Team2ID]

			if !ok1 || !ok2 {
				missing := slot.Team1ID
				if ok1 {
					missing = slot.Team2ID
				}
				log.WithFields(logrus.Fields{
					"correlation_id": opts.CorrelationID,
					"slot_id":        slot.SlotID,
					"missing_team":   missing,
				}).Warn("propagate: unknown team reference, skipping game")
				continue
			}

			ctx := probability.SimulationContext{
				Round:              slot.Round,
				Region:             slot.Region,
				TournamentType:     team1.TournamentType,
				GamesPlayedByTeam1: gamesPlayed[slot.Team1ID],
				GamesPlayedByTeam2: gamesPlayed[slot.Team2ID],
				ModeState:          opts.ModeState,
			}
			adjust := func(base float64) float64 {
				return opts.Mode.Adjust(base, team1, team2, ctx)
			}
			team1Wins := probability.Pipeline(
				weights, team1.Metrics, team2.Metrics,
				team1.Seed, team2.Seed,
				variance.SeedGapSensitivity,
				adjust,
				slot.LiveGame, slot.Team1ID, opts.LiveGamma,
				variance, slot.Round, source,
			)

			winnerID := slot.Team1ID
			loserID := slot.Team2ID
			if !team1Wins {
				winnerID, loserID = loserID, winnerID
			}

			gamesPlayed[slot.Team1ID]++
			gamesPlayed[slot.Team2ID]++
			recordReached(furthest, slot.Team1ID, slot.Round)
			recordReached(furthest, slot.Team2ID, slot.Round)

			if err := b.AdvanceWinner(slot.SlotID, winnerID); err != nil {
				log.WithFields(logrus.Fields{
					"correlation_id": opts.CorrelationID,
					"slot_id":        slot.SlotID,
					"error":          err.Error(),
				}).Error("propagate: failed to advance winner")
				continue
			}
			gamesWon[winnerID]++

			if winnerT, ok := teams[winnerID]; ok {
				if loserT, ok2 := teams[loserID]; ok2 {
					opts.Mode.OnGameComplete(winnerT, loserT, slot.Round, opts.ModeState)
				}
			}
		}
	}

	championSlot, ok := b.Slot("championship")
	champion := ""
	if ok && championSlot.WinnerID != "" {
		champion = championSlot.WinnerID
	}

	return RunOutcome{FurthestRound: furthest, GamesWon: gamesWon, Champion: champion}
}

func recordReached(furthest map[string]bracket.Round, teamID string, round bracket.Round) {
	if teamID == "" {
		return
	}
	if current, ok := furthest[teamID]; !ok || round > current {
		furthest[teamID] = round
	}
}
