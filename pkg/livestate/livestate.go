// Package livestate attaches real-world game data to a bracket ahead
// of a simulation batch: an in-progress score blends into
// the probability pipeline as a nudge, while a completed game's result
// can be locked in so every simulated run treats it as decided rather
// than re-rolling it.
package livestate

import (
	"fmt"

	"github.com/orangejack9christian/madness-engine/internal/enginelog"
	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/sirupsen/logrus"
)

// Snapshot maps a slot id to the live game state observed for it. A
// snapshot only needs to carry entries for games that have started;
// slots absent from the snapshot are left in whatever state the
// bracket already had.
type Snapshot map[string]*bracket.LiveGameState

// BlendResult is the outcome of folding a live-game snapshot into a
// bracket: the new bracket plus which slots the snapshot actually
// touched.
type BlendResult struct {
	Bracket          *bracket.Bracket
	ActiveSlotIDs    []string
	CompletedSlotIDs []string
}

// Blend returns a copy of b with each snapshot entry folded in.
//
// A snapshot entry naming an unknown slot, an unready slot, or team
// ids that don't match the slot's two participants has no effect: it
// is logged and skipped rather than aborting the whole batch, since a
// single stale or malformed live-feed row shouldn't take down every
// worker's simulation. A slot that already has a winner is left
// alone; a locked outcome can't be overridden by a live score.
//
// An entry whose Status is final resolves the slot immediately: the
// winner is the higher-scoring team, advanced into the next slot the
// same way LockResult does. Any other status just attaches the score
// as a live nudge for the probability pipeline to weigh.
func Blend(b *bracket.Bracket, snapshot Snapshot) (BlendResult, error) {
	out := b.Clone()
	log := enginelog.Get()
	var active, completed []string

	for slotID, game := range snapshot {
		slot, ok := out.Slot(slotID)
		if !ok {
			log.WithField("slot_id", slotID).Warn("livestate: snapshot references unknown slot, skipping")
			continue
		}
		if slot.WinnerID != "" {
			continue
		}
		if !slot.HasBothTeams() {
			log.WithField("slot_id", slotID).Warn("livestate: slot not ready for a live game yet, skipping")
			continue
		}
		if err := validateParticipants(slot, game); err != nil {
			log.WithFields(logrus.Fields{
				"slot_id": slotID,
				"game_id": game.GameID,
			}).Warn("livestate: " + err.Error() + ", skipping")
			continue
		}

		liveCopy := *game
		slot.LiveGame = &liveCopy

		if game.Status != bracket.StatusFinal {
			active = append(active, slotID)
			continue
		}

		winnerID := game.HomeTeamID
		if game.AwayScore > game.HomeScore {
			winnerID = game.AwayTeamID
		}
		if err := out.AdvanceWinner(slotID, winnerID); err != nil {
			log.WithFields(logrus.Fields{
				"slot_id": slotID,
				"game_id": game.GameID,
			}).Warn("livestate: could not advance final game's winner, skipping")
			continue
		}
		if resolved, ok := out.Slot(slotID); ok {
			resolved.LiveGame = nil
		}
		completed = append(completed, slotID)
	}

	return BlendResult{Bracket: out, ActiveSlotIDs: active, CompletedSlotIDs: completed}, nil
}

func validateParticipants(slot *bracket.Slot, game *bracket.LiveGameState) error {
	teams := map[string]bool{slot.Team1ID: true, slot.Team2ID: true}
	if !teams[game.HomeTeamID] || !teams[game.AwayTeamID] {
		return fmt.Errorf("game %s team ids do not match slot %s's participants", game.GameID, slot.SlotID)
	}
	if game.HomeTeamID == game.AwayTeamID {
		return fmt.Errorf("game %s has identical home and away team ids", game.GameID)
	}
	return nil
}

// LockResult returns a copy of b with slotID's outcome permanently
// decided for winnerID, advancing the winner into the next slot the
// same way the Monte Carlo propagator would (both share the wiring
// rule via bracket.AdvanceWinner). Once locked, every
// simulation run built from the returned bracket treats this game as
// already played instead of sampling it.
func LockResult(b *bracket.Bracket, slotID, winnerID string) (*bracket.Bracket, error) {
	out := b.Clone()
	if err := out.AdvanceWinner(slotID, winnerID); err != nil {
		return nil, err
	}
	if slot, ok := out.Slot(slotID); ok {
		slot.LiveGame = nil
	}
	return out, nil
}
