package bracket

// AdvanceWinner records slotID's winner and, if the slot feeds
// forward, fills the matching team field on NextSlotID.
// Shared by the Monte Carlo propagator (pkg/propagate, a simulated
// winner) and the live-result locker (pkg/livestate, a real winner) so
// both push through the exact same wiring rules.
//
// Re-advancing a slot with the same winnerID it already has is a
// no-op success; advancing with a different winnerID than an existing
// decision is rejected, since a slot's outcome is write-once.
func (b *Bracket) AdvanceWinner(slotID, winnerID string) error {
	slot, ok := b.bySlotID[slotID]
	if !ok {
		return &UnknownSlotError{SlotID: slotID}
	}
	if !slot.HasBothTeams() {
		return &InvalidAdvancementError{SlotID: slotID, Reason: "slot does not yet have both teams assigned"}
	}
	if winnerID != slot.Team1ID && winnerID != slot.Team2ID {
		return &InvalidAdvancementError{SlotID: slotID, Reason: "winner " + winnerID + " is not one of this slot's two teams"}
	}
	if slot.WinnerID != "" {
		if slot.WinnerID == winnerID {
			return nil
		}
		return &InvalidAdvancementError{SlotID: slotID, Reason: "slot already decided for a different winner"}
	}

	slot.WinnerID = winnerID
	if slot.NextSlotID == "" {
		return nil
	}
	next, ok := b.bySlotID[slot.NextSlotID]
	if !ok {
		return &UnknownSlotError{SlotID: slot.NextSlotID}
	}
	if slot.FeederRank == 0 {
		next.Team1ID = winnerID
	} else {
		next.Team2ID = winnerID
	}
	return nil
}
