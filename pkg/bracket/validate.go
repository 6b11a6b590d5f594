package bracket

import (
	"fmt"

	lvgraph "github.com/katalvlaran/lvlath/graph/core"
	lvalgo "github.com/katalvlaran/lvlath/graph/algorithms"
)

// validate checks the bracket's structural invariants: no duplicate
// feeder ranks, every non-leaf slot fed by exactly two slots, and no
// cycles or orphaned slots. Cycle and reachability checking is done
// with a real graph traversal (github.com/katalvlaran/lvlath graph/core
// and graph/algorithms) rather than hand-rolled recursion: slots become
// vertices and nextSlotId links become directed edges. Exactly one slot
// (the root) may have no nextSlotId, so a second sink such as an
// orphan is rejected. DFS from every zero-in-degree (leaf) slot must
// reach the root, and the leaves must collectively reach every vertex
// — a leaf that misses the root feeds into a cycle, and anything left
// unvisited sits on a cycle no leaf can reach.
func validate(b *Bracket) error {
	g := lvgraph.NewGraph(true, false)
	for _, s := range b.slots {
		g.AddVertex(&lvgraph.Vertex{ID: s.SlotID})
	}

	inDegree := make(map[string]int, len(b.slots))
	feederRanks := make(map[string]map[int]bool, len(b.slots))

	for _, s := range b.slots {
		if s.NextSlotID == "" {
			continue
		}
		if _, ok := b.bySlotID[s.NextSlotID]; !ok {
			return &InvalidBracketError{Reason: fmt.Sprintf("slot %q has nextSlotId %q which does not exist", s.SlotID, s.NextSlotID)}
		}

		g.AddEdge(s.SlotID, s.NextSlotID, 1)
		inDegree[s.NextSlotID]++

		if feederRanks[s.NextSlotID] == nil {
			feederRanks[s.NextSlotID] = make(map[int]bool, 2)
		}
		if s.FeederRank != 0 && s.FeederRank != 1 {
			return &InvalidBracketError{Reason: fmt.Sprintf("slot %q has invalid feeder rank %d", s.SlotID, s.FeederRank)}
		}
		if feederRanks[s.NextSlotID][s.FeederRank] {
			return &InvalidBracketError{Reason: fmt.Sprintf("slot %q duplicates feeder rank %d into %q", s.SlotID, s.FeederRank, s.NextSlotID)}
		}
		feederRanks[s.NextSlotID][s.FeederRank] = true
	}

	for target, count := range inDegree {
		if count != 2 {
			return &InvalidBracketError{Reason: fmt.Sprintf("slot %q has %d feeders, expected exactly 2", target, count)}
		}
	}

	leaves := make([]string, 0)
	for _, s := range b.slots {
		if inDegree[s.SlotID] == 0 {
			leaves = append(leaves, s.SlotID)
		}
	}
	if len(leaves) == 0 && len(b.slots) > 0 {
		return &InvalidBracketError{Reason: "no leaf slots found: every slot is fed by another, which implies a cycle"}
	}

	roots := make([]string, 0, 1)
	for _, s := range b.slots {
		if s.NextSlotID == "" {
			roots = append(roots, s.SlotID)
		}
	}
	if len(b.slots) > 0 && len(roots) != 1 {
		return &InvalidBracketError{Reason: fmt.Sprintf("expected exactly one root slot without a nextSlotId, got %d", len(roots))}
	}

	visited := make(map[string]bool, len(b.slots))
	for _, leaf := range leaves {
		res, err := lvalgo.DFS(g, leaf, nil)
		if err != nil {
			return &InvalidBracketError{Reason: fmt.Sprintf("traversal from %q failed: %v", leaf, err)}
		}
		if _, reached := res.Visited[roots[0]]; !reached {
			return &InvalidBracketError{Reason: fmt.Sprintf("slot %q does not reach root slot %q (it feeds into a cycle)", leaf, roots[0])}
		}
		for id := range res.Visited {
			visited[id] = true
		}
	}

	for _, s := range b.slots {
		if !visited[s.SlotID] {
			return &InvalidBracketError{Reason: fmt.Sprintf("slot %q is unreachable from any leaf slot (orphan or on a cycle)", s.SlotID)}
		}
	}

	return nil
}
