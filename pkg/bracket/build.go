package bracket

import "fmt"

// r64Matchups is the fixed, deterministic round-of-64 seed pairing
// within a region. Index order fixes game numbers 1-8.
var r64Matchups = [8][2]int{
	{1, 16},
	{8, 9},
	{5, 12},
	{4, 13},
	{6, 11},
	{3, 14},
	{7, 10},
	{2, 15},
}

// BuildFromTeams constructs the canonical 63-slot bracket graph from
// a 64-team roster: 4 regions of 16 seeds each. Round-of-64
// matchups follow the fixed seed pairing; winners advance through
// round-of-32, sweet sixteen, and elite eight within their region;
// the two elite-eight winners of East/West meet in Final Four game 1,
// South/Midwest meet in game 2, and both feed the championship.
func BuildFromTeams(teams []Team) (*Bracket, error) {
	byRegion := make(map[Region]map[int]Team, 4)
	for _, t := range teams {
		if t.Seed < 1 || t.Seed > 16 {
			return nil, &InvalidBracketError{Reason: fmt.Sprintf("team %q has out-of-range seed %d", t.ID, t.Seed)}
		}
		if byRegion[t.Region] == nil {
			byRegion[t.Region] = make(map[int]Team, 16)
		}
		if existing, dup := byRegion[t.Region][t.Seed]; dup {
			return nil, &InvalidBracketError{Reason: fmt.Sprintf("region %q has duplicate seed %d (teams %q and %q)", t.Region, t.Seed, existing.ID, t.ID)}
		}
		byRegion[t.Region][t.Seed] = t
	}
	if len(byRegion) != 4 {
		return nil, &InvalidBracketError{Reason: fmt.Sprintf("expected exactly 4 regions, got %d", len(byRegion))}
	}
	for _, r := range Regions {
		seeds, ok := byRegion[r]
		if !ok {
			return nil, &InvalidBracketError{Reason: fmt.Sprintf("missing region %q", r)}
		}
		if len(seeds) != 16 {
			return nil, &InvalidBracketError{Reason: fmt.Sprintf("region %q has %d seeds, expected 16", r, len(seeds))}
		}
	}

	allSlots := make([]*Slot, 0, 63)
	elite8ByRegion := make(map[Region]*Slot, 4)

	for _, region := range Regions {
		seeds := byRegion[region]

		r64 := make([]*Slot, 8)
		for g, pair := range r64Matchups {
			low, high := seeds[pair[0]], seeds[pair[1]]
			r64[g] = &Slot{
				SlotID:     fmt.Sprintf("%s-r64-g%d", region, g+1),
				Round:      RoundOf64,
				Region:     region,
				GameNumber: g + 1,
				Team1ID:    low.ID,
				Team2ID:    high.ID,
			}
		}

		r32 := make([]*Slot, 4)
		for k := 0; k < 4; k++ {
			s := &Slot{SlotID: fmt.Sprintf("%s-r32-g%d", region, k+1), Round: RoundOf32, Region: region, GameNumber: k + 1}
			r32[k] = s
			wireFeeder(r64[2*k], s, 0)
			wireFeeder(r64[2*k+1], s, 1)
		}

		s16 := make([]*Slot, 2)
		for j := 0; j < 2; j++ {
			s := &Slot{SlotID: fmt.Sprintf("%s-s16-g%d", region, j+1), Round: SweetSixteen, Region: region, GameNumber: j + 1}
			s16[j] = s
			wireFeeder(r32[2*j], s, 0)
			wireFeeder(r32[2*j+1], s, 1)
		}

		e8 := &Slot{SlotID: fmt.Sprintf("%s-e8-g1", region), Round: EliteEight, Region: region, GameNumber: 1}
		wireFeeder(s16[0], e8, 0)
		wireFeeder(s16[1], e8, 1)
		elite8ByRegion[region] = e8

		allSlots = append(allSlots, r64...)
		allSlots = append(allSlots, r32...)
		allSlots = append(allSlots, s16...)
		allSlots = append(allSlots, e8)
	}

	ff1 := &Slot{SlotID: "ff-g1", Round: FinalFour, Region: FinalFourR, GameNumber: 1}
	ff2 := &Slot{SlotID: "ff-g2", Round: FinalFour, Region: FinalFourR, GameNumber: 2}
	wireFeeder(elite8ByRegion[East], ff1, 0)
	wireFeeder(elite8ByRegion[West], ff1, 1)
	wireFeeder(elite8ByRegion[South], ff2, 0)
	wireFeeder(elite8ByRegion[Midwest], ff2, 1)

	champ := &Slot{SlotID: "championship", Round: Championship, Region: FinalFourR, GameNumber: 1}
	wireFeeder(ff1, champ, 0)
	wireFeeder(ff2, champ, 1)

	allSlots = append(allSlots, ff1, ff2, champ)

	return New(allSlots)
}

// wireFeeder points feeder's advancement at target, recording which of
// target's two team slots feeder's winner fills.
func wireFeeder(feeder, target *Slot, rank int) {
	feeder.NextSlotID = target.SlotID
	feeder.FeederRank = rank
}
