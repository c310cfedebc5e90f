// Package tally implements single-winner instant-runoff counting. It is a pure
// computation: no I/O, no shared state, and identical input always produces
// identical output.
package tally

import "sort"

type Option struct {
	ID       uint
	Text     string
	Position int
}

type Ranking struct {
	OptionID uint
	Rank     int
}

type Ballot struct {
	ID       uint
	Rankings []Ranking
}

// Counted is one option's line in the elimination trace. Votes is the count the
// option held in the round it was eliminated, or its final-round count if it
// survived to the end.
type Counted struct {
	OptionID          uint
	OptionText        string
	Votes             int
	RoundNumber       int
	EliminatedInRound *int
	Position          int
}

// Trace is the full round-by-round outcome of one tally.
type Trace struct {
	TotalBallots    int
	TotalRounds     int
	WinnerOptionID  *uint
	IsDraw          bool
	TieBreakApplied bool
	PerOption       []Counted
}

// Tally runs instant-runoff elimination over the given options and ballots.
//
// Ballots are reduced to ordered preference lists first: rankings pointing at
// unknown options are dropped, the rest are sorted by rank (option id ascending
// as the stable secondary order when two rankings share a rank), and ballots
// left with no preferences are excluded entirely. TotalBallots counts only the
// ballots that survive this reduction.
//
// Each round every remaining ballot votes for its highest-ranked option still
// in the active set; ballots whose every preference has been eliminated are
// exhausted and sit the round out. An option holding a strict majority of the
// round's counted votes wins immediately. Otherwise the option with the fewest
// votes is eliminated; when several share the minimum, the one with the highest
// declared position goes. The one exception is a minimum shared by the entire
// active set: then the option with the lowest position is declared the winner
// outright. The two tie-break directions are deliberate and must not be
// unified.
func Tally(options []Option, ballots []Ballot) Trace {
	opts := make([]Option, len(options))
	copy(opts, options)
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Position < opts[j].Position
	})

	position := make(map[uint]int, len(opts))
	known := make(map[uint]bool, len(opts))
	for _, opt := range opts {
		position[opt.ID] = opt.Position
		known[opt.ID] = true
	}

	prefs := reduceBallots(ballots, known)

	if len(opts) == 0 {
		return Trace{TotalBallots: len(prefs)}
	}

	if len(prefs) == 0 {
		perOption := make([]Counted, len(opts))
		for i, opt := range opts {
			perOption[i] = Counted{
				OptionID:    opt.ID,
				OptionText:  opt.Text,
				RoundNumber: 1,
				Position:    opt.Position,
			}
		}

		return Trace{TotalRounds: 1, PerOption: perOption}
	}

	active := make([]uint, len(opts))
	for i, opt := range opts {
		active[i] = opt.ID
	}

	var (
		winnerID        *uint
		totalRounds     int
		tieBreakApplied bool
	)
	eliminatedIn := make(map[uint]int)
	lastVotes := make(map[uint]int)
	lastRoundCounts := make(map[uint]int)

	for len(active) > 1 {
		totalRounds++
		counts := countRound(prefs, active)
		lastRoundCounts = counts

		totalThisRound := 0
		for _, id := range active {
			totalThisRound += counts[id]
		}

		if id, ok := majority(active, counts, totalThisRound); ok {
			winnerID = &id
			break
		}

		minVotes := counts[active[0]]
		for _, id := range active[1:] {
			if counts[id] < minVotes {
				minVotes = counts[id]
			}
		}

		var lowest []uint
		for _, id := range active {
			if counts[id] == minVotes {
				lowest = append(lowest, id)
			}
		}

		if len(lowest) == len(active) {
			// The whole remaining field is tied; resolve the winner as the
			// lowest declared position and close out everyone else.
			if len(lowest) > 1 {
				tieBreakApplied = true
			}

			winner := pickByPosition(lowest, position, false)
			winnerID = &winner
			for _, id := range lowest {
				lastVotes[id] = counts[id]
				if id != winner {
					eliminatedIn[id] = totalRounds
				}
			}
			break
		}

		var eliminated uint
		if len(lowest) == 1 {
			eliminated = lowest[0]
		} else {
			tieBreakApplied = true
			eliminated = pickByPosition(lowest, position, true)
		}

		eliminatedIn[eliminated] = totalRounds
		lastVotes[eliminated] = counts[eliminated]
		active = remove(active, eliminated)
	}

	if winnerID == nil && len(active) == 1 {
		winnerID = &active[0]
	}

	if totalRounds == 0 {
		// Single option, no elimination loop: still report one round, with the
		// winner holding every counted ballot.
		totalRounds = 1
		lastRoundCounts = map[uint]int{*winnerID: len(prefs)}
	}

	if winnerID != nil {
		if _, ok := lastVotes[*winnerID]; !ok {
			lastVotes[*winnerID] = lastRoundCounts[*winnerID]
		}
	}

	perOption := make([]Counted, len(opts))
	for i, opt := range opts {
		votes, ok := lastVotes[opt.ID]
		if !ok {
			votes = lastRoundCounts[opt.ID]
		}

		counted := Counted{
			OptionID:    opt.ID,
			OptionText:  opt.Text,
			Votes:       votes,
			RoundNumber: totalRounds,
			Position:    opt.Position,
		}
		if round, ok := eliminatedIn[opt.ID]; ok && (winnerID == nil || opt.ID != *winnerID) {
			r := round
			counted.EliminatedInRound = &r
			counted.RoundNumber = r
		}

		perOption[i] = counted
	}

	return Trace{
		TotalBallots:    len(prefs),
		TotalRounds:     totalRounds,
		WinnerOptionID:  winnerID,
		TieBreakApplied: tieBreakApplied,
		PerOption:       perOption,
	}
}

// reduceBallots turns raw ballots into ordered preference lists, silently
// dropping rankings for unknown options and ballots with nothing left.
func reduceBallots(ballots []Ballot, known map[uint]bool) [][]uint {
	var prefs [][]uint
	for _, ballot := range ballots {
		var rankings []Ranking
		for _, r := range ballot.Rankings {
			if known[r.OptionID] {
				rankings = append(rankings, r)
			}
		}
		if len(rankings) == 0 {
			continue
		}

		sort.Slice(rankings, func(i, j int) bool {
			if rankings[i].Rank != rankings[j].Rank {
				return rankings[i].Rank < rankings[j].Rank
			}
			return rankings[i].OptionID < rankings[j].OptionID
		})

		ordered := make([]uint, len(rankings))
		for i, r := range rankings {
			ordered[i] = r.OptionID
		}
		prefs = append(prefs, ordered)
	}

	return prefs
}

// countRound gives each ballot's vote to its highest-ranked active option.
// Exhausted ballots contribute nothing.
func countRound(prefs [][]uint, active []uint) map[uint]int {
	isActive := make(map[uint]bool, len(active))
	for _, id := range active {
		isActive[id] = true
	}

	counts := make(map[uint]int, len(active))
	for _, id := range active {
		counts[id] = 0
	}

	for _, ordered := range prefs {
		for _, id := range ordered {
			if isActive[id] {
				counts[id]++
				break
			}
		}
	}

	return counts
}

func majority(active []uint, counts map[uint]int, total int) (uint, bool) {
	for _, id := range active {
		if 2*counts[id] > total {
			return id, true
		}
	}

	return 0, false
}

// pickByPosition returns the candidate with the highest declared position when
// highest is true, otherwise the lowest. Option id breaks exact position ties
// so the choice stays stable.
func pickByPosition(ids []uint, position map[uint]int, highest bool) uint {
	picked := ids[0]
	for _, id := range ids[1:] {
		pi, pp := position[id], position[picked]
		switch {
		case highest && (pi > pp || (pi == pp && id > picked)):
			picked = id
		case !highest && (pi < pp || (pi == pp && id < picked)):
			picked = id
		}
	}

	return picked
}

func remove(ids []uint, id uint) []uint {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}

	return out
}
