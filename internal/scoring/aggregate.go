package scoring

import (
	"cmp"
	"fmt"
	"slices"

	"footy-tipping/internal/domain"
)

type tipKey struct {
	tipperID string
	matchID  string
}

// indexTips keys tips by (tipper, match). A later tip for the same pair
// replaces an earlier one.
func indexTips(tips []domain.Tip) map[tipKey]domain.Tip {
	idx := make(map[tipKey]domain.Tip, len(tips))
	for _, t := range tips {
		idx[tipKey{tipperID: t.TipperID, matchID: t.MatchID}] = t
	}
	return idx
}

func uniqueMatches(matches []domain.Match) []domain.Match {
	seen := make(map[string]struct{}, len(matches))
	out := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

func countCorrect(memberID string, matches []domain.Match, idx map[tipKey]domain.Tip) int {
	correct := 0
	for _, m := range matches {
		tip, ok := idx[tipKey{tipperID: memberID, matchID: m.ID}]
		if ok && IsTipCorrect(tip, m) {
			correct++
		}
	}
	return correct
}

// CountCorrectTips counts the matches a member tipped correctly.
// Matches the member did not tip count as zero; tips on matches outside
// the given set are ignored.
func CountCorrectTips(memberID string, matches []domain.Match, tips []domain.Tip) int {
	return countCorrect(memberID, uniqueMatches(matches), indexTips(tips))
}

// ComputeRoundWinners returns the members with the highest correct-tip count
// for a round. The result is empty until every match has a result, and when
// the top score is zero. Ties all win. Winners are ordered by name, then ID.
func ComputeRoundWinners(members []domain.Member, matches []domain.Match, tips []domain.Tip) []domain.Member {
	matches = uniqueMatches(matches)
	if len(matches) == 0 {
		return nil
	}
	for _, m := range matches {
		if !m.IsComplete {
			return nil
		}
	}

	idx := indexTips(tips)
	scores := make([]int, len(members))
	highest := 0
	for i, member := range members {
		scores[i] = countCorrect(member.ID, matches, idx)
		highest = max(highest, scores[i])
	}
	if highest == 0 {
		return nil
	}

	var winners []domain.Member
	for i, member := range members {
		if scores[i] == highest {
			winners = append(winners, member)
		}
	}
	slices.SortStableFunc(winners, func(a, b domain.Member) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return winners
}

// RoundScore is one member's tally for one round.
type RoundScore struct {
	Correct int
	Decided int // matches in the round with a recorded result
}

func (s RoundScore) String() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Decided)
}

// ScoreTable maps member ID -> round -> score. A missing cell means nothing
// has been recorded yet, which is different from a recorded zero.
type ScoreTable map[string]map[int]RoundScore

func (t ScoreTable) Lookup(memberID string, round int) (RoundScore, bool) {
	rounds, ok := t[memberID]
	if !ok {
		return RoundScore{}, false
	}
	score, ok := rounds[round]
	return score, ok
}

// Cell renders a table cell, "-" when there is no score yet.
func (t ScoreTable) Cell(memberID string, round int) string {
	score, ok := t.Lookup(memberID, round)
	if !ok {
		return "-"
	}
	return score.String()
}

// PerRoundScoreTable tallies every member's correct tips per round.
// A cell is left out when the member has no tip on any of the round's
// decided matches. Tips on matches still to be played do not make a cell.
func PerRoundScoreTable(members []domain.Member, roundsToMatches map[int][]domain.Match, tips []domain.Tip) ScoreTable {
	idx := indexTips(tips)
	table := make(ScoreTable, len(members))

	for round, roundMatches := range roundsToMatches {
		roundMatches = uniqueMatches(roundMatches)

		var decided []domain.Match
		for _, m := range roundMatches {
			if m.HasWinner() {
				decided = append(decided, m)
			}
		}
		if len(decided) == 0 {
			continue
		}

		for _, member := range members {
			if !tippedAny(member.ID, decided, idx) {
				continue
			}
			if table[member.ID] == nil {
				table[member.ID] = make(map[int]RoundScore)
			}
			table[member.ID][round] = RoundScore{
				Correct: countCorrect(member.ID, roundMatches, idx),
				Decided: len(decided),
			}
		}
	}

	return table
}

func tippedAny(memberID string, matches []domain.Match, idx map[tipKey]domain.Tip) bool {
	for _, m := range matches {
		if _, ok := idx[tipKey{tipperID: memberID, matchID: m.ID}]; ok {
			return true
		}
	}
	return false
}

// MemberTippedRound reports whether the member has a tip on every match of the round.
func MemberTippedRound(memberID string, roundMatches []domain.Match, tips []domain.Tip) bool {
	return memberTippedAll(memberID, uniqueMatches(roundMatches), indexTips(tips))
}

func memberTippedAll(memberID string, matches []domain.Match, idx map[tipKey]domain.Tip) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if _, ok := idx[tipKey{tipperID: memberID, matchID: m.ID}]; !ok {
			return false
		}
	}
	return true
}

// RoundTipsComplete reports whether every member has tipped every match of the round.
func RoundTipsComplete(members []domain.Member, roundMatches []domain.Match, tips []domain.Tip) bool {
	roundMatches = uniqueMatches(roundMatches)
	if len(roundMatches) == 0 {
		return false
	}
	idx := indexTips(tips)
	for _, member := range members {
		if !memberTippedAll(member.ID, roundMatches, idx) {
			return false
		}
	}
	return true
}
