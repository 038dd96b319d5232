package scoring

import (
	"cmp"
	"slices"

	"footy-tipping/internal/domain"
)

type RankedMember struct {
	domain.Member
	Rank int
}

// byPointsThenName orders by points descending, then name and ID ascending
// so that tied members always come out in the same order.
func byPointsThenName(a, b domain.Member) int {
	if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// competitionRanks assigns standard competition ranks to an already sorted
// list: ties share a rank and the next rank is the 1-based position
// (points 10, 10, 8 rank 1, 1, 3).
func competitionRanks[T any](sorted []T, points func(T) int) []int {
	ranks := make([]int, len(sorted))
	for i := range sorted {
		if i > 0 && points(sorted[i]) == points(sorted[i-1]) {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}

// RankMembers sorts members by TotalPoints and assigns competition ranks.
// The input slice is not modified.
func RankMembers(members []domain.Member) []RankedMember {
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, byPointsThenName)

	ranks := competitionRanks(sorted, func(m domain.Member) int { return m.TotalPoints })

	out := make([]RankedMember, len(sorted))
	for i, m := range sorted {
		out[i] = RankedMember{Member: m, Rank: ranks[i]}
	}
	return out
}
