package scoring

import (
	"slices"

	"footy-tipping/internal/domain"
)

// Standing is a leaderboard row with points re-derived from tips.
type Standing struct {
	Member       domain.Member
	Rank         int
	Correct      int
	Tipped       int
	Decided      int
	SuccessRate  float64 // percent of decided tips that were correct
	RoundsPlayed int
}

// BuildLeaderboard derives each member's season total from their tips and
// ranks the result with the same rules as RankMembers.
func BuildLeaderboard(members []domain.Member, matches []domain.Match, tips []domain.Tip) []Standing {
	matches = uniqueMatches(matches)
	idx := indexTips(tips)

	standings := make([]Standing, 0, len(members))
	for _, member := range members {
		s := Standing{Member: member}
		rounds := make(map[int]struct{})

		for _, m := range matches {
			tip, ok := idx[tipKey{tipperID: member.ID, matchID: m.ID}]
			if !ok {
				continue
			}
			s.Tipped++
			rounds[m.Round] = struct{}{}

			switch Evaluate(tip, m) {
			case OutcomeCorrect:
				s.Correct++
				s.Decided++
			case OutcomeIncorrect:
				s.Decided++
			}
		}

		if s.Decided > 0 {
			s.SuccessRate = float64(s.Correct) / float64(s.Decided) * 100
		}
		s.RoundsPlayed = len(rounds)
		s.Member.TotalPoints = s.Correct
		standings = append(standings, s)
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		return byPointsThenName(a.Member, b.Member)
	})
	ranks := competitionRanks(standings, func(s Standing) int { return s.Member.TotalPoints })
	for i := range standings {
		standings[i].Rank = ranks[i]
	}

	return standings
}

type SeasonStats struct {
	TotalGames       int
	CompletedGames   int
	UpcomingGames    int
	TotalCorrectTips int
}

func SummarizeSeason(matches []domain.Match, standings []Standing) SeasonStats {
	var stats SeasonStats
	for _, m := range uniqueMatches(matches) {
		stats.TotalGames++
		if m.IsComplete {
			stats.CompletedGames++
		}
	}
	stats.UpcomingGames = stats.TotalGames - stats.CompletedGames

	for _, s := range standings {
		stats.TotalCorrectTips += s.Member.TotalPoints
	}
	return stats
}
