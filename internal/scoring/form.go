package scoring

import (
	"cmp"
	"slices"

	"footy-tipping/internal/domain"
)

const DefaultFormLimit = 5

type Location string

const (
	LocationHome Location = "home"
	LocationAway Location = "away"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

type FormEntry struct {
	MatchID  string
	Round    int
	Location Location
	Result   Result
}

func sameTeam(a, b domain.Team) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name == b.Name
}

// TeamForm returns the team's most recent results, newest first.
// Only matches with a recorded result are considered. limit <= 0 uses DefaultFormLimit.
func TeamForm(matches []domain.Match, team domain.Team, limit int) []FormEntry {
	if limit <= 0 {
		limit = DefaultFormLimit
	}

	var played []domain.Match
	for _, m := range uniqueMatches(matches) {
		if !m.HasWinner() {
			continue
		}
		if sameTeam(m.HomeTeam, team) || sameTeam(m.AwayTeam, team) {
			played = append(played, m)
		}
	}

	slices.SortStableFunc(played, func(a, b domain.Match) int {
		return cmp.Compare(b.StartsAt.UnixNano(), a.StartsAt.UnixNano())
	})
	if len(played) > limit {
		played = played[:limit]
	}

	form := make([]FormEntry, 0, len(played))
	for _, m := range played {
		entry := FormEntry{MatchID: m.ID, Round: m.Round, Location: LocationAway}
		self := m.AwayTeam
		if sameTeam(m.HomeTeam, team) {
			entry.Location = LocationHome
			self = m.HomeTeam
		}

		switch {
		case m.Winner == domain.WinnerDraw:
			entry.Result = ResultDraw
		case IsTeamWinner(m, self):
			entry.Result = ResultWin
		default:
			entry.Result = ResultLoss
		}
		form = append(form, entry)
	}
	return form
}
