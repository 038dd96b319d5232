package scoring

import "footy-tipping/internal/domain"

// IsTeamMatch reports whether value is the team's name or abbreviation.
// Comparison is exact; tips are stored as entered and never normalized.
func IsTeamMatch(team domain.Team, value string) bool {
	return team.Name == value || team.Abbreviation == value
}

// FindTippedTeam resolves a tip value against the two teams of a match.
// Home is checked first. The second return is false when the value names neither team.
func FindTippedTeam(tipValue string, home, away domain.Team) (domain.Team, bool) {
	if IsTeamMatch(home, tipValue) {
		return home, true
	}
	if IsTeamMatch(away, tipValue) {
		return away, true
	}
	return domain.Team{}, false
}

func TipAbbreviation(tipValue string, home, away domain.Team) (string, bool) {
	team, ok := FindTippedTeam(tipValue, home, away)
	if !ok {
		return "", false
	}
	return team.Abbreviation, true
}

// IsTeamWinner reports whether team won the match outright.
func IsTeamWinner(match domain.Match, team domain.Team) bool {
	if match.Winner == "" || match.Winner == domain.WinnerDraw {
		return false
	}
	return IsTeamMatch(team, match.Winner)
}
