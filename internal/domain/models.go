package domain

import (
	"time"
)

// WinnerDraw is the result value recorded for a drawn match.
const WinnerDraw = "draw"

type Team struct {
	ID           string
	Name         string
	Abbreviation string
}

type Match struct {
	ID         string
	Season     int
	Round      int
	Venue      string
	StartsAt   time.Time
	HomeTeam   Team
	AwayTeam   Team
	HomeScore  *int
	AwayScore  *int
	Winner     string // "" until a result is recorded, "draw", or a team name/abbreviation
	IsComplete bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasWinner reports whether a result value is present on a completed match.
func (m Match) HasWinner() bool {
	return m.IsComplete && m.Winner != ""
}

// ValidWinner reports whether value is an acceptable result for this match:
// the draw sentinel or the name or abbreviation of one of the two teams.
func (m Match) ValidWinner(value string) bool {
	if value == WinnerDraw {
		return true
	}
	for _, t := range []Team{m.HomeTeam, m.AwayTeam} {
		if value != "" && (t.Name == value || t.Abbreviation == value) {
			return true
		}
	}
	return false
}

type Tip struct {
	ID         string // nanoid
	TipperID   string
	MatchID    string
	Round      int
	TeamTipped string // stored as entered, name or abbreviation
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Member struct {
	ID          string
	Name        string
	AvatarURL   string
	TotalPoints int
	CreatedAt   time.Time
}
