package db

import (
	"database/sql"
	"time"
)

type Team struct {
	ID           string
	Name         string
	Abbreviation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Member struct {
	ID        string
	Name      string
	AvatarUrl string
	CreatedAt time.Time
}

// MatchRow is a match joined with both of its teams.
type MatchRow struct {
	ID               string
	Season           int64
	Round            int64
	Venue            string
	StartsAt         time.Time
	HomeScore        sql.NullInt64
	AwayScore        sql.NullInt64
	Winner           string
	IsComplete       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	HomeTeamID       string
	HomeName         string
	HomeAbbreviation string
	AwayTeamID       string
	AwayName         string
	AwayAbbreviation string
}

type Tip struct {
	ID         string
	TipperID   string
	MatchID    string
	Round      int64
	TeamTipped string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
