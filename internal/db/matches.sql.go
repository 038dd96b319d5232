package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertMatch = `
INSERT INTO matches (
    id, season, round, venue, starts_at, home_team_id, away_team_id,
    home_score, away_score, winner, is_complete, created_at, updated_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    season = excluded.season,
    round = excluded.round,
    venue = excluded.venue,
    starts_at = excluded.starts_at,
    home_team_id = excluded.home_team_id,
    away_team_id = excluded.away_team_id,
    home_score = excluded.home_score,
    away_score = excluded.away_score,
    winner = excluded.winner,
    is_complete = excluded.is_complete,
    updated_at = excluded.updated_at
`

type UpsertMatchParams struct {
	ID         string
	Season     int64
	Round      int64
	Venue      string
	StartsAt   time.Time
	HomeTeamID string
	AwayTeamID string
	HomeScore  sql.NullInt64
	AwayScore  sql.NullInt64
	Winner     string
	IsComplete bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) UpsertMatch(ctx context.Context, arg UpsertMatchParams) error {
	_, err := q.db.ExecContext(ctx, upsertMatch,
		arg.ID,
		arg.Season,
		arg.Round,
		arg.Venue,
		arg.StartsAt,
		arg.HomeTeamID,
		arg.AwayTeamID,
		arg.HomeScore,
		arg.AwayScore,
		arg.Winner,
		arg.IsComplete,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const recordMatchResult = `
UPDATE matches
SET winner = ?, home_score = ?, away_score = ?, is_complete = TRUE, updated_at = ?
WHERE id = ?
`

type RecordMatchResultParams struct {
	Winner    string
	HomeScore sql.NullInt64
	AwayScore sql.NullInt64
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) RecordMatchResult(ctx context.Context, arg RecordMatchResultParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, recordMatchResult,
		arg.Winner,
		arg.HomeScore,
		arg.AwayScore,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const selectMatchRow = `
SELECT m.id, m.season, m.round, m.venue, m.starts_at, m.home_score, m.away_score,
       m.winner, m.is_complete, m.created_at, m.updated_at,
       h.id, h.name, h.abbreviation,
       a.id, a.name, a.abbreviation
FROM matches m
JOIN teams h ON h.id = m.home_team_id
JOIN teams a ON a.id = m.away_team_id
`

const getMatch = selectMatchRow + `WHERE m.id = ?`

func (q *Queries) GetMatch(ctx context.Context, id string) (MatchRow, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	return scanMatchRow(row)
}

const listMatchesBySeason = selectMatchRow + `
WHERE m.season = ?
ORDER BY m.round, m.starts_at, m.id
`

func (q *Queries) ListMatchesBySeason(ctx context.Context, season int64) ([]MatchRow, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesBySeason, season)
	if err != nil {
		return nil, err
	}
	return collectMatchRows(rows)
}

const listMatchesByRound = selectMatchRow + `
WHERE m.season = ? AND m.round = ?
ORDER BY m.starts_at, m.id
`

type ListMatchesByRoundParams struct {
	Season int64
	Round  int64
}

func (q *Queries) ListMatchesByRound(ctx context.Context, arg ListMatchesByRoundParams) ([]MatchRow, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesByRound, arg.Season, arg.Round)
	if err != nil {
		return nil, err
	}
	return collectMatchRows(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatchRow(row rowScanner) (MatchRow, error) {
	var i MatchRow
	err := row.Scan(
		&i.ID,
		&i.Season,
		&i.Round,
		&i.Venue,
		&i.StartsAt,
		&i.HomeScore,
		&i.AwayScore,
		&i.Winner,
		&i.IsComplete,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.HomeTeamID,
		&i.HomeName,
		&i.HomeAbbreviation,
		&i.AwayTeamID,
		&i.AwayName,
		&i.AwayAbbreviation,
	)
	return i, err
}

func collectMatchRows(rows *sql.Rows) ([]MatchRow, error) {
	defer rows.Close()
	var items []MatchRow
	for rows.Next() {
		i, err := scanMatchRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
