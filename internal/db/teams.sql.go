package db

import (
	"context"
	"time"
)

const upsertTeam = `
INSERT INTO teams (id, name, abbreviation, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    abbreviation = excluded.abbreviation,
    updated_at = excluded.updated_at
`

type UpsertTeamParams struct {
	ID           string
	Name         string
	Abbreviation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) UpsertTeam(ctx context.Context, arg UpsertTeamParams) error {
	_, err := q.db.ExecContext(ctx, upsertTeam,
		arg.ID,
		arg.Name,
		arg.Abbreviation,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getTeamByAbbreviation = `
SELECT id, name, abbreviation, created_at, updated_at
FROM teams
WHERE abbreviation = ?
`

func (q *Queries) GetTeamByAbbreviation(ctx context.Context, abbreviation string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByAbbreviation, abbreviation)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Abbreviation,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTeams = `
SELECT id, name, abbreviation, created_at, updated_at
FROM teams
ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Abbreviation,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
