package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertTip = `
INSERT INTO tips (id, tipper_id, match_id, round, team_tipped, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (tipper_id, match_id) DO UPDATE SET
    team_tipped = excluded.team_tipped,
    round = excluded.round,
    updated_at = excluded.updated_at
`

type UpsertTipParams struct {
	ID         string
	TipperID   string
	MatchID    string
	Round      int64
	TeamTipped string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) UpsertTip(ctx context.Context, arg UpsertTipParams) error {
	_, err := q.db.ExecContext(ctx, upsertTip,
		arg.ID,
		arg.TipperID,
		arg.MatchID,
		arg.Round,
		arg.TeamTipped,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const listTipsBySeason = `
SELECT t.id, t.tipper_id, t.match_id, t.round, t.team_tipped, t.created_at, t.updated_at
FROM tips t
JOIN matches m ON m.id = t.match_id
WHERE m.season = ?
ORDER BY t.updated_at, t.id
`

func (q *Queries) ListTipsBySeason(ctx context.Context, season int64) ([]Tip, error) {
	rows, err := q.db.QueryContext(ctx, listTipsBySeason, season)
	if err != nil {
		return nil, err
	}
	return collectTips(rows)
}

const listTipsByRound = `
SELECT t.id, t.tipper_id, t.match_id, t.round, t.team_tipped, t.created_at, t.updated_at
FROM tips t
JOIN matches m ON m.id = t.match_id
WHERE m.season = ? AND m.round = ?
ORDER BY t.updated_at, t.id
`

type ListTipsByRoundParams struct {
	Season int64
	Round  int64
}

func (q *Queries) ListTipsByRound(ctx context.Context, arg ListTipsByRoundParams) ([]Tip, error) {
	rows, err := q.db.QueryContext(ctx, listTipsByRound, arg.Season, arg.Round)
	if err != nil {
		return nil, err
	}
	return collectTips(rows)
}

func collectTips(rows *sql.Rows) ([]Tip, error) {
	defer rows.Close()
	var items []Tip
	for rows.Next() {
		var i Tip
		if err := rows.Scan(
			&i.ID,
			&i.TipperID,
			&i.MatchID,
			&i.Round,
			&i.TeamTipped,
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
