package db

import (
	"context"
	"time"
)

const upsertMember = `
INSERT INTO members (id, name, avatar_url, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    avatar_url = excluded.avatar_url
`

type UpsertMemberParams struct {
	ID        string
	Name      string
	AvatarUrl string
	CreatedAt time.Time
}

func (q *Queries) UpsertMember(ctx context.Context, arg UpsertMemberParams) error {
	_, err := q.db.ExecContext(ctx, upsertMember,
		arg.ID,
		arg.Name,
		arg.AvatarUrl,
		arg.CreatedAt,
	)
	return err
}

const getMember = `
SELECT id, name, avatar_url, created_at
FROM members
WHERE id = ?
`

func (q *Queries) GetMember(ctx context.Context, id string) (Member, error) {
	row := q.db.QueryRowContext(ctx, getMember, id)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.AvatarUrl,
		&i.CreatedAt,
	)
	return i, err
}

const listMembers = `
SELECT id, name, avatar_url, created_at
FROM members
ORDER BY name, id
`

func (q *Queries) ListMembers(ctx context.Context) ([]Member, error) {
	rows, err := q.db.QueryContext(ctx, listMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Member
	for rows.Next() {
		var i Member
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.AvatarUrl,
			&i.CreatedAt,
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
