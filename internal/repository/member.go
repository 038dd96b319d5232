package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"footy-tipping/internal/db"
	"footy-tipping/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MemberRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMemberRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MemberRepository {
	return &MemberRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *MemberRepository) Upsert(ctx context.Context, member *domain.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	r.logger.Debug().Str("member_id", member.ID).Str("name", member.Name).Msg("upserting member")

	return r.queries.UpsertMember(ctx, db.UpsertMemberParams{
		ID:        member.ID,
		Name:      member.Name,
		AvatarUrl: member.AvatarURL,
		CreatedAt: member.CreatedAt,
	})
}

func (r *MemberRepository) Get(ctx context.Context, id string) (*domain.Member, error) {
	m, err := r.queries.GetMember(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	member := toDomainMember(m)
	return &member, nil
}

// List returns every member ordered by name. TotalPoints is left at zero;
// points are derived from tips by the scoring package.
func (r *MemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	members, err := r.queries.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Member, len(members))
	for i, m := range members {
		result[i] = toDomainMember(m)
	}
	return result, nil
}

func toDomainMember(m db.Member) domain.Member {
	return domain.Member{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarUrl,
		CreatedAt: m.CreatedAt,
	}
}
