package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"footy-tipping/internal/db"
	"footy-tipping/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type TipRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTipRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TipRepository {
	return &TipRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// UpsertBatch writes tips in one transaction. A tip for a (tipper, match)
// pair that already has one replaces the stored value.
func (r *TipRepository) UpsertBatch(ctx context.Context, tips []domain.Tip) error {
	if len(tips) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for _, tip := range tips {
		id := tip.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}

		err := qtx.UpsertTip(ctx, db.UpsertTipParams{
			ID:         id,
			TipperID:   tip.TipperID,
			MatchID:    tip.MatchID,
			Round:      int64(tip.Round),
			TeamTipped: tip.TeamTipped,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert tip %s/%s: %w", tip.TipperID, tip.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tips: %w", err)
	}

	r.logger.Debug().Int("count", len(tips)).Msg("tips upserted")
	return nil
}

func (r *TipRepository) ListBySeason(ctx context.Context, season int) ([]domain.Tip, error) {
	tips, err := r.queries.ListTipsBySeason(ctx, int64(season))
	if err != nil {
		return nil, err
	}
	return toDomainTips(tips), nil
}

func (r *TipRepository) ListByRound(ctx context.Context, season, round int) ([]domain.Tip, error) {
	tips, err := r.queries.ListTipsByRound(ctx, db.ListTipsByRoundParams{
		Season: int64(season),
		Round:  int64(round),
	})
	if err != nil {
		return nil, err
	}
	return toDomainTips(tips), nil
}

func toDomainTips(tips []db.Tip) []domain.Tip {
	result := make([]domain.Tip, len(tips))
	for i, t := range tips {
		result[i] = domain.Tip{
			ID:         t.ID,
			TipperID:   t.TipperID,
			MatchID:    t.MatchID,
			Round:      int(t.Round),
			TeamTipped: t.TeamTipped,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
		}
	}
	return result
}
