package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"footy-tipping/internal/constants"
	"footy-tipping/internal/db"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/rounds"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *MatchRepository) Upsert(ctx context.Context, match *domain.Match) error {
	return r.queries.UpsertMatch(ctx, toUpsertMatchParams(match))
}

func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []domain.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(matches))

		for j := i; j < end; j++ {
			if err := qtx.UpsertMatch(ctx, toUpsertMatchParams(&matches[j])); err != nil {
				return fmt.Errorf("failed to upsert match %s: %w", matches[j].ID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	match := toDomainMatch(row)
	return &match, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, season int) ([]domain.Match, error) {
	rows, err := r.queries.ListMatchesBySeason(ctx, int64(season))
	if err != nil {
		return nil, err
	}
	return toDomainMatches(rows), nil
}

func (r *MatchRepository) ListByRound(ctx context.Context, season, round int) ([]domain.Match, error) {
	rows, err := r.queries.ListMatchesByRound(ctx, db.ListMatchesByRoundParams{
		Season: int64(season),
		Round:  int64(round),
	})
	if err != nil {
		return nil, err
	}
	return toDomainMatches(rows), nil
}

// Rounds returns the distinct rounds scheduled in a season, ascending.
func (r *MatchRepository) Rounds(ctx context.Context, season int) ([]int, error) {
	matches, err := r.ListBySeason(ctx, season)
	if err != nil {
		return nil, err
	}
	return rounds.Numbers(matches), nil
}

// RecordResult stores a winner and optional scores and marks the match complete.
func (r *MatchRepository) RecordResult(ctx context.Context, id, winner string, homeScore, awayScore *int) error {
	affected, err := r.queries.RecordMatchResult(ctx, db.RecordMatchResultParams{
		Winner:    winner,
		HomeScore: nullInt(homeScore),
		AwayScore: nullInt(awayScore),
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("match_id", id).Msg("failed to record result")
		return err
	}
	if affected == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}

	r.logger.Debug().Str("match_id", id).Str("winner", winner).Msg("result recorded")
	return nil
}

func toUpsertMatchParams(match *domain.Match) db.UpsertMatchParams {
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if match.CreatedAt.IsZero() {
		match.CreatedAt = now
	}
	match.UpdatedAt = now

	return db.UpsertMatchParams{
		ID:         match.ID,
		Season:     int64(match.Season),
		Round:      int64(match.Round),
		Venue:      match.Venue,
		StartsAt:   match.StartsAt.UTC(),
		HomeTeamID: match.HomeTeam.ID,
		AwayTeamID: match.AwayTeam.ID,
		HomeScore:  nullInt(match.HomeScore),
		AwayScore:  nullInt(match.AwayScore),
		Winner:     match.Winner,
		IsComplete: match.IsComplete,
		CreatedAt:  match.CreatedAt.UTC(),
		UpdatedAt:  match.UpdatedAt,
	}
}

func toDomainMatches(rows []db.MatchRow) []domain.Match {
	result := make([]domain.Match, len(rows))
	for i, row := range rows {
		result[i] = toDomainMatch(row)
	}
	return result
}

func toDomainMatch(row db.MatchRow) domain.Match {
	return domain.Match{
		ID:       row.ID,
		Season:   int(row.Season),
		Round:    int(row.Round),
		Venue:    row.Venue,
		StartsAt: row.StartsAt,
		HomeTeam: domain.Team{
			ID:           row.HomeTeamID,
			Name:         row.HomeName,
			Abbreviation: row.HomeAbbreviation,
		},
		AwayTeam: domain.Team{
			ID:           row.AwayTeamID,
			Name:         row.AwayName,
			Abbreviation: row.AwayAbbreviation,
		},
		HomeScore:  intPtr(row.HomeScore),
		AwayScore:  intPtr(row.AwayScore),
		Winner:     row.Winner,
		IsComplete: row.IsComplete,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

var matchNamespace = uuid.MustParse("0c7e4a52-93d1-4f0b-8a6e-2d5b9f1c3e74")

// FeedMatchID derives a stable match id from the fixture feed's game id.
func FeedMatchID(gameID int) string {
	return uuid.NewSHA1(matchNamespace, []byte(fmt.Sprintf("squiggle:%d", gameID))).String()
}

// SeedMatchID derives a stable match id from a seed file's match key. The
// season is part of the id so files for different seasons can reuse keys.
func SeedMatchID(season int, key string) string {
	return uuid.NewSHA1(matchNamespace, []byte(fmt.Sprintf("seed:%d:%s", season, key))).String()
}
