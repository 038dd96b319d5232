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

var teamNamespace = uuid.MustParse("6f1d0b5e-2a7c-4c1e-9d3b-5a0e8f4b7c21")

// TeamID derives a stable team id from its abbreviation so repeated imports
// land on the same row.
func TeamID(abbreviation string) string {
	return uuid.NewSHA1(teamNamespace, []byte("team:"+abbreviation)).String()
}

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *TeamRepository) Upsert(ctx context.Context, team *domain.Team) error {
	if team.ID == "" {
		team.ID = TeamID(team.Abbreviation)
	}
	now := time.Now().UTC()
	return r.queries.UpsertTeam(ctx, db.UpsertTeamParams{
		ID:           team.ID,
		Name:         team.Name,
		Abbreviation: team.Abbreviation,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (r *TeamRepository) UpsertBatch(ctx context.Context, teams []domain.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := range teams {
		if teams[i].ID == "" {
			teams[i].ID = TeamID(teams[i].Abbreviation)
		}
		err := qtx.UpsertTeam(ctx, db.UpsertTeamParams{
			ID:           teams[i].ID,
			Name:         teams[i].Name,
			Abbreviation: teams[i].Abbreviation,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert team %s: %w", teams[i].Abbreviation, err)
		}
	}

	return tx.Commit()
}

func (r *TeamRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.Team, error) {
	team, err := r.queries.GetTeamByAbbreviation(ctx, abbreviation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", abbreviation, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &domain.Team{ID: team.ID, Name: team.Name, Abbreviation: team.Abbreviation}, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Team, len(teams))
	for i, t := range teams {
		result[i] = domain.Team{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation}
	}
	return result, nil
}
