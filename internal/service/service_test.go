package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"footy-tipping/internal/database"
	"footy-tipping/internal/db"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2025, time.March, 20, 8, 40, 0, 0, time.UTC)

type fixture struct {
	teams   *repository.TeamRepository
	members *repository.MemberRepository
	matches *repository.MatchRepository
	tips    *repository.TipRepository
	metrics *metrics.Metrics

	adl, haw, gee, syd domain.Team
	amy, ben           domain.Member
}

// newFixture seeds a season with two rounds of two matches each.
// Round 1 is finished, round 2 starts a week after kickoff.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "tipping.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	log := zerolog.Nop()
	f := &fixture{
		teams:   repository.NewTeamRepository(sqlDB, queries, log),
		members: repository.NewMemberRepository(sqlDB, queries, log),
		matches: repository.NewMatchRepository(sqlDB, queries, log),
		tips:    repository.NewTipRepository(sqlDB, queries, log),
		metrics: metrics.Nop(),
		adl:     domain.Team{Name: "Adelaide Crows", Abbreviation: "ADL"},
		haw:     domain.Team{Name: "Hawthorn Hawks", Abbreviation: "HAW"},
		gee:     domain.Team{Name: "Geelong Cats", Abbreviation: "GEE"},
		syd:     domain.Team{Name: "Sydney Swans", Abbreviation: "SYD"},
		amy:     domain.Member{Name: "Amy"},
		ben:     domain.Member{Name: "Ben"},
	}

	teams := []domain.Team{f.adl, f.haw, f.gee, f.syd}
	require.NoError(t, f.teams.UpsertBatch(ctx, teams))
	f.adl, f.haw, f.gee, f.syd = teams[0], teams[1], teams[2], teams[3]

	require.NoError(t, f.members.Upsert(ctx, &f.amy))
	require.NoError(t, f.members.Upsert(ctx, &f.ben))

	require.NoError(t, f.matches.UpsertBatch(ctx, []domain.Match{
		{ID: "r1m1", Season: 2025, Round: 1, StartsAt: kickoff, HomeTeam: f.adl, AwayTeam: f.haw, Winner: "ADL", IsComplete: true},
		{ID: "r1m2", Season: 2025, Round: 1, StartsAt: kickoff.Add(3 * time.Hour), HomeTeam: f.gee, AwayTeam: f.syd, Winner: "Sydney Swans", IsComplete: true},
		{ID: "r2m1", Season: 2025, Round: 2, StartsAt: kickoff.AddDate(0, 0, 7), HomeTeam: f.haw, AwayTeam: f.gee},
		{ID: "r2m2", Season: 2025, Round: 2, StartsAt: kickoff.AddDate(0, 0, 8), HomeTeam: f.syd, AwayTeam: f.adl},
	}))

	require.NoError(t, f.tips.UpsertBatch(ctx, []domain.Tip{
		{TipperID: f.amy.ID, MatchID: "r1m1", Round: 1, TeamTipped: "Adelaide Crows"},
		{TipperID: f.amy.ID, MatchID: "r1m2", Round: 1, TeamTipped: "SYD"},
		{TipperID: f.ben.ID, MatchID: "r1m1", Round: 1, TeamTipped: "HAW"},
		{TipperID: f.ben.ID, MatchID: "r1m2", Round: 1, TeamTipped: "SYD"},
	}))

	return f
}

func at(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
