package service

import (
	"context"
	"errors"
	"testing"

	"footy-tipping/internal/api"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	teams []api.Team
	games []api.Game
	err   error
}

func (f *fakeFeed) GetTeams(context.Context) ([]api.Team, error) { return f.teams, f.err }

func (f *fakeFeed) GetGames(_ context.Context, year int) ([]api.Game, error) {
	return f.games, f.err
}

func intp(v int) *int { return &v }

func TestFixtureService_ImportSeason(t *testing.T) {
	f := newFixture(t)
	feed := &fakeFeed{
		teams: []api.Team{
			{ID: 1, Name: "Adelaide Crows", Abbrev: "ADL"},
			{ID: 9, Name: "Hawthorn Hawks", Abbrev: "HAW"},
			{ID: 5, Name: "Essendon Bombers", Abbrev: "ESS"},
		},
		games: []api.Game{
			{ID: 501, Round: 3, Venue: "Adelaide Oval", UnixTime: kickoff.AddDate(0, 0, 14).Unix(),
				HomeTeamID: 1, AwayTeamID: 9, HomeScore: intp(90), AwayScore: intp(70), WinnerTeamID: intp(9), Complete: 100},
			{ID: 502, Round: 3, UnixTime: kickoff.AddDate(0, 0, 15).Unix(),
				HomeTeamID: 5, AwayTeamID: 1, HomeScore: intp(60), AwayScore: intp(60), Complete: 100},
			{ID: 503, Round: 4, UnixTime: kickoff.AddDate(0, 0, 21).Unix(),
				HomeTeamID: 9, AwayTeamID: 5, Complete: 0},
			{ID: 504, Round: 26, HomeTeamID: 0, AwayTeamID: 0},
		},
	}
	svc := &FixtureService{feed: feed, teamRepo: f.teams, matchRepo: f.matches, metrics: f.metrics, logger: zerolog.Nop()}
	ctx := context.Background()

	summary, err := svc.ImportSeason(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Teams: 3, Matches: 3, Skipped: 1}, *summary)

	won, err := f.matches.Get(ctx, repository.FeedMatchID(501))
	require.NoError(t, err)
	assert.True(t, won.IsComplete)
	assert.Equal(t, "Hawthorn Hawks", won.Winner)
	assert.Equal(t, f.adl.ID, won.HomeTeam.ID)
	assert.Equal(t, 90, *won.HomeScore)

	drawn, err := f.matches.Get(ctx, repository.FeedMatchID(502))
	require.NoError(t, err)
	assert.Equal(t, domain.WinnerDraw, drawn.Winner)

	upcoming, err := f.matches.Get(ctx, repository.FeedMatchID(503))
	require.NoError(t, err)
	assert.False(t, upcoming.IsComplete)
	assert.Nil(t, upcoming.HomeScore)

	again, err := svc.ImportSeason(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Matches)

	all, err := f.matches.ListBySeason(ctx, 2025)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestFixtureService_ImportKeepsRecordedResult(t *testing.T) {
	f := newFixture(t)
	feed := &fakeFeed{
		teams: []api.Team{
			{ID: 1, Name: "Adelaide Crows", Abbrev: "ADL"},
			{ID: 9, Name: "Hawthorn Hawks", Abbrev: "HAW"},
		},
		games: []api.Game{
			{ID: 601, Round: 5, UnixTime: kickoff.AddDate(0, 0, 28).Unix(),
				HomeTeamID: 1, AwayTeamID: 9, HomeScore: intp(40), AwayScore: intp(35), Complete: 75},
		},
	}
	svc := &FixtureService{feed: feed, teamRepo: f.teams, matchRepo: f.matches, metrics: f.metrics, logger: zerolog.Nop()}
	results := NewResultService(f.matches, f.metrics, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.ImportSeason(ctx, 2025)
	require.NoError(t, err)

	id := repository.FeedMatchID(601)
	_, err = results.RecordResult(ctx, id, "ADL", intp(88), intp(61))
	require.NoError(t, err)

	_, err = svc.ImportSeason(ctx, 2025)
	require.NoError(t, err)

	match, err := f.matches.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, match.IsComplete)
	assert.Equal(t, "ADL", match.Winner)
	assert.Equal(t, 88, *match.HomeScore)
	assert.Equal(t, 61, *match.AwayScore)

	feed.games[0].HomeScore = intp(70)
	feed.games[0].AwayScore = intp(71)
	feed.games[0].WinnerTeamID = intp(9)
	feed.games[0].Complete = 100
	_, err = svc.ImportSeason(ctx, 2025)
	require.NoError(t, err)

	match, err = f.matches.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hawthorn Hawks", match.Winner, "a finished feed game replaces the recorded result")
}

func TestFixtureService_FeedError(t *testing.T) {
	f := newFixture(t)
	svc := &FixtureService{feed: &fakeFeed{err: errors.New("boom")}, teamRepo: f.teams, matchRepo: f.matches, metrics: f.metrics, logger: zerolog.Nop()}

	_, err := svc.ImportSeason(context.Background(), 2025)
	assert.Error(t, err)
}
