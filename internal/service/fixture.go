package service

import (
	"context"
	"fmt"

	"footy-tipping/internal/api"
	"footy-tipping/internal/constants"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// FeedSource is the part of the fixture feed the importer needs.
type FeedSource interface {
	GetTeams(ctx context.Context) ([]api.Team, error)
	GetGames(ctx context.Context, year int) ([]api.Game, error)
}

type FixtureService struct {
	feed      FeedSource
	teamRepo  *repository.TeamRepository
	matchRepo *repository.MatchRepository
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewFixtureService(feed *api.SquiggleClient, teamRepo *repository.TeamRepository, matchRepo *repository.MatchRepository, m *metrics.Metrics, logger zerolog.Logger) *FixtureService {
	return &FixtureService{feed: feed, teamRepo: teamRepo, matchRepo: matchRepo, metrics: m, logger: logger}
}

type ImportSummary struct {
	Teams   int
	Matches int
	Skipped int
}

// ImportSeason pulls the season's teams and games from the feed and stores
// them. Re-running it updates existing rows in place.
func (s *FixtureService) ImportSeason(ctx context.Context, season int) (*ImportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Int("season", season).Msg("importing fixtures")

	teams, games, err := s.fetchFeed(ctx, season)
	if err != nil {
		return nil, err
	}

	byFeedID := make(map[int]domain.Team, len(teams))
	domainTeams := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		team := domain.Team{
			ID:           repository.TeamID(t.Abbrev),
			Name:         t.Name,
			Abbreviation: t.Abbrev,
		}
		byFeedID[t.ID] = team
		domainTeams = append(domainTeams, team)
	}

	if err := s.teamRepo.UpsertBatch(ctx, domainTeams); err != nil {
		s.logger.Error().Err(err).Msg("failed to upsert teams")
		return nil, fmt.Errorf("failed to upsert teams: %w", err)
	}

	summary := &ImportSummary{Teams: len(domainTeams)}
	matches := make([]domain.Match, 0, len(games))
	for _, g := range games {
		match, ok := toMatch(g, season, byFeedID)
		if !ok {
			summary.Skipped++
			s.logger.Debug().Int("game_id", g.ID).Msg("skipping game without both teams")
			continue
		}
		matches = append(matches, match)
	}

	stored, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		s.logger.Error().Err(err).Int("season", season).Msg("failed to load stored matches")
		return nil, fmt.Errorf("failed to load stored matches: %w", err)
	}
	if kept := keepRecordedResults(matches, stored); kept > 0 {
		s.logger.Info().Int("kept", kept).Msg("feed has not caught up with recorded results")
	}

	if err := s.matchRepo.UpsertBatch(ctx, matches); err != nil {
		s.logger.Error().Err(err).Msg("failed to upsert matches")
		return nil, fmt.Errorf("failed to upsert matches: %w", err)
	}
	summary.Matches = len(matches)

	s.metrics.FixturesImported.WithLabelValues("team").Add(float64(summary.Teams))
	s.metrics.FixturesImported.WithLabelValues("match").Add(float64(summary.Matches))

	s.logger.Info().
		Int("season", season).
		Int("teams", summary.Teams).
		Int("matches", summary.Matches).
		Int("skipped", summary.Skipped).
		Msg("fixtures imported")
	return summary, nil
}

func (s *FixtureService) fetchFeed(ctx context.Context, season int) ([]api.Team, []api.Game, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var teams []api.Team
	var games []api.Game

	g.Go(func() error {
		var err error
		teams, err = s.feed.GetTeams(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		games, err = s.feed.GetGames(gCtx, season)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("season", season).Msg("failed to fetch fixture feed")
		return nil, nil, fmt.Errorf("failed to fetch fixture feed: %w", err)
	}
	return teams, games, nil
}

func toMatch(g api.Game, season int, teams map[int]domain.Team) (domain.Match, bool) {
	home, okHome := teams[g.HomeTeamID]
	away, okAway := teams[g.AwayTeamID]
	if !okHome || !okAway || home.ID == away.ID {
		return domain.Match{}, false
	}

	match := domain.Match{
		ID:       repository.FeedMatchID(g.ID),
		Season:   season,
		Round:    g.Round,
		Venue:    g.Venue,
		StartsAt: g.StartsAt(),
		HomeTeam: home,
		AwayTeam: away,
	}
	if g.Complete > 0 {
		match.HomeScore = g.HomeScore
		match.AwayScore = g.AwayScore
	}

	if g.IsComplete() {
		match.IsComplete = true
		switch {
		case g.IsDraw():
			match.Winner = domain.WinnerDraw
		case *g.WinnerTeamID == g.HomeTeamID:
			match.Winner = home.Name
		case *g.WinnerTeamID == g.AwayTeamID:
			match.Winner = away.Name
		default:
			match.IsComplete = false
		}
	}
	return match, true
}

// keepRecordedResults copies a stored final result onto an imported match the
// feed still reports as unfinished. It returns how many matches it touched.
func keepRecordedResults(imported, stored []domain.Match) int {
	byID := make(map[string]domain.Match, len(stored))
	for _, m := range stored {
		if m.IsComplete {
			byID[m.ID] = m
		}
	}

	kept := 0
	for i := range imported {
		m := &imported[i]
		if m.IsComplete {
			continue
		}
		prev, ok := byID[m.ID]
		if !ok {
			continue
		}
		m.IsComplete = true
		m.Winner = prev.Winner
		m.HomeScore = prev.HomeScore
		m.AwayScore = prev.AwayScore
		kept++
	}
	return kept
}
