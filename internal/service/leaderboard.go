package service

import (
	"context"
	"fmt"

	"footy-tipping/internal/constants"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/rounds"
	"footy-tipping/internal/scoring"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type LeaderboardService struct {
	matchRepo  *repository.MatchRepository
	tipRepo    *repository.TipRepository
	memberRepo *repository.MemberRepository
	logger     zerolog.Logger
}

func NewLeaderboardService(matchRepo *repository.MatchRepository, tipRepo *repository.TipRepository, memberRepo *repository.MemberRepository, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{matchRepo: matchRepo, tipRepo: tipRepo, memberRepo: memberRepo, logger: logger}
}

// RoundScores is the per-round breakdown for a season.
type RoundScores struct {
	Rounds  []int
	Members []domain.Member
	Table   scoring.ScoreTable
}

type seasonData struct {
	matches []domain.Match
	tips    []domain.Tip
	members []domain.Member
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, season int) ([]scoring.Standing, error) {
	data, err := s.loadSeason(ctx, season)
	if err != nil {
		return nil, err
	}

	standings := scoring.BuildLeaderboard(data.members, data.matches, data.tips)
	s.logger.Info().Int("season", season).Int("members", len(standings)).Msg("leaderboard built")
	return standings, nil
}

func (s *LeaderboardService) GetRoundScores(ctx context.Context, season int) (*RoundScores, error) {
	data, err := s.loadSeason(ctx, season)
	if err != nil {
		return nil, err
	}

	table := scoring.PerRoundScoreTable(data.members, rounds.Group(data.matches), data.tips)
	return &RoundScores{
		Rounds:  rounds.Numbers(data.matches),
		Members: data.members,
		Table:   table,
	}, nil
}

func (s *LeaderboardService) GetSeasonStats(ctx context.Context, season int) (scoring.SeasonStats, error) {
	data, err := s.loadSeason(ctx, season)
	if err != nil {
		return scoring.SeasonStats{}, err
	}

	standings := scoring.BuildLeaderboard(data.members, data.matches, data.tips)
	return scoring.SummarizeSeason(data.matches, standings), nil
}

func (s *LeaderboardService) loadSeason(ctx context.Context, season int) (*seasonData, error) {
	return loadSeason(ctx, s.matchRepo, s.tipRepo, s.memberRepo, season, s.logger)
}

func loadSeason(ctx context.Context, matchRepo *repository.MatchRepository, tipRepo *repository.TipRepository, memberRepo *repository.MemberRepository, season int, logger zerolog.Logger) (*seasonData, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var data seasonData
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.matches, err = matchRepo.ListBySeason(gCtx, season)
		return err
	})

	g.Go(func() error {
		var err error
		data.tips, err = tipRepo.ListBySeason(gCtx, season)
		return err
	})

	g.Go(func() error {
		var err error
		data.members, err = memberRepo.List(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Int("season", season).Msg("failed to load season")
		return nil, fmt.Errorf("failed to load season %d: %w", season, err)
	}

	logger.Debug().
		Int("season", season).
		Int("matches", len(data.matches)).
		Int("tips", len(data.tips)).
		Int("members", len(data.members)).
		Msg("season loaded")
	return &data, nil
}
