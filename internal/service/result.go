package service

import (
	"context"
	"errors"
	"fmt"

	"footy-tipping/internal/constants"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"

	"github.com/rs/zerolog"
)

type ResultService struct {
	matchRepo *repository.MatchRepository
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewResultService(matchRepo *repository.MatchRepository, m *metrics.Metrics, logger zerolog.Logger) *ResultService {
	return &ResultService{matchRepo: matchRepo, metrics: m, logger: logger}
}

// RecordResult marks a match complete. winner is "draw" or the name or
// abbreviation of one of the two teams. Scores are optional but come as a pair.
func (s *ResultService) RecordResult(ctx context.Context, matchID, winner string, homeScore, awayScore *int) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if (homeScore == nil) != (awayScore == nil) {
		return nil, ErrPartialScore
	}

	match, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to load match")
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	if !match.ValidWinner(winner) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWinner, winner)
	}

	if err := s.matchRepo.RecordResult(ctx, matchID, winner, homeScore, awayScore); err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to record result")
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	kind := "win"
	if winner == domain.WinnerDraw {
		kind = domain.WinnerDraw
	}
	s.metrics.ResultsRecorded.WithLabelValues(kind).Inc()

	s.logger.Info().Str("match_id", matchID).Str("winner", winner).Msg("result recorded")
	return s.matchRepo.Get(ctx, matchID)
}
