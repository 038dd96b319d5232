package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"footy-tipping/internal/constants"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/rounds"
	"footy-tipping/internal/scoring"

	"github.com/rs/zerolog"
)

type TipService struct {
	matchRepo  *repository.MatchRepository
	tipRepo    *repository.TipRepository
	memberRepo *repository.MemberRepository
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

func NewTipService(matchRepo *repository.MatchRepository, tipRepo *repository.TipRepository, memberRepo *repository.MemberRepository, m *metrics.Metrics, logger zerolog.Logger) *TipService {
	return &TipService{matchRepo: matchRepo, tipRepo: tipRepo, memberRepo: memberRepo, metrics: m, logger: logger, now: time.Now}
}

// Pick is a member's choice for one match, by team name or abbreviation.
type Pick struct {
	MatchID string
	Team    string
}

// SubmitTips stores a member's picks for a round. Either every pick is stored
// or none is. A pick for a match already tipped replaces the earlier one.
func (s *TipService) SubmitTips(ctx context.Context, season int, memberID string, round int, picks []Pick) ([]domain.Tip, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if len(picks) > constants.MaxTipsPerRequest {
		return nil, ErrTooManyPicks
	}

	if _, err := s.memberRepo.Get(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
		}
		s.logger.Error().Err(err).Str("member_id", memberID).Msg("failed to load member")
		return nil, err
	}

	roundMatches, err := s.matchRepo.ListByRound(ctx, season, round)
	if err != nil {
		s.logger.Error().Err(err).Int("season", season).Int("round", round).Msg("failed to list round matches")
		return nil, err
	}
	if len(roundMatches) == 0 {
		return nil, ErrRoundNotFound
	}
	if rounds.IsLocked(roundMatches, s.now()) {
		s.logger.Info().Str("member_id", memberID).Int("round", round).Msg("tips rejected, round locked")
		return nil, ErrRoundLocked
	}

	byID := make(map[string]domain.Match, len(roundMatches))
	for _, m := range roundMatches {
		byID[m.ID] = m
	}

	tips := make([]domain.Tip, 0, len(picks))
	for _, p := range picks {
		m, ok := byID[p.MatchID]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not in round %d", ErrMatchNotFound, p.MatchID, round)
		}
		if _, ok := scoring.FindTippedTeam(p.Team, m.HomeTeam, m.AwayTeam); !ok {
			return nil, fmt.Errorf("%w: %q for match %s", ErrUnknownTeam, p.Team, p.MatchID)
		}
		tips = append(tips, domain.Tip{
			TipperID:   memberID,
			MatchID:    m.ID,
			Round:      round,
			TeamTipped: p.Team,
		})
	}

	if err := s.tipRepo.UpsertBatch(ctx, tips); err != nil {
		s.logger.Error().Err(err).Str("member_id", memberID).Msg("failed to store tips")
		return nil, fmt.Errorf("failed to store tips: %w", err)
	}

	s.metrics.TipsSubmitted.Add(float64(len(tips)))
	s.logger.Info().Str("member_id", memberID).Int("round", round).Int("count", len(tips)).Msg("tips submitted")
	return tips, nil
}
