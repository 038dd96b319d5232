package service

import (
	"context"
	"time"

	"footy-tipping/internal/domain"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/rounds"
	"footy-tipping/internal/scoring"

	"github.com/rs/zerolog"
)

type RoundService struct {
	matchRepo  *repository.MatchRepository
	tipRepo    *repository.TipRepository
	memberRepo *repository.MemberRepository
	logger     zerolog.Logger
	now        func() time.Time
}

func NewRoundService(matchRepo *repository.MatchRepository, tipRepo *repository.TipRepository, memberRepo *repository.MemberRepository, logger zerolog.Logger) *RoundService {
	return &RoundService{matchRepo: matchRepo, tipRepo: tipRepo, memberRepo: memberRepo, logger: logger, now: time.Now}
}

type RoundView struct {
	Season       int
	Round        int
	Label        string
	Locked       bool
	TipsComplete bool
	Matches      []MatchView
	Winners      []domain.Member
}

type MatchView struct {
	Match    domain.Match
	HomeForm []scoring.FormEntry
	AwayForm []scoring.FormEntry
	Tips     []TipView
}

// TipView is one member's pick on a match. A member without a tip is
// omitted rather than shown with an empty pick.
type TipView struct {
	Member       domain.Member
	TeamTipped   string
	Abbreviation string
	Outcome      scoring.Outcome
}

func (s *RoundService) GetRound(ctx context.Context, season, round int) (*RoundView, error) {
	data, err := loadSeason(ctx, s.matchRepo, s.tipRepo, s.memberRepo, season, s.logger)
	if err != nil {
		return nil, err
	}

	roundMatches := rounds.Filter(data.matches, round)
	if len(roundMatches) == 0 {
		return nil, ErrRoundNotFound
	}

	latest := make(map[string]domain.Tip)
	for _, t := range data.tips {
		latest[t.TipperID+"/"+t.MatchID] = t
	}

	view := &RoundView{
		Season:       season,
		Round:        round,
		Label:        rounds.Label(round),
		Locked:       rounds.IsLocked(roundMatches, s.now()),
		TipsComplete: scoring.RoundTipsComplete(data.members, roundMatches, data.tips),
		Winners:      scoring.ComputeRoundWinners(data.members, roundMatches, data.tips),
		Matches:      make([]MatchView, 0, len(roundMatches)),
	}

	for _, m := range roundMatches {
		mv := MatchView{
			Match:    m,
			HomeForm: scoring.TeamForm(data.matches, m.HomeTeam, scoring.DefaultFormLimit),
			AwayForm: scoring.TeamForm(data.matches, m.AwayTeam, scoring.DefaultFormLimit),
		}
		for _, member := range data.members {
			t, ok := latest[member.ID+"/"+m.ID]
			if !ok {
				continue
			}
			abbr, _ := scoring.TipAbbreviation(t.TeamTipped, m.HomeTeam, m.AwayTeam)
			mv.Tips = append(mv.Tips, TipView{
				Member:       member,
				TeamTipped:   t.TeamTipped,
				Abbreviation: abbr,
				Outcome:      scoring.Evaluate(t, m),
			})
		}
		view.Matches = append(view.Matches, mv)
	}

	s.logger.Debug().Int("season", season).Int("round", round).Bool("locked", view.Locked).Msg("round view built")
	return view, nil
}

// CurrentRound returns the round open for tipping in the season.
func (s *RoundService) CurrentRound(ctx context.Context, season int) (int, error) {
	matches, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		s.logger.Error().Err(err).Int("season", season).Msg("failed to list matches")
		return 0, err
	}
	return rounds.Current(matches, s.now()), nil
}
