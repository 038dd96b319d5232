package server

import (
	"context"
	"errors"
	"time"

	"footy-tipping/internal/auth"
	"footy-tipping/internal/config"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/scoring"
	"footy-tipping/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type TippingServer struct {
	leaderboardSvc *service.LeaderboardService
	roundSvc       *service.RoundService
	tipSvc         *service.TipService
	resultSvc      *service.ResultService
	fixtureSvc     *service.FixtureService
	auth           *auth.Authenticator
	season         int
}

func NewTippingServer(
	cfg *config.Config,
	leaderboardSvc *service.LeaderboardService,
	roundSvc *service.RoundService,
	tipSvc *service.TipService,
	resultSvc *service.ResultService,
	fixtureSvc *service.FixtureService,
	authn *auth.Authenticator,
) *TippingServer {
	return &TippingServer{
		leaderboardSvc: leaderboardSvc,
		roundSvc:       roundSvc,
		tipSvc:         tipSvc,
		resultSvc:      resultSvc,
		fixtureSvc:     fixtureSvc,
		auth:           authn,
		season:         cfg.Season,
	}
}

func (s *TippingServer) seasonOr(season int) int {
	if season > 0 {
		return season
	}
	return s.season
}

func (s *TippingServer) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	session, err := s.auth.SignIn(req.Msg.Pin)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&SignInResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	}), nil
}

func (s *TippingServer) GetLeaderboard(ctx context.Context, req *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error) {
	season := s.seasonOr(req.Msg.Season)
	standings, err := s.leaderboardSvc.GetLeaderboard(ctx, season)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &LeaderboardResponse{Season: season, Standings: make([]Standing, 0, len(standings))}
	for _, st := range standings {
		resp.Standings = append(resp.Standings, Standing{
			Rank:         st.Rank,
			MemberID:     st.Member.ID,
			Name:         st.Member.Name,
			AvatarURL:    st.Member.AvatarURL,
			Points:       st.Member.TotalPoints,
			Tipped:       st.Tipped,
			Decided:      st.Decided,
			SuccessRate:  st.SuccessRate,
			RoundsPlayed: st.RoundsPlayed,
		})
	}
	return connect.NewResponse(resp), nil
}

func (s *TippingServer) GetRound(ctx context.Context, req *connect.Request[RoundRequest]) (*connect.Response[RoundResponse], error) {
	season := s.seasonOr(req.Msg.Season)

	var round int
	if req.Msg.Round != nil {
		round = *req.Msg.Round
	} else {
		current, err := s.roundSvc.CurrentRound(ctx, season)
		if err != nil {
			return nil, toConnectError(ctx, err)
		}
		round = current
	}

	view, err := s.roundSvc.GetRound(ctx, season, round)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &RoundResponse{
		Season:       view.Season,
		Round:        view.Round,
		Label:        view.Label,
		Locked:       view.Locked,
		TipsComplete: view.TipsComplete,
		Matches:      make([]Match, 0, len(view.Matches)),
		Winners:      make([]Member, 0, len(view.Winners)),
	}
	for _, mv := range view.Matches {
		m := toMatchMessage(mv.Match)
		m.HomeForm = toFormMessages(mv.HomeForm)
		m.AwayForm = toFormMessages(mv.AwayForm)
		for _, t := range mv.Tips {
			m.Tips = append(m.Tips, Tip{
				MemberID:     t.Member.ID,
				MemberName:   t.Member.Name,
				TeamTipped:   t.TeamTipped,
				Abbreviation: t.Abbreviation,
				Outcome:      string(t.Outcome),
			})
		}
		resp.Matches = append(resp.Matches, m)
	}
	for _, w := range view.Winners {
		resp.Winners = append(resp.Winners, Member{ID: w.ID, Name: w.Name, AvatarURL: w.AvatarURL})
	}
	return connect.NewResponse(resp), nil
}

func (s *TippingServer) GetRoundScores(ctx context.Context, req *connect.Request[RoundScoresRequest]) (*connect.Response[RoundScoresResponse], error) {
	season := s.seasonOr(req.Msg.Season)
	scores, err := s.leaderboardSvc.GetRoundScores(ctx, season)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &RoundScoresResponse{Season: season, Rounds: scores.Rounds, Rows: make([]ScoreRow, 0, len(scores.Members))}
	for _, member := range scores.Members {
		row := ScoreRow{MemberID: member.ID, Name: member.Name, Cells: make([]ScoreCell, 0, len(scores.Rounds))}
		for _, round := range scores.Rounds {
			score, ok := scores.Table.Lookup(member.ID, round)
			row.Cells = append(row.Cells, ScoreCell{
				Round:   round,
				Present: ok,
				Correct: score.Correct,
				Decided: score.Decided,
				Display: scores.Table.Cell(member.ID, round),
			})
		}
		resp.Rows = append(resp.Rows, row)
	}
	return connect.NewResponse(resp), nil
}

func (s *TippingServer) GetSeasonStats(ctx context.Context, req *connect.Request[SeasonStatsRequest]) (*connect.Response[SeasonStatsResponse], error) {
	season := s.seasonOr(req.Msg.Season)
	stats, err := s.leaderboardSvc.GetSeasonStats(ctx, season)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&SeasonStatsResponse{
		Season:           season,
		TotalGames:       stats.TotalGames,
		CompletedGames:   stats.CompletedGames,
		UpcomingGames:    stats.UpcomingGames,
		TotalCorrectTips: stats.TotalCorrectTips,
	}), nil
}

func (s *TippingServer) SubmitTips(ctx context.Context, req *connect.Request[SubmitTipsRequest]) (*connect.Response[SubmitTipsResponse], error) {
	picks := make([]service.Pick, len(req.Msg.Picks))
	for i, p := range req.Msg.Picks {
		picks[i] = service.Pick{MatchID: p.MatchID, Team: p.Team}
	}

	tips, err := s.tipSvc.SubmitTips(ctx, s.seasonOr(req.Msg.Season), req.Msg.MemberID, req.Msg.Round, picks)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	audit(ctx).Str("member_id", req.Msg.MemberID).Int("round", req.Msg.Round).Int("tips", len(tips)).Msg("tips submitted")
	return connect.NewResponse(&SubmitTipsResponse{Stored: len(tips)}), nil
}

func (s *TippingServer) RecordResult(ctx context.Context, req *connect.Request[RecordResultRequest]) (*connect.Response[RecordResultResponse], error) {
	match, err := s.resultSvc.RecordResult(ctx, req.Msg.MatchID, req.Msg.Winner, req.Msg.HomeScore, req.Msg.AwayScore)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	audit(ctx).Str("match_id", match.ID).Str("winner", match.Winner).Msg("result recorded")
	return connect.NewResponse(&RecordResultResponse{Match: toMatchMessage(*match)}), nil
}

func (s *TippingServer) ImportFixtures(ctx context.Context, req *connect.Request[ImportFixturesRequest]) (*connect.Response[ImportFixturesResponse], error) {
	summary, err := s.fixtureSvc.ImportSeason(ctx, s.seasonOr(req.Msg.Season))
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	audit(ctx).Int("matches", summary.Matches).Msg("fixtures imported")
	return connect.NewResponse(&ImportFixturesResponse{
		Teams:   summary.Teams,
		Matches: summary.Matches,
		Skipped: summary.Skipped,
	}), nil
}

func toMatchMessage(m domain.Match) Match {
	msg := Match{
		ID:         m.ID,
		Round:      m.Round,
		Venue:      m.Venue,
		Home:       Team{ID: m.HomeTeam.ID, Name: m.HomeTeam.Name, Abbreviation: m.HomeTeam.Abbreviation},
		Away:       Team{ID: m.AwayTeam.ID, Name: m.AwayTeam.Name, Abbreviation: m.AwayTeam.Abbreviation},
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Winner:     m.Winner,
		IsComplete: m.IsComplete,
	}
	if !m.StartsAt.IsZero() {
		msg.StartsAt = m.StartsAt.UTC().Format(time.RFC3339)
	}
	return msg
}

func toFormMessages(form []scoring.FormEntry) []FormItem {
	items := make([]FormItem, 0, len(form))
	for _, f := range form {
		items = append(items, FormItem{
			MatchID:  f.MatchID,
			Round:    f.Round,
			Location: string(f.Location),
			Result:   string(f.Result),
		})
	}
	return items
}

// toConnectError maps service errors onto connect codes. Anything unknown
// is logged and reported as internal.
// audit starts an info event on the request logger tagged with the signed-in
// subject.
func audit(ctx context.Context) *zerolog.Event {
	event := zerolog.Ctx(ctx).Info()
	if subject, ok := auth.Subject(ctx); ok {
		event = event.Str("subject", subject)
	}
	return event
}

func toConnectError(ctx context.Context, err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, service.ErrRoundLocked):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, service.ErrUnknownTeam),
		errors.Is(err, service.ErrInvalidWinner),
		errors.Is(err, service.ErrTooManyPicks),
		errors.Is(err, service.ErrPartialScore):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrRoundNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, service.ErrInvalidPIN),
		errors.Is(err, service.ErrUnauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("unhandled service error")
		return connect.NewError(connect.CodeInternal, err)
	}
}
