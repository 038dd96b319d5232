package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"footy-tipping/internal/api"
	"footy-tipping/internal/auth"
	"footy-tipping/internal/config"
	"footy-tipping/internal/database"
	"footy-tipping/internal/db"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPIN = "2468"

type harness struct {
	baseURL string
	client  *http.Client
	member  domain.Member
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "tipping.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery == "q=teams" {
			w.Write([]byte(`{"teams":[{"id":1,"name":"Adelaide Crows","abbrev":"ADL"},{"id":9,"name":"Hawthorn Hawks","abbrev":"HAW"}]}`))
			return
		}
		w.Write([]byte(`{"games":[{"id":77,"round":5,"unixtime":1900000000,"hteamid":9,"ateamid":1,"complete":0}]}`))
	}))
	t.Cleanup(feed.Close)

	hash, err := auth.HashPIN(testPIN)
	require.NoError(t, err)
	cfg := &config.Config{
		Season:              2025,
		AdminPINHash:        hash,
		JWTSecret:           "server-test",
		SessionTTL:          time.Hour,
		FixtureAPIURL:       feed.URL,
		FixtureAPIUserAgent: "tipping-test",
		FixtureAPIRPS:       50,
	}

	queries := db.New(sqlDB)
	teams := repository.NewTeamRepository(sqlDB, queries, log)
	members := repository.NewMemberRepository(sqlDB, queries, log)
	matches := repository.NewMatchRepository(sqlDB, queries, log)
	tips := repository.NewTipRepository(sqlDB, queries, log)
	m := metrics.Nop()

	adl := domain.Team{Name: "Adelaide Crows", Abbreviation: "ADL"}
	haw := domain.Team{Name: "Hawthorn Hawks", Abbreviation: "HAW"}
	require.NoError(t, teams.Upsert(ctx, &adl))
	require.NoError(t, teams.Upsert(ctx, &haw))
	amy := domain.Member{Name: "Amy"}
	require.NoError(t, members.Upsert(ctx, &amy))

	now := time.Now().UTC()
	require.NoError(t, matches.UpsertBatch(ctx, []domain.Match{
		{ID: "done", Season: 2025, Round: 1, StartsAt: now.AddDate(0, 0, -7), HomeTeam: adl, AwayTeam: haw, Winner: "HAW", IsComplete: true},
		{ID: "next", Season: 2025, Round: 2, StartsAt: now.AddDate(0, 0, 3), HomeTeam: haw, AwayTeam: adl},
	}))
	require.NoError(t, tips.UpsertBatch(ctx, []domain.Tip{
		{TipperID: amy.ID, MatchID: "done", Round: 1, TeamTipped: "Hawthorn Hawks"},
	}))

	authn := auth.New(cfg, log)
	srv := NewTippingServer(
		cfg,
		service.NewLeaderboardService(matches, tips, members, log),
		service.NewRoundService(matches, tips, members, log),
		service.NewTipService(matches, tips, members, m, log),
		service.NewResultService(matches, m, log),
		service.NewFixtureService(api.NewSquiggleClient(cfg, m, log), teams, matches, m, log),
		authn,
	)

	path, handler := NewTippingServiceHandler(srv, authn, m)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &harness{baseURL: ts.URL, client: ts.Client(), member: amy}
}

func call[Req, Res any](t *testing.T, h *harness, procedure string, msg *Req, token string) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](h.client, h.baseURL+procedure, ClientOptions()...)
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func signIn(t *testing.T, h *harness) string {
	t.Helper()
	resp, err := call[SignInRequest, SignInResponse](t, h, SignInProcedure, &SignInRequest{Pin: testPIN}, "")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestGetLeaderboard(t *testing.T) {
	h := newHarness(t)

	resp, err := call[LeaderboardRequest, LeaderboardResponse](t, h, GetLeaderboardProcedure, &LeaderboardRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Season)
	require.Len(t, resp.Standings, 1)
	assert.Equal(t, Standing{
		Rank:         1,
		MemberID:     h.member.ID,
		Name:         "Amy",
		Points:       1,
		Tipped:       1,
		Decided:      1,
		SuccessRate:  100,
		RoundsPlayed: 1,
	}, resp.Standings[0])
}

func TestGetRoundDefaultsToCurrent(t *testing.T) {
	h := newHarness(t)

	resp, err := call[RoundRequest, RoundResponse](t, h, GetRoundProcedure, &RoundRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Round)
	assert.Equal(t, "Round 2", resp.Label)
	assert.False(t, resp.Locked)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "next", resp.Matches[0].ID)
	require.Len(t, resp.Matches[0].HomeForm, 1)
	assert.Equal(t, "win", resp.Matches[0].HomeForm[0].Result)
}

func TestGetRoundScores(t *testing.T) {
	h := newHarness(t)

	resp, err := call[RoundScoresRequest, RoundScoresResponse](t, h, GetRoundScoresProcedure, &RoundScoresRequest{Season: 2025}, "")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, resp.Rounds)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, []ScoreCell{
		{Round: 1, Present: true, Correct: 1, Decided: 1, Display: "1/1"},
		{Round: 2, Display: "-"},
	}, resp.Rows[0].Cells)
}

func TestSubmitTipsRequiresSession(t *testing.T) {
	h := newHarness(t)
	req := &SubmitTipsRequest{MemberID: h.member.ID, Round: 2, Picks: []Pick{{MatchID: "next", Team: "ADL"}}}

	_, err := call[SubmitTipsRequest, SubmitTipsResponse](t, h, SubmitTipsProcedure, req, "")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call[SubmitTipsRequest, SubmitTipsResponse](t, h, SubmitTipsProcedure, req, "forged")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	resp, err := call[SubmitTipsRequest, SubmitTipsResponse](t, h, SubmitTipsProcedure, req, signIn(t, h))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Stored)
}

func TestErrorCodes(t *testing.T) {
	h := newHarness(t)
	token := signIn(t, h)

	_, err := call[SignInRequest, SignInResponse](t, h, SignInProcedure, &SignInRequest{Pin: "0000"}, "")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call[SubmitTipsRequest, SubmitTipsResponse](t, h, SubmitTipsProcedure,
		&SubmitTipsRequest{MemberID: h.member.ID, Round: 1, Picks: []Pick{{MatchID: "done", Team: "ADL"}}}, token)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	_, err = call[SubmitTipsRequest, SubmitTipsResponse](t, h, SubmitTipsProcedure,
		&SubmitTipsRequest{MemberID: h.member.ID, Round: 2, Picks: []Pick{{MatchID: "next", Team: "Geelong"}}}, token)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[RecordResultRequest, RecordResultResponse](t, h, RecordResultProcedure,
		&RecordResultRequest{MatchID: "missing", Winner: "draw"}, token)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	home := 70
	_, err = call[RecordResultRequest, RecordResultResponse](t, h, RecordResultProcedure,
		&RecordResultRequest{MatchID: "next", Winner: "ADL", HomeScore: &home}, token)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	round := 12
	_, err = call[RoundRequest, RoundResponse](t, h, GetRoundProcedure, &RoundRequest{Round: &round}, "")
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestRecordResultAndImport(t *testing.T) {
	h := newHarness(t)
	token := signIn(t, h)

	home, away := 50, 61
	result, err := call[RecordResultRequest, RecordResultResponse](t, h, RecordResultProcedure,
		&RecordResultRequest{MatchID: "next", Winner: "ADL", HomeScore: &home, AwayScore: &away}, token)
	require.NoError(t, err)
	assert.True(t, result.Match.IsComplete)
	assert.Equal(t, 61, *result.Match.AwayScore)

	imported, err := call[ImportFixturesRequest, ImportFixturesResponse](t, h, ImportFixturesProcedure, &ImportFixturesRequest{}, token)
	require.NoError(t, err)
	assert.Equal(t, ImportFixturesResponse{Teams: 2, Matches: 1}, *imported)

	stats, err := call[SeasonStatsRequest, SeasonStatsResponse](t, h, GetSeasonStatsProcedure, &SeasonStatsRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 2, stats.CompletedGames)
}
