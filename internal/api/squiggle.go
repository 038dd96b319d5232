package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"footy-tipping/internal/config"
	"footy-tipping/internal/constants"
	"footy-tipping/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// SquiggleClient reads teams and fixtures from the Squiggle AFL API.
type SquiggleClient struct {
	baseURL   string
	userAgent string
	client    *fasthttp.Client
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewSquiggleClient(cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *SquiggleClient {
	rps := cfg.FixtureAPIRPS
	if rps <= 0 {
		rps = 1
	}
	return &SquiggleClient{
		baseURL:   strings.TrimRight(cfg.FixtureAPIURL, "/") + "/",
		userAgent: cfg.FixtureAPIUserAgent,
		client: &fasthttp.Client{
			MaxConnsPerHost:     8,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), constants.FixtureAPIBurst),
		metrics: m,
		logger:  logger,
	}
}

func (c *SquiggleClient) GetTeams(ctx context.Context) ([]Team, error) {
	resp, err := doRequest[TeamsResponse](ctx, c, "teams", "q=teams")
	if err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

func (c *SquiggleClient) GetGames(ctx context.Context, year int) ([]Game, error) {
	resp, err := doRequest[GamesResponse](ctx, c, "games", "q=games;year="+strconv.Itoa(year))
	if err != nil {
		return nil, err
	}
	return resp.Games, nil
}

func doRequest[T any](ctx context.Context, client *SquiggleClient, query, rawQuery string) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + "?" + rawQuery)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(client.userAgent)
	req.Header.Set("Accept", "application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = client.client.DoDeadline(req, resp, deadline)
	} else {
		err = client.client.DoTimeout(req, resp, constants.ExternalAPITimeout)
	}
	if err != nil {
		client.metrics.FeedRequests.WithLabelValues(query, "error").Inc()
		client.logger.Error().Err(err).Str("query", query).Msg("fixture feed request failed")
		return nil, err
	}

	status := resp.StatusCode()
	client.metrics.FeedRequests.WithLabelValues(query, strconv.Itoa(status)).Inc()

	if status != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", status)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", query, err)
	}
	return &result, nil
}

type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

type Team struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
}

type GamesResponse struct {
	Games []Game `json:"games"`
}

type Game struct {
	ID           int    `json:"id"`
	Year         int    `json:"year"`
	Round        int    `json:"round"`
	Venue        string `json:"venue"`
	UnixTime     int64  `json:"unixtime"`
	HomeTeamID   int    `json:"hteamid"`
	AwayTeamID   int    `json:"ateamid"`
	HomeScore    *int   `json:"hscore"`
	AwayScore    *int   `json:"ascore"`
	WinnerTeamID *int   `json:"winnerteamid"`
	Complete     int    `json:"complete"`
}

// IsComplete reports whether the feed considers the game finished.
func (g Game) IsComplete() bool {
	return g.Complete >= constants.FixtureCompleted
}

// IsDraw is true for a finished game with no winning team.
func (g Game) IsDraw() bool {
	return g.IsComplete() && (g.WinnerTeamID == nil || *g.WinnerTeamID == 0)
}

func (g Game) StartsAt() time.Time {
	if g.UnixTime == 0 {
		return time.Time{}
	}
	return time.Unix(g.UnixTime, 0).UTC()
}
