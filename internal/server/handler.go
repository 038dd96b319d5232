package server

import (
	"context"
	"net/http"
	"time"

	"footy-tipping/internal/auth"
	"footy-tipping/internal/metrics"

	"connectrpc.com/connect"
)

const (
	ServiceName        = "tipping.v1.TippingService"
	TippingServicePath = "/" + ServiceName + "/"

	SignInProcedure         = TippingServicePath + "SignIn"
	GetLeaderboardProcedure = TippingServicePath + "GetLeaderboard"
	GetRoundProcedure       = TippingServicePath + "GetRound"
	GetRoundScoresProcedure = TippingServicePath + "GetRoundScores"
	GetSeasonStatsProcedure = TippingServicePath + "GetSeasonStats"
	SubmitTipsProcedure     = TippingServicePath + "SubmitTips"
	RecordResultProcedure   = TippingServicePath + "RecordResult"
	ImportFixturesProcedure = TippingServicePath + "ImportFixtures"
)

// ProtectedProcedures change stored data and need a session token.
var ProtectedProcedures = []string{
	SubmitTipsProcedure,
	RecordResultProcedure,
	ImportFixturesProcedure,
}

// NewTippingServiceHandler builds the connect handler for every procedure
// and returns the path prefix to mount it on.
func NewTippingServiceHandler(s *TippingServer, authn *auth.Authenticator, m *metrics.Metrics) (string, http.Handler) {
	opts := []connect.HandlerOption{
		connect.WithCodec(codecJSON),
		connect.WithCodec(codecJSONCharset),
		connect.WithInterceptors(
			metricsInterceptor(m),
			authn.Interceptor(ProtectedProcedures...),
		),
	}

	mux := http.NewServeMux()
	mux.Handle(SignInProcedure, connect.NewUnaryHandler(SignInProcedure, s.SignIn, opts...))
	mux.Handle(GetLeaderboardProcedure, connect.NewUnaryHandler(GetLeaderboardProcedure, s.GetLeaderboard, opts...))
	mux.Handle(GetRoundProcedure, connect.NewUnaryHandler(GetRoundProcedure, s.GetRound, opts...))
	mux.Handle(GetRoundScoresProcedure, connect.NewUnaryHandler(GetRoundScoresProcedure, s.GetRoundScores, opts...))
	mux.Handle(GetSeasonStatsProcedure, connect.NewUnaryHandler(GetSeasonStatsProcedure, s.GetSeasonStats, opts...))
	mux.Handle(SubmitTipsProcedure, connect.NewUnaryHandler(SubmitTipsProcedure, s.SubmitTips, opts...))
	mux.Handle(RecordResultProcedure, connect.NewUnaryHandler(RecordResultProcedure, s.RecordResult, opts...))
	mux.Handle(ImportFixturesProcedure, connect.NewUnaryHandler(ImportFixturesProcedure, s.ImportFixtures, opts...))

	return TippingServicePath, mux
}

// ClientOptions are the options a connect client needs to talk to the service.
func ClientOptions() []connect.ClientOption {
	return []connect.ClientOption{connect.WithCodec(codecJSON)}
}

func metricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.RequestDuration.WithLabelValues(req.Spec().Procedure, code).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}
