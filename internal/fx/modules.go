package fx

import (
	"database/sql"

	"footy-tipping/internal/api"
	"footy-tipping/internal/auth"
	"footy-tipping/internal/config"
	"footy-tipping/internal/database"
	"footy-tipping/internal/db"
	"footy-tipping/internal/logger"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/server"
	"footy-tipping/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Invoke(logger.ApplyLevel),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// metrics
	fx.Provide(metrics.NewRegistry),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewMemberRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewTipRepository),
	// fixture feed
	fx.Provide(api.NewSquiggleClient),
	// svc
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewRoundService),
	fx.Provide(service.NewTipService),
	fx.Provide(service.NewResultService),
	fx.Provide(service.NewFixtureService),
	// auth
	fx.Provide(auth.New),
	// server
	fx.Provide(server.NewTippingServer),
)
