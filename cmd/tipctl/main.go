package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"footy-tipping/internal/api"
	"footy-tipping/internal/auth"
	"footy-tipping/internal/config"
	"footy-tipping/internal/database"
	"footy-tipping/internal/db"
	"footy-tipping/internal/domain"
	"footy-tipping/internal/logger"
	"footy-tipping/internal/metrics"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/seed"
	"footy-tipping/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

type store struct {
	sqlDB   *sql.DB
	teams   *repository.TeamRepository
	members *repository.MemberRepository
	matches *repository.MatchRepository
	tips    *repository.TipRepository
	logger  zerolog.Logger
}

func openStore(c *cli.Context) (*store, error) {
	log := logger.SetLevel(logger.ParseLevel(c.String("log-level")))

	sqlDB, err := database.Open(c.String("db"), log)
	if err != nil {
		return nil, err
	}

	queries := db.New(sqlDB)
	return &store{
		sqlDB:   sqlDB,
		teams:   repository.NewTeamRepository(sqlDB, queries, log),
		members: repository.NewMemberRepository(sqlDB, queries, log),
		matches: repository.NewMatchRepository(sqlDB, queries, log),
		tips:    repository.NewTipRepository(sqlDB, queries, log),
		logger:  log,
	}, nil
}

func (s *store) Close() error {
	return s.sqlDB.Close()
}

func seasonFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "season",
		Usage:   "season year",
		EnvVars: []string{"SEASON"},
		Value:   time.Now().Year(),
	}
}

func main() {
	app := &cli.App{
		Name:  "tipctl",
		Usage: "administer the tipping competition",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the SQLite database",
				EnvVars: []string{"DB_PATH"},
				Value:   "tipping.db",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Commands: []*cli.Command{
			leaderboardCommand(),
			roundScoresCommand(),
			roundsCommand(),
			teamsCommand(),
			importCommand(),
			seedCommand(),
			hashPINCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "print season standings",
		Flags: []cli.Flag{seasonFlag()},
		Action: func(c *cli.Context) error {
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			svc := service.NewLeaderboardService(s.matches, s.tips, s.members, s.logger)
			standings, err := svc.GetLeaderboard(c.Context, c.Int("season"))
			if err != nil {
				return err
			}
			return renderLeaderboard(c.App.Writer, standings)
		},
	}
}

func roundScoresCommand() *cli.Command {
	return &cli.Command{
		Name:  "round-scores",
		Usage: "print correct tips per member per round",
		Flags: []cli.Flag{seasonFlag()},
		Action: func(c *cli.Context) error {
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			svc := service.NewLeaderboardService(s.matches, s.tips, s.members, s.logger)
			scores, err := svc.GetRoundScores(c.Context, c.Int("season"))
			if err != nil {
				return err
			}
			return renderRoundScores(c.App.Writer, scores)
		},
	}
}

func roundsCommand() *cli.Command {
	return &cli.Command{
		Name:  "rounds",
		Usage: "list the rounds scheduled in a season",
		Flags: []cli.Flag{seasonFlag()},
		Action: func(c *cli.Context) error {
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			numbers, err := s.matches.Rounds(c.Context, c.Int("season"))
			if err != nil {
				return err
			}
			return renderRounds(c.App.Writer, numbers)
		},
	}
}

func teamsCommand() *cli.Command {
	return &cli.Command{
		Name:      "teams",
		Usage:     "list stored teams, or show one by abbreviation",
		ArgsUsage: "[abbreviation]",
		Action: func(c *cli.Context) error {
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			if abbr := c.Args().First(); abbr != "" {
				team, err := s.teams.GetByAbbreviation(c.Context, abbr)
				if err != nil {
					return err
				}
				return renderTeams(c.App.Writer, []domain.Team{*team})
			}

			teams, err := s.teams.List(c.Context)
			if err != nil {
				return err
			}
			return renderTeams(c.App.Writer, teams)
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import teams and fixtures from the Squiggle feed",
		Flags: []cli.Flag{
			seasonFlag(),
			&cli.StringFlag{
				Name:    "feed-url",
				EnvVars: []string{"FIXTURE_API_URL"},
				Value:   "https://api.squiggle.com.au/",
			},
			&cli.StringFlag{
				Name:    "user-agent",
				EnvVars: []string{"FIXTURE_API_USER_AGENT"},
				Value:   "footy-tipping (family tipping comp)",
			},
		},
		Action: func(c *cli.Context) error {
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			cfg := &config.Config{
				FixtureAPIURL:       c.String("feed-url"),
				FixtureAPIUserAgent: c.String("user-agent"),
				FixtureAPIRPS:       1,
			}
			m := metrics.Nop()
			feed := api.NewSquiggleClient(cfg, m, s.logger)
			svc := service.NewFixtureService(feed, s.teams, s.matches, m, s.logger)

			summary, err := svc.ImportSeason(c.Context, c.Int("season"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "imported %d teams and %d matches (%d skipped)\n", summary.Teams, summary.Matches, summary.Skipped)
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "load teams, members, fixtures and tips from a YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			f, err := seed.Load(c.String("file"))
			if err != nil {
				return err
			}

			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			summary, err := seed.NewSeeder(s.teams, s.members, s.matches, s.tips, s.logger).Apply(c.Context, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "seeded season %d: %d teams, %d members, %d matches, %d tips\n",
				f.Season, summary.Teams, summary.Members, summary.Matches, summary.Tips)
			return nil
		},
	}
}

func hashPINCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-pin",
		Usage:     "print a bcrypt hash for ADMIN_PIN_HASH",
		ArgsUsage: "<pin>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pin"},
		},
		Action: func(c *cli.Context) error {
			pin := c.String("pin")
			if pin == "" {
				pin = c.Args().First()
			}
			hash, err := auth.HashPIN(pin)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}
