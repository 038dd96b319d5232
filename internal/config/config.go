package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath       string
	ServerPort   string
	LogLevel     string
	Season       int
	AdminPINHash string
	JWTSecret    string
	SessionTTL   time.Duration

	FixtureAPIURL       string
	FixtureAPIUserAgent string
	FixtureAPIRPS       float64
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("season", cfg.Season).
		Dur("session_ttl", cfg.SessionTTL).
		Str("fixture_api_url", cfg.FixtureAPIURL).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadFromEnv reads configuration from the process environment only.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:              getEnv("DB_PATH", "tipping.db"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AdminPINHash:        getEnv("ADMIN_PIN_HASH", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		FixtureAPIURL:       getEnv("FIXTURE_API_URL", "https://api.squiggle.com.au/"),
		FixtureAPIUserAgent: getEnv("FIXTURE_API_USER_AGENT", "footy-tipping (family tipping comp)"),
	}

	var err error
	if cfg.Season, err = getEnvInt("SEASON", time.Now().Year()); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FixtureAPIRPS, err = getEnvFloat("FIXTURE_API_RPS", 1); err != nil {
		return nil, err
	}

	if cfg.AdminPINHash == "" {
		return nil, fmt.Errorf("ADMIN_PIN_HASH is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

var Module = fx.Provide(Load)
