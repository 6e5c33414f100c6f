package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	devAccessSecret  = "dev-access-secret-change-in-production"
	devRefreshSecret = "dev-refresh-secret-change-in-production"
)

var (
	ErrDefaultSecrets = errors.New("SECRET_KEY and REFRESH_SECRET_KEY must be set in production environment")
	ErrSharedSecret   = errors.New("SECRET_KEY and REFRESH_SECRET_KEY must differ")
)

// Config is built once at startup and handed to constructors.
type Config struct {
	Port             string   `env:"PORT" env-default:"8080"`
	Env              string   `env:"ENV" env-default:"development"`
	LogLevel         string   `env:"LOG_LEVEL" env-default:"info"`
	LogFormat        string   `env:"LOG_FORMAT" env-default:"text"`
	DatabaseDriver   string   `env:"DATABASE_DRIVER" env-default:"mysql"`
	DatabaseURL      string   `env:"DATABASE_URL"`
	SecretKey        string   `env:"SECRET_KEY" env-default:"dev-access-secret-change-in-production"`
	RefreshSecretKey string   `env:"REFRESH_SECRET_KEY" env-default:"dev-refresh-secret-change-in-production"`
	CORSOrigins      []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
	AuthRateLimitRPS float64  `env:"AUTH_RATE_LIMIT_RPS" env-default:"5"`
	AuthRateBurst    int      `env:"AUTH_RATE_LIMIT_BURST" env-default:"10"`
	TrustProxy       bool     `env:"TRUST_PROXY" env-default:"false"`
}

// Load reads the configuration from the process environment.
// A missing DATABASE_URL is not an error here; the store reports it on first use.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.SecretKey == c.RefreshSecretKey {
		return ErrSharedSecret
	}
	if c.IsProduction() && (c.SecretKey == devAccessSecret || c.RefreshSecretKey == devRefreshSecret) {
		return ErrDefaultSecrets
	}
	switch c.DatabaseDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

// IsProduction reports whether the service runs with production safeguards.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
