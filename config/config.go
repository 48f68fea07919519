package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"5000" validate:"required"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost" validate:"required"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	DBUser     string `env:"DB_USER,required" validate:"required"`
	DBPassword string `env:"DB_PASSWORD,required" validate:"required"`
	DBName     string `env:"DB_NAME,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	JWTSecret   string `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTLMin int    `env:"TOKEN_TTL_MIN" envDefault:"60" validate:"min=1"`

	// RequireAuth=false runs the open variant: every route is served
	// without the bearer-token gate.
	RequireAuth bool `env:"REQUIRE_AUTH" envDefault:"true"`

	RateLimitMax       int `env:"RATE_LIMIT_MAX" envDefault:"100" validate:"min=1"`
	RateLimitWindowMin int `env:"RATE_LIMIT_WINDOW_MIN" envDefault:"15" validate:"min=1"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DatabaseURL assembles a postgres DSN from the DB_* parts.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMin) * time.Minute
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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
