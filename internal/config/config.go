package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the API process settings. Database settings live with the
// postgres store (postgres.Config).
type Config struct {
	Env             string        `env:"APP_ENV,default=development"`
	Port            string        `env:"PORT,default=8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,default=10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,default=15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT,default=15s"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogPretty bool   `env:"LOG_PRETTY,default=false"`

	// RedisAddr is optional; without it webhook deliveries are not deduplicated.
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB,default=0"`
	WebhookEventTTL time.Duration `env:"WEBHOOK_EVENT_TTL,default=72h"`
	WebhookMaxBody  int64         `env:"WEBHOOK_MAX_BODY_BYTES,default=1048576"`

	// Pending payment methods older than PendingMethodTTL are removed by the worker.
	PendingMethodTTL time.Duration `env:"PENDING_METHOD_TTL,default=24h"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL,default=10m"`
}

// to help with testing
var envProcess = envconfig.Process

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func validate(cfg *Config) error {
	var errors []string

	if strings.TrimSpace(cfg.Port) == "" {
		errors = append(errors, "PORT is required")
	}

	if cfg.ReadTimeout <= 0 {
		errors = append(errors, "HTTP_READ_TIMEOUT must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		errors = append(errors, "HTTP_WRITE_TIMEOUT must be positive")
	}

	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, "HTTP_SHUTDOWN_TIMEOUT must be positive")
	}

	if cfg.RedisDB < 0 {
		errors = append(errors, "REDIS_DB must be non-negative")
	}

	if cfg.RedisAddr != "" && cfg.WebhookEventTTL <= 0 {
		errors = append(errors, "WEBHOOK_EVENT_TTL must be positive when REDIS_ADDR is set")
	}

	if cfg.WebhookMaxBody <= 0 {
		errors = append(errors, "WEBHOOK_MAX_BODY_BYTES must be positive")
	}

	if cfg.PendingMethodTTL <= 0 {
		errors = append(errors, "PENDING_METHOD_TTL must be positive")
	}

	if cfg.SweepInterval <= 0 {
		errors = append(errors, "SWEEP_INTERVAL must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
