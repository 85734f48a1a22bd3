package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	Webhook   WebhookConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type WebhookConfig struct {
	// Secret is resolved exactly once at startup. Empty is a valid,
	// fail-closed configuration: the gateway then rejects every request.
	Secret    string        `env:"WEBHOOK_SECRET"`
	Tolerance time.Duration `env:"WEBHOOK_TOLERANCE" envDefault:"5m"`
}

type DatabaseConfig struct {
	// URL selects Postgres for the event store when set; otherwise the
	// server falls back to SQLite at SQLitePath.
	URL        string `env:"DATABASE_URL"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"paygate.db"`
}

type RedisConfig struct {
	// URL selects Redis for the replay ledger and rate limiter when set;
	// otherwise both are in-process.
	URL string `env:"REDIS_URL"`
}

type RateLimitConfig struct {
	PerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"50"`
	Burst     int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
