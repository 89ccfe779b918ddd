package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8787"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:uoobpremium.db?cache=shared&_fk=1"`

	Discord   DiscordConfig   `envPrefix:"DISCORD_"`
	Scheduler SchedulerConfig `envPrefix:"SCHEDULER_"`
	Telemetry TelemetryConfig `envPrefix:"OTEL_"`
	Bootstrap BootstrapConfig `envPrefix:"BOOTSTRAP_"`
}

// DiscordConfig carries the interaction verification key and the
// announcement webhook destination.
type DiscordConfig struct {
	PublicKey  string `env:"PUBLIC_KEY"`
	WebhookURL string `env:"WEBHOOK_URL"`
}

// SchedulerConfig controls the billing cycle worker loop.
type SchedulerConfig struct {
	Enabled      bool   `env:"ENABLED" envDefault:"true"`
	PollInterval string `env:"POLL_INTERVAL" envDefault:"1h"`
}

// TelemetryConfig configures tracing export.
type TelemetryConfig struct {
	Enabled          bool    `env:"TRACING_ENABLED" envDefault:"false"`
	ServiceName      string  `env:"SERVICE_NAME" envDefault:"uoobpremium"`
	ExporterEndpoint string  `env:"EXPORTER_ENDPOINT"`
	ExporterProtocol string  `env:"EXPORTER_PROTOCOL" envDefault:"grpc"`
	SamplingRatio    float64 `env:"SAMPLING_RATIO" envDefault:"0.1"`
}

// BootstrapConfig controls startup seeding.
type BootstrapConfig struct {
	EnsureDefaultCustomers bool `env:"ENSURE_DEFAULT_CUSTOMERS" envDefault:"true"`
}

// Load parses configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}
