package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/pkg/db"
	"github.com/heraldhq/herald/pkg/logger"
	"github.com/heraldhq/herald/pkg/mailer/mailgun"
	"github.com/heraldhq/herald/pkg/mailer/resend"
	"github.com/heraldhq/herald/pkg/storage"
)

// appConfig is the full runtime configuration, assembled from the
// environment with an optional YAML overlay on the serving knobs.
type appConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// SendSecret gates full campaign sends. Empty disables the gate.
	SendSecret string `env:"CAMPAIGN_SEND_SECRET"`

	// Provider selects the outbound adapter: mailgun or resend.
	Provider string `env:"MAIL_PROVIDER" envDefault:"mailgun"`

	// SeedContacts populates the in-memory store with sample contacts
	// for keyless development runs.
	SeedContacts int `env:"SEED_SAMPLE_CONTACTS"`

	DB      db.Config
	Env     config.EnvSettings
	Mailgun mailgun.Config
	Resend  resend.Config
	Sentry  logger.SentryConfig
	S3      storage.Config
}

// fileOverlay is the subset of settings a config file may override.
type fileOverlay struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	SendSecret      string        `yaml:"sendSecret"`
	Provider        string        `yaml:"provider"`
	SeedContacts    int           `yaml:"seedContacts"`
}

// loadConfig parses the environment, then applies the YAML file named
// by CONFIG_FILE, if any. File values override environment values.
func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if overlay.Addr != "" {
		cfg.Addr = overlay.Addr
	}
	if overlay.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.SendSecret != "" {
		cfg.SendSecret = overlay.SendSecret
	}
	if overlay.Provider != "" {
		cfg.Provider = overlay.Provider
	}
	if overlay.SeedContacts > 0 {
		cfg.SeedContacts = overlay.SeedContacts
	}
	return cfg, nil
}

func (c appConfig) logFields() []any {
	return []any{
		slog.String("addr", c.Addr),
		slog.String("provider", c.Provider),
		slog.Bool("database", c.DB.ConnectionString != ""),
		slog.Bool("send_gate", c.SendSecret != ""),
		slog.Bool("uploads", c.S3.Configured()),
	}
}
