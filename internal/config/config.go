// Package config resolves the sending identity (domain, from address)
// from one of two sources selected at startup: environment variables
// (immutable, paired with an API key) or the persistence store (mutable,
// deliberately key-less). The Mailgun API key itself never appears in a
// Settings value handed to callers; only the environment-backed startup
// path sees it, and only to construct the provider adapter.
package config

import (
	"context"
	"errors"
)

var (
	// ErrImmutable indicates the active provider is environment-backed
	// and rejects writes.
	ErrImmutable = errors.New("config: environment-backed configuration is read-only")

	// ErrMissingFields indicates a save without the required fields.
	ErrMissingFields = errors.New("config: domain and from email are required")
)

// Settings is the sending identity as exposed to callers. It carries no
// credentials by construction.
type Settings struct {
	Domain    string `json:"mailgunDomain"`
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
	FromEnv   bool   `json:"isFromEnv"`
}

// Complete reports whether the settings are sufficient to address mail.
// Key presence is a separate concern checked by the campaign service via
// its sender.
func (s *Settings) Complete() bool {
	return s != nil && s.Domain != "" && s.FromEmail != ""
}

// Provider resolves and optionally persists settings.
type Provider interface {
	// Settings returns the current settings, or nil when nothing is
	// configured yet.
	Settings(ctx context.Context) (*Settings, error)
	// Save persists new settings. Environment-backed providers return
	// ErrImmutable.
	Save(ctx context.Context, domain, fromEmail, fromName string) error
	// Mutable reports whether Save is supported.
	Mutable() bool
}

// Store is the persistence contract used by the store-backed provider.
type Store interface {
	// GetSettings returns the stored settings, or nil when absent.
	GetSettings(ctx context.Context) (*Settings, error)
	// InsertSettings persists settings once; later inserts are ignored
	// (first write wins).
	InsertSettings(ctx context.Context, s Settings) error
}
