package config

import "context"

// EnvSettings holds the environment-sourced sending identity.
// Embed this in your app config for env parsing with caarlos0/env.
type EnvSettings struct {
	Domain    string `env:"MAILGUN_DOMAIN"`
	FromEmail string `env:"MAILGUN_FROM_EMAIL"`
	FromName  string `env:"MAILGUN_FROM_NAME"`
}

// EnvProvider serves immutable settings captured from the environment at
// startup.
type EnvProvider struct {
	settings Settings
}

// NewEnvProvider creates a provider over environment-sourced settings.
func NewEnvProvider(cfg EnvSettings) *EnvProvider {
	return &EnvProvider{settings: Settings{
		Domain:    cfg.Domain,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		FromEnv:   true,
	}}
}

// Settings implements Provider.
func (p *EnvProvider) Settings(_ context.Context) (*Settings, error) {
	s := p.settings
	return &s, nil
}

// Save implements Provider; the environment path is read-only.
func (p *EnvProvider) Save(context.Context, string, string, string) error {
	return ErrImmutable
}

// Mutable implements Provider.
func (p *EnvProvider) Mutable() bool { return false }
