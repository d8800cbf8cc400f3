package config

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// StoreProvider serves settings from the persistence store. Concurrent
// reads collapse into a single store query; the settings page and the
// send pipeline both hit this on the hot path.
type StoreProvider struct {
	store Store
	sf    singleflight.Group
}

// NewStoreProvider creates a provider over a settings store.
func NewStoreProvider(store Store) *StoreProvider {
	return &StoreProvider{store: store}
}

// Settings implements Provider.
func (p *StoreProvider) Settings(ctx context.Context) (*Settings, error) {
	v, err, _ := p.sf.Do("settings", func() (any, error) {
		return p.store.GetSettings(ctx)
	})
	if err != nil {
		return nil, err
	}
	s, _ := v.(*Settings)
	return s, nil
}

// Save implements Provider. The store keeps the first write; saving over
// existing settings is a no-op, matching the persistence contract.
func (p *StoreProvider) Save(ctx context.Context, domain, fromEmail, fromName string) error {
	if domain == "" || fromEmail == "" {
		return ErrMissingFields
	}
	return p.store.InsertSettings(ctx, Settings{
		Domain:    domain,
		FromEmail: fromEmail,
		FromName:  fromName,
	})
}

// Mutable implements Provider.
func (p *StoreProvider) Mutable() bool { return true }
