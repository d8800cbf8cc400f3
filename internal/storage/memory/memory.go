// Package memory provides mutex-guarded in-memory implementations of the
// persistence contracts. It backs tests and keyless development runs;
// production deployments use the postgres package.
package memory

import (
	"context"
	"sync"

	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/internal/history"
)

// Store bundles the in-memory implementations of every persistence
// contract the pipeline consumes.
type Store struct {
	Contacts *ContactStore
	Settings *SettingsStore
	History  *HistoryStore
}

// New creates an empty store.
func New() *Store {
	return &Store{
		Contacts: &ContactStore{index: make(map[string]int)},
		Settings: &SettingsStore{},
		History:  &HistoryStore{},
	}
}

// ContactStore implements contact.Store in memory.
type ContactStore struct {
	mu       sync.RWMutex
	contacts []contact.Contact
	index    map[string]int // email -> position, preserves insertion order
}

// List returns contacts in insertion order.
func (s *ContactStore) List(_ context.Context) ([]contact.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contact.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out, nil
}

// Upsert inserts or updates contacts keyed by email.
func (s *ContactStore) Upsert(_ context.Context, contacts []contact.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range contacts {
		if i, ok := s.index[c.Email]; ok {
			s.contacts[i] = c
			continue
		}
		s.index[c.Email] = len(s.contacts)
		s.contacts = append(s.contacts, c)
	}
	return nil
}

// SettingsStore implements config.Store in memory.
type SettingsStore struct {
	mu       sync.RWMutex
	settings *config.Settings
}

// GetSettings returns the stored settings, or nil when absent.
func (s *SettingsStore) GetSettings(_ context.Context) (*config.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, nil
	}
	cp := *s.settings
	return &cp, nil
}

// InsertSettings persists settings once; the first write wins.
func (s *SettingsStore) InsertSettings(_ context.Context, settings config.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		s.settings = &settings
	}
	return nil
}

// HistoryStore implements history.Store in memory.
type HistoryStore struct {
	mu      sync.RWMutex
	records []history.Record
}

// Append persists one record.
func (s *HistoryStore) Append(_ context.Context, rec *history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *rec)
	return nil
}

// List returns up to limit records, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]history.Record, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
