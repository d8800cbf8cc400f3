// Package postgres provides the pgx-backed implementations of the
// persistence contracts, plus the embedded schema migrations.
package postgres

import (
	"context"
	"embed"
	"errors"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/pkg/db"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations exposes the schema migrations with the SQL files at the
// root, the layout the migrator collects from.
var Migrations = func() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}()

// Store bundles the postgres implementations of every persistence
// contract the pipeline consumes.
type Store struct {
	Contacts *ContactStore
	Settings *SettingsStore
	History  *HistoryStore
}

// New creates a store over an established pool. Run migrations first.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		Contacts: &ContactStore{pool: pool},
		Settings: &SettingsStore{pool: pool},
		History:  &HistoryStore{pool: pool},
	}
}

// ContactStore implements contact.Store over the contacts table.
type ContactStore struct {
	pool *pgxpool.Pool
}

func (s *ContactStore) List(ctx context.Context) ([]contact.Contact, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT email, name, custom_fields
		FROM contacts
		ORDER BY created_at, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []contact.Contact
	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(&c.Email, &c.Name, &c.CustomFields); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Upsert applies the whole batch in one transaction: a bad row leaves
// the contact list untouched.
func (s *ContactStore) Upsert(ctx context.Context, contacts []contact.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range contacts {
		fields := c.CustomFields
		if fields == nil {
			fields = map[string]string{}
		}
		batch.Queue(`
			INSERT INTO contacts (email, name, custom_fields)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE
			SET name = EXCLUDED.name,
			    custom_fields = EXCLUDED.custom_fields,
			    updated_at = now()`,
			c.Email, c.Name, fields)
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range contacts {
			if _, err := results.Exec(); err != nil {
				return err
			}
		}
		return nil
	})
}

// SettingsStore implements config.Store over the single-row
// sender_config table.
type SettingsStore struct {
	pool *pgxpool.Pool
}

func (s *SettingsStore) GetSettings(ctx context.Context) (*config.Settings, error) {
	var settings config.Settings
	err := s.pool.QueryRow(ctx, `
		SELECT domain, from_email, from_name
		FROM sender_config`).
		Scan(&settings.Domain, &settings.FromEmail, &settings.FromName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// InsertSettings persists settings once. The singleton primary key
// makes later inserts no-ops, so the first write wins.
func (s *SettingsStore) InsertSettings(ctx context.Context, settings config.Settings) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sender_config (domain, from_email, from_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (singleton) DO NOTHING`,
		settings.Domain, settings.FromEmail, settings.FromName)
	return err
}

// HistoryStore implements history.Store over the email_history table.
type HistoryStore struct {
	pool *pgxpool.Pool
}

func (s *HistoryStore) Append(ctx context.Context, rec *history.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO email_history
			(id, recipient_email, recipient_name, subject, body,
			 image_url, status, provider_message_id, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.RecipientEmail, rec.RecipientName, rec.Subject, rec.Body,
		rec.ImageURL, rec.Status, rec.ProviderMessageID, rec.SentAt, rec.CreatedAt)
	return err
}

func (s *HistoryStore) List(ctx context.Context, limit int) ([]history.Record, error) {
	query := `
		SELECT id, recipient_email, recipient_name, subject, body,
		       image_url, status, provider_message_id, sent_at, created_at
		FROM email_history
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var rec history.Record
		if err := rows.Scan(&rec.ID, &rec.RecipientEmail, &rec.RecipientName,
			&rec.Subject, &rec.Body, &rec.ImageURL, &rec.Status,
			&rec.ProviderMessageID, &rec.SentAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
