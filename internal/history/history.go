// Package history is the audit trail of delivery attempts. Exactly one
// record is written per attempted send, failures included; the record
// echoes the raw subject/body that were attempted, not the formatted HTML.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heraldhq/herald/pkg/mailer"
)

// Record is one persisted delivery attempt.
type Record struct {
	ID                uuid.UUID     `json:"id"`
	RecipientEmail    string        `json:"recipientEmail"`
	RecipientName     string        `json:"recipientName"`
	Subject           string        `json:"subject"`
	Body              string        `json:"body"`
	ImageURL          string        `json:"imageUrl,omitempty"`
	Status            mailer.Status `json:"status"`
	ProviderMessageID string        `json:"providerMessageId,omitempty"`
	SentAt            *time.Time    `json:"sentAt,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// Store is the persistence contract for the audit trail.
type Store interface {
	// Append persists one record.
	Append(ctx context.Context, rec *Record) error
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
}

// Stats aggregates the outcome counts of a record set.
type Stats struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Tally computes outcome counts over records.
func Tally(records []Record) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case mailer.StatusSent:
			s.Sent++
		case mailer.StatusFailed:
			s.Failed++
		}
	}
	return s
}
