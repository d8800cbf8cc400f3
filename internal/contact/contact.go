// Package contact holds the recipient directory: the Contact model, CSV
// import/export, and the persistence contract. Custom CSV columns ride
// along as an open string-to-string bag and become personalization
// variables in the composer.
package contact

import (
	"context"
	"fmt"
	"strings"
)

// Contact is one addressable recipient. Email is the unique key.
type Contact struct {
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// Store is the persistence contract for contacts.
type Store interface {
	// List returns all contacts in load order.
	List(ctx context.Context) ([]Contact, error)
	// Upsert inserts or updates contacts keyed by email.
	Upsert(ctx context.Context, contacts []Contact) error
}

// Filter returns the contacts whose email or name contains term,
// case-insensitively. An empty term returns the input unchanged.
func Filter(contacts []Contact, term string) []Contact {
	if term == "" {
		return contacts
	}
	term = strings.ToLower(term)

	var out []Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Email), term) ||
			strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

// Sample generates n placeholder contacts for trying the composer before
// importing a real list.
func Sample(n int) []Contact {
	contacts := make([]Contact, 0, n)
	for i := 1; i <= n; i++ {
		contacts = append(contacts, Contact{
			Email:        fmt.Sprintf("user%d@example.com", i),
			Name:         fmt.Sprintf("User %d", i),
			CustomFields: map[string]string{"company": fmt.Sprintf("Company %d", (i+9)/10)},
		})
	}
	return contacts
}
