package mailer

import "fmt"

// Status classifies the outcome of one delivery attempt.
type Status string

const (
	// StatusSent means the provider accepted the message.
	StatusSent Status = "sent"
	// StatusFailed means the provider rejected the message (non-2xx).
	StatusFailed Status = "failed"
)

// Result is the classified outcome of a delivery attempt. MessageID is
// set only when the provider accepted the message.
type Result struct {
	Status    Status
	MessageID string
}

// Email is a fully-prepared message ready for a provider adapter.
type Email struct {
	From    string // RFC 5322 display-name-and-address
	To      string
	Subject string
	HTML    string
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
