package mailer

import (
	"context"
	"errors"

	"github.com/heraldhq/herald/pkg/markup"
)

// DefaultSenderName is the display name used when none is configured.
const DefaultSenderName = "Sender"

// Message describes one personalized campaign email before formatting.
// Body carries the raw composer text; the gateway converts it to HTML.
type Message struct {
	RecipientEmail string
	RecipientName  string
	Subject        string
	Body           string
	ImageURL       string
	FromEmail      string
	FromName       string
}

// Gateway turns one personalized message into a provider request and
// classifies the outcome. It owns the outbound HTML document shape;
// callers keep the raw subject/body for the audit trail.
type Gateway struct {
	sender Sender
}

// NewGateway creates a Gateway over the given provider adapter.
func NewGateway(sender Sender) *Gateway {
	return &Gateway{sender: sender}
}

// Send validates preconditions, formats the message, and submits it.
// Precondition failures reject before any network call so the caller
// writes no history record for them.
func (g *Gateway) Send(ctx context.Context, msg Message) (*Result, error) {
	if g.sender == nil || msg.FromEmail == "" {
		return nil, ErrNotConfigured
	}
	if msg.RecipientEmail == "" {
		return nil, ErrNoRecipient
	}

	fromName := msg.FromName
	if fromName == "" {
		fromName = DefaultSenderName
	}

	email := &Email{
		From:    Recipient(fromName, msg.FromEmail),
		To:      msg.RecipientEmail,
		Subject: msg.Subject,
		HTML:    markup.Document(markup.Inline(msg.Body), msg.ImageURL),
	}

	result, err := g.sender.Send(ctx, email)
	if err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	return result, nil
}
