// Package resend implements mailer.Sender on the Resend API. It exists as
// an alternative delivery provider for deployments without a Mailgun
// account; the campaign pipeline is provider-agnostic.
package resend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/resend/resend-go/v3"

	"github.com/heraldhq/herald/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend: API key is required")
	}
	return &Sender{client: resend.NewClient(cfg.APIKey)}, nil
}

// Send implements mailer.Sender. API rejections are classified as failed
// results; a cancelled context or a network failure that never reached
// the API is a transport fault.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Result, error) {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		if isTransportError(ctx, err) {
			return nil, fmt.Errorf("resend: failed to send email: %w", err)
		}
		return &mailer.Result{Status: mailer.StatusFailed}, nil
	}

	return &mailer.Result{Status: mailer.StatusSent, MessageID: sent.Id}, nil
}

// isTransportError reports whether err means the API was never reached:
// a cancelled or expired context, a DNS or dial failure, or any
// url.Error from the HTTP round trip. Errors decoded from an API
// response are provider rejections, not faults.
func isTransportError(ctx context.Context, err error) bool {
	if ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
