// Package mailgun implements mailer.Sender on the Mailgun messages API.
package mailgun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/heraldhq/herald/pkg/mailer"
)

// sendTimeout bounds one API call; Mailgun normally answers well under this.
const sendTimeout = 30 * time.Second

// Sender implements mailer.Sender using the Mailgun API.
type Sender struct {
	client *mailgun.MailgunImpl
}

// New creates a new Mailgun sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mailgun: API key is required")
	}
	if cfg.Domain == "" {
		return nil, fmt.Errorf("mailgun: domain is required")
	}

	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.Region == "eu" {
		mg.SetAPIBase("https://api.eu.mailgun.net/v3")
	}

	return &Sender{client: mg}, nil
}

// Send implements mailer.Sender. A non-2xx API response is classified as
// a failed result; transport faults surface as errors.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Result, error) {
	m := s.client.NewMessage(email.From, email.Subject, "", email.To)
	m.SetHtml(email.HTML)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := s.client.Send(ctx, m)
	if err != nil {
		var unexpected *mailgun.UnexpectedResponseError
		if errors.As(err, &unexpected) {
			return &mailer.Result{Status: mailer.StatusFailed}, nil
		}
		return nil, fmt.Errorf("mailgun: failed to send email: %w", err)
	}

	return &mailer.Result{Status: mailer.StatusSent, MessageID: id}, nil
}
