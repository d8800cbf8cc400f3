package campaign

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/internal/verify"
	"github.com/heraldhq/herald/pkg/logger"
	"github.com/heraldhq/herald/pkg/mailer"
)

// DefaultTestingDelay is the pause before every send but the first in
// testing mode, capping throughput at ten sends per minute.
const DefaultTestingDelay = 6 * time.Second

// Service drives campaign runs end to end.
type Service struct {
	sender   mailer.Sender
	provider config.Provider
	history  history.Store
	gate     *verify.Gate
	delay    time.Duration
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDelay overrides the testing-mode inter-send delay.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a campaign service. A nil sender is allowed and
// makes every send attempt fail fast with ErrNotConfigured.
func NewService(sender mailer.Sender, provider config.Provider, historyStore history.Store, gate *verify.Gate, opts ...Option) *Service {
	s := &Service{
		sender:   sender,
		provider: provider,
		history:  historyStore,
		gate:     gate,
		delay:    DefaultTestingDelay,
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send executes the verify-then-send flow over a confirmed run, emitting
// one progress event per attempt. On an unexpected fault it stops
// immediately and returns the partial summary alongside the error;
// per-recipient provider rejections do not stop the loop.
func (s *Service) Send(ctx context.Context, run *Run, code string, emit func(Progress)) (*Summary, error) {
	if run.state != StateAwaitingConfirmation {
		return nil, ErrRunFrozen
	}

	included := run.included()
	if len(included) == 0 {
		return nil, ErrNoRecipients
	}

	settings, err := s.provider.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if s.sender == nil || !settings.Complete() {
		return nil, ErrNotConfigured
	}

	var warning string
	if run.mode != ModeTesting {
		run.state = StateVerifying
		res := s.gate.Verify(code)
		if !res.Verified {
			run.state = StateAwaitingConfirmation
			return nil, ErrVerificationFailed
		}
		warning = res.Warning
		if warning != "" {
			s.log.WarnContext(ctx, "campaign verification gate disabled", slog.String("mode", string(run.mode)))
		}
	}

	run.state = StateSending
	gateway := mailer.NewGateway(s.sender)
	total := len(included)

	for i, rcpt := range included {
		if i > 0 && run.mode == ModeTesting {
			if err := sleep(ctx, s.delay); err != nil {
				return s.abort(run, total, warning), err
			}
		}

		result, err := gateway.Send(ctx, mailer.Message{
			RecipientEmail: rcpt.Contact.Email,
			RecipientName:  rcpt.Contact.Name,
			Subject:        rcpt.Subject,
			Body:           rcpt.Body,
			ImageURL:       run.imageURL,
			FromEmail:      settings.FromEmail,
			FromName:       settings.FromName,
		})
		if err != nil {
			s.log.ErrorContext(ctx, "campaign send fault, aborting run",
				slog.String("recipient", rcpt.Contact.Email),
				slog.Int("cursor", run.cursor),
				slog.String("error", err.Error()),
			)
			return s.abort(run, total, warning), err
		}

		run.cursor++
		if result.Status == mailer.StatusSent {
			run.sent++
		}

		// One audit record per attempt, failures included. The record
		// echoes what was attempted, not the formatted HTML.
		rec := &history.Record{
			ID:                uuid.New(),
			RecipientEmail:    rcpt.Contact.Email,
			RecipientName:     rcpt.Contact.Name,
			Subject:           rcpt.Subject,
			Body:              rcpt.Body,
			ImageURL:          run.imageURL,
			Status:            result.Status,
			ProviderMessageID: result.MessageID,
			CreatedAt:         time.Now(),
		}
		if result.Status == mailer.StatusSent {
			sentAt := time.Now()
			rec.SentAt = &sentAt
		}
		if err := s.history.Append(ctx, rec); err != nil {
			s.log.ErrorContext(ctx, "campaign history write failed, aborting run",
				slog.String("recipient", rcpt.Contact.Email),
				slog.String("error", err.Error()),
			)
			return s.abort(run, total, warning), err
		}

		if emit != nil {
			emit(Progress{Cursor: run.cursor, Total: total})
		}
	}

	run.state = StateCompleted
	return &Summary{Sent: run.sent, Total: total, Warning: warning}, nil
}

// abort finalizes a faulted run with its partial counts.
func (s *Service) abort(run *Run, total int, warning string) *Summary {
	run.state = StateCompleted
	return &Summary{Sent: run.sent, Total: total, Aborted: true, Warning: warning}
}

// sleep pauses for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
