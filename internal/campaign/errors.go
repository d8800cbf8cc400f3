package campaign

import "errors"

var (
	// ErrNoRecipients indicates a send was requested with every recipient
	// deselected.
	ErrNoRecipients = errors.New("campaign: no recipients selected")

	// ErrNotConfigured indicates sending identity or credentials are
	// missing; nothing was attempted and no history was written.
	ErrNotConfigured = errors.New("campaign: sending is not configured")

	// ErrVerificationFailed indicates the secret code did not match; the
	// run stays in AwaitingConfirmation and the code can be retried.
	ErrVerificationFailed = errors.New("campaign: verification code rejected")

	// ErrRunFrozen indicates an attempt to change the recipient set after
	// sending started.
	ErrRunFrozen = errors.New("campaign: run already started, recipient set is frozen")

	// ErrUnknownRecipient indicates a toggle for an email not in the plan.
	ErrUnknownRecipient = errors.New("campaign: recipient not in plan")
)
