package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have a recipient")

	// ErrNotConfigured indicates the sending identity (from address) is missing.
	ErrNotConfigured = errors.New("mailer is not configured")

	// ErrSendFailed indicates the delivery attempt could not be made.
	ErrSendFailed = errors.New("failed to send email")
)
