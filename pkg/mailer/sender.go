package mailer

import "context"

// Sender is the minimal interface a delivery provider adapter implements.
//
// A provider rejection (the message was submitted and refused) is reported
// as a Result with StatusFailed and a nil error; the campaign loop records
// it and moves on. A non-nil error means the attempt itself could not be
// made (transport fault, cancelled context) and aborts the run.
type Sender interface {
	Send(ctx context.Context, email *Email) (*Result, error)
}
