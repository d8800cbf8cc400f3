// Package mailer provides the outbound side of the campaign pipeline: a
// provider-agnostic Sender interface, provider adapters in subpackages
// (mailgun, resend), and a Gateway that formats one personalized message
// and classifies the delivery outcome.
//
// Delivery outcomes are deliberately split in two: a Result with
// StatusFailed means the provider refused the message and the campaign
// loop should keep going; an error means the attempt could not be made at
// all and the run aborts with partial progress. Callers persist one audit
// record per classified attempt regardless of status.
package mailer
