// Package verify implements the shared-secret confirmation gate required
// before a full (non-testing) campaign send. This is an operator speed
// bump, not an authentication mechanism: one literal string comparison,
// no hashing, no lockout. Treat the secret accordingly.
package verify

// DisabledWarning is surfaced when no secret is configured and the gate
// waves the send through.
const DisabledWarning = "send verification is disabled: no secret code is configured on the server"

// Result is the outcome of one verification attempt.
type Result struct {
	Verified bool
	Warning  string
}

// Gate checks an operator-supplied code against the server-held secret.
type Gate struct {
	secret string
}

// New creates a Gate. An empty secret disables the gate.
func New(secret string) *Gate {
	return &Gate{secret: secret}
}

// Verify compares the supplied code against the configured secret.
// With no secret configured every code passes, with a warning the caller
// must carry forward to the operator.
func (g *Gate) Verify(code string) Result {
	if g.secret == "" {
		return Result{Verified: true, Warning: DisabledWarning}
	}
	return Result{Verified: code == g.secret}
}

// Enabled reports whether a secret is configured.
func (g *Gate) Enabled() bool {
	return g.secret != ""
}
