package campaign

// State names a phase of the campaign state machine.
type State string

const (
	StateIdle                 State = "idle"
	StatePlanning             State = "planning"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateVerifying            State = "verifying"
	StateSending              State = "sending"
	StateCompleted            State = "completed"
)

// Progress is one observable step of a run: attempts made so far out of
// the included total.
type Progress struct {
	Cursor int `json:"cursor"`
	Total  int `json:"total"`
}

// Summary is the terminal report of a run. Aborted is set when an
// unexpected fault stopped the loop before the last recipient.
type Summary struct {
	Sent    int    `json:"sentCount"`
	Total   int    `json:"total"`
	Aborted bool   `json:"aborted,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// Run is one campaign execution. It is owned exclusively by the
// orchestration flow for its lifetime: the send loop is sequential by
// design and nothing else touches the run while it is suspended between
// throttled sends, so the type carries no locking.
type Run struct {
	recipients []Recipient
	mode       Mode
	imageURL   string

	state  State
	cursor int
	sent   int
}

// NewRun wraps an already-planned recipient list into a run awaiting
// operator confirmation.
func NewRun(recipients []Recipient, mode Mode, imageURL string) *Run {
	return &Run{
		recipients: recipients,
		mode:       mode,
		imageURL:   imageURL,
		state:      StateAwaitingConfirmation,
	}
}

// State returns the current phase.
func (r *Run) State() State { return r.state }

// Mode returns the run mode.
func (r *Run) Mode() Mode { return r.mode }

// Recipients returns a copy of the planned recipient list.
func (r *Run) Recipients() []Recipient {
	out := make([]Recipient, len(r.recipients))
	copy(out, r.recipients)
	return out
}

// Progress reports attempts made so far against the included total.
func (r *Run) Progress() Progress {
	return Progress{Cursor: r.cursor, Total: len(r.included())}
}

// Sent returns the number of accepted deliveries so far.
func (r *Run) Sent() int { return r.sent }

// Toggle flips the inclusion flag of the recipient with the given email.
// The recipient set freezes once sending starts.
func (r *Run) Toggle(email string, included bool) error {
	if r.state != StateAwaitingConfirmation {
		return ErrRunFrozen
	}
	for i := range r.recipients {
		if r.recipients[i].Contact.Email == email {
			r.recipients[i].Included = included
			return nil
		}
	}
	return ErrUnknownRecipient
}

// SetAll bulk-selects or deselects every recipient.
func (r *Run) SetAll(included bool) error {
	if r.state != StateAwaitingConfirmation {
		return ErrRunFrozen
	}
	for i := range r.recipients {
		r.recipients[i].Included = included
	}
	return nil
}

// included snapshots the recipients the loop will iterate, in plan order.
func (r *Run) included() []Recipient {
	var out []Recipient
	for _, rcpt := range r.recipients {
		if rcpt.Included {
			out = append(out, rcpt)
		}
	}
	return out
}
