// Package campaign implements the send pipeline: planning a recipient
// list from contacts and a template, the confirm/verify/send state
// machine, the throttled testing-mode loop, and result aggregation.
package campaign

import (
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/pkg/template"
)

// Mode selects between a capped, throttled validation send and a full one.
type Mode string

const (
	// ModeTesting caps the plan at TestingRecipientCap contacts and
	// throttles the loop to one send per DefaultTestingDelay.
	ModeTesting Mode = "testing"
	// ModeNormal sends to the full plan without client-side throttling;
	// rate limiting, if any, is the provider's concern.
	ModeNormal Mode = "normal"
)

// TestingRecipientCap is the fixed ceiling on testing-mode recipients:
// the first five contacts in load order.
const TestingRecipientCap = 5

// Template is the campaign subject/body pair as typed by the operator,
// with {{variable}} placeholders still unresolved.
type Template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Recipient is one planned, personalized send. Included starts true and
// stays independently toggleable until the run enters Sending.
type Recipient struct {
	Contact  contact.Contact `json:"contact"`
	Included bool            `json:"included"`
	Subject  string          `json:"resolvedSubject"`
	Body     string          `json:"resolvedBody"`
}

// Plan resolves the template per contact and produces the planned
// recipient list. Testing mode truncates to the first TestingRecipientCap
// contacts in load order before resolving.
//
// Variables are seeded with the contact name under "name", then overlaid
// with the contact's custom fields; a custom field literally named "name"
// wins over the contact name.
func Plan(contacts []contact.Contact, tpl Template, mode Mode) []Recipient {
	if mode == ModeTesting && len(contacts) > TestingRecipientCap {
		contacts = contacts[:TestingRecipientCap]
	}

	recipients := make([]Recipient, 0, len(contacts))
	for _, c := range contacts {
		values := make(map[string]string, len(c.CustomFields)+1)
		values["name"] = c.Name
		for k, v := range c.CustomFields {
			values[k] = v
		}

		recipients = append(recipients, Recipient{
			Contact:  c,
			Included: true,
			Subject:  template.Substitute(tpl.Subject, values),
			Body:     template.Substitute(tpl.Body, values),
		})
	}
	return recipients
}
