package contact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoEmailColumn indicates the CSV header lacks the required email column.
var ErrNoEmailColumn = errors.New("contact: csv has no email column")

// ImportCSV parses a header-first CSV into contacts. Rows without an email
// are dropped silently; a missing name falls back to the email local part;
// every other non-empty column lands in CustomFields. Spreadsheet exports
// with a UTF-8/UTF-16 byte-order mark are decoded transparently.
func ImportCSV(r io.Reader) ([]Contact, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoEmailColumn
		}
		return nil, fmt.Errorf("contact: reading csv header: %w", err)
	}

	cols := make([]string, len(header))
	emailIdx := -1
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.ToLower(h))
		if cols[i] == "email" {
			emailIdx = i
		}
	}
	if emailIdx == -1 {
		return nil, ErrNoEmailColumn
	}

	var contacts []Contact
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Reject the whole import rather than sending a partially
			// parsed list.
			return nil, fmt.Errorf("contact: reading csv row: %w", err)
		}

		if emailIdx >= len(row) {
			continue
		}
		email := strings.TrimSpace(row[emailIdx])
		if email == "" {
			continue
		}

		c := Contact{Email: email}
		for i, v := range row {
			if i == emailIdx || i >= len(cols) {
				continue
			}
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if cols[i] == "name" {
				c.Name = v
				continue
			}
			if c.CustomFields == nil {
				c.CustomFields = make(map[string]string)
			}
			c.CustomFields[cols[i]] = v
		}
		if c.Name == "" {
			c.Name, _, _ = strings.Cut(email, "@")
		}

		contacts = append(contacts, c)
	}

	return contacts, nil
}

// ExportCSV writes contacts as CSV with an email,name header followed by
// the union of custom field columns in sorted order. A round trip through
// ImportCSV reproduces every retained row.
func ExportCSV(w io.Writer, contacts []Contact) error {
	fieldSet := make(map[string]struct{})
	for _, c := range contacts {
		for k := range c.CustomFields {
			fieldSet[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(fieldSet))
	for k := range fieldSet {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"email", "name"}, fields...)); err != nil {
		return fmt.Errorf("contact: writing csv header: %w", err)
	}

	row := make([]string, 0, 2+len(fields))
	for _, c := range contacts {
		row = row[:0]
		row = append(row, c.Email, c.Name)
		for _, f := range fields {
			row = append(row, c.CustomFields[f])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("contact: writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
