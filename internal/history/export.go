package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportCSV writes records in the operator-facing export shape.
func ExportCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Email", "Name", "Subject", "Status", "Sent At", "Created At"}); err != nil {
		return fmt.Errorf("history: writing csv header: %w", err)
	}

	for _, r := range records {
		sentAt := ""
		if r.SentAt != nil {
			sentAt = r.SentAt.Format(time.RFC3339)
		}
		row := []string{
			r.RecipientEmail,
			r.RecipientName,
			r.Subject,
			string(r.Status),
			sentAt,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("history: writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
