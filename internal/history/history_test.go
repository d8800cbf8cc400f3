package history_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/pkg/mailer"
)

func TestTally(t *testing.T) {
	t.Parallel()

	records := []history.Record{
		{Status: mailer.StatusSent},
		{Status: mailer.StatusFailed},
		{Status: mailer.StatusSent},
	}

	stats := history.Tally(records)
	assert.Equal(t, history.Stats{Total: 3, Sent: 2, Failed: 1}, stats)
	assert.Equal(t, history.Stats{}, history.Tally(nil))
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	sentAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []history.Record{
		{
			RecipientEmail: "a@example.com",
			RecipientName:  "A",
			Subject:        "Hello A",
			Status:         mailer.StatusSent,
			SentAt:         &sentAt,
			CreatedAt:      sentAt,
		},
		{
			RecipientEmail: "b@example.com",
			RecipientName:  "B",
			Subject:        "Hello B",
			Status:         mailer.StatusFailed,
			CreatedAt:      sentAt,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, history.ExportCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Email,Name,Subject,Status,Sent At,Created At", lines[0])
	assert.Contains(t, lines[1], "a@example.com")
	assert.Contains(t, lines[1], "2026-03-01T12:00:00Z")
	assert.Contains(t, lines[2], "failed")
	// Failed rows carry no sent timestamp.
	assert.Contains(t, lines[2], ",failed,,")
}
