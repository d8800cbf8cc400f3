package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldhq/herald/internal/campaign"
	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/internal/handlers"
	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/internal/storage/memory"
	"github.com/heraldhq/herald/internal/verify"
	"github.com/heraldhq/herald/pkg/mailer"
	"github.com/heraldhq/herald/pkg/storage"
)

// queueSender accepts every send and records the submitted emails.
type queueSender struct {
	emails []*mailer.Email
	fail   bool
}

func (s *queueSender) Send(_ context.Context, email *mailer.Email) (*mailer.Result, error) {
	if s.fail {
		return nil, errors.New("provider unreachable")
	}
	s.emails = append(s.emails, email)
	return &mailer.Result{Status: mailer.StatusSent, MessageID: "mg-test"}, nil
}

type testEnv struct {
	store  *memory.Store
	sender *queueSender
	server *handlers.Server
}

func newTestEnv(t *testing.T, secret string, opts ...handlers.Option) *testEnv {
	t.Helper()

	store := memory.New()
	require.NoError(t, store.Settings.InsertSettings(context.Background(), config.Settings{
		Domain:    "mg.example.com",
		FromEmail: "noreply@example.com",
		FromName:  "Acme",
	}))

	sender := &queueSender{}
	provider := config.NewStoreProvider(store.Settings)
	svc := campaign.NewService(sender, provider, store.History, verify.New(secret),
		campaign.WithDelay(time.Millisecond))

	server := handlers.NewServer(store.Contacts, provider, store.History, svc, opts...)
	return &testEnv{store: store, sender: sender, server: server}
}

func (e *testEnv) seedContacts(t *testing.T, contacts ...contact.Contact) {
	t.Helper()
	require.NoError(t, e.store.Contacts.Upsert(context.Background(), contacts))
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func TestConfigEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("returns stored settings without credentials", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodGet, "/api/config", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "apiKey")

		var resp struct {
			Settings *config.Settings `json:"settings"`
			Mutable  bool             `json:"mutable"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Settings)
		assert.Equal(t, "mg.example.com", resp.Settings.Domain)
		assert.True(t, resp.Mutable)
	})

	t.Run("first stored write wins", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodPost, "/api/config", map[string]string{
			"mailgunDomain": "other.example.com",
			"fromEmail":     "new@example.com",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Settings *config.Settings `json:"settings"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "mg.example.com", resp.Settings.Domain)
	})

	t.Run("save without required fields", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodPost, "/api/config", map[string]string{"fromName": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContactEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("list with search filter", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.seedContacts(t,
			contact.Contact{Email: "amy@example.com", Name: "Amy"},
			contact.Contact{Email: "bob@example.com", Name: "Bob"},
		)

		rec := env.do(t, http.MethodGet, "/api/contacts?q=amy", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var contacts []contact.Contact
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
		require.Len(t, contacts, 1)
		assert.Equal(t, "amy@example.com", contacts[0].Email)
	})

	t.Run("empty list is a JSON array", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodGet, "/api/contacts", nil)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("sync upserts", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodPost, "/api/contacts/sync", []contact.Contact{
			{Email: "amy@example.com", Name: "Amy"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"synced":1}`, rec.Body.String())
	})

	t.Run("csv import", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")

		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		part, err := form.CreateFormFile("file", "contacts.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte("email,name,company\namy@example.com,Amy,Acme\n,NoEmail,Dropped\n"))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", &buf)
		req.Header.Set("Content-Type", form.FormDataContentType())
		rec := httptest.NewRecorder()
		env.server.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"imported":1}`, rec.Body.String())

		stored, err := env.store.Contacts.List(context.Background())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Acme", stored[0].CustomFields["company"])
	})

	t.Run("csv export round trip", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.seedContacts(t, contact.Contact{Email: "amy@example.com", Name: "Amy"})

		rec := env.do(t, http.MethodGet, "/api/contacts/export", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Body.String(), "amy@example.com")
	})
}

func TestPreviewEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodPost, "/api/preview", map[string]any{
		"body":   "১। Hello {{name}}\n<script>alert(1)</script>",
		"values": map[string]string{"name": "Amy"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		HTML      string   `json:"html"`
		Variables []string `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, "<h3>Hello Amy</h3>")
	assert.NotContains(t, resp.HTML, "<script>")
	assert.Equal(t, []string{"name"}, resp.Variables)
}

// parseSSE splits a text/event-stream body into event name and data
// payload pairs.
func parseSSE(t *testing.T, body string) []struct{ event, data string } {
	t.Helper()

	var events []struct{ event, data string }
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		var ev struct{ event, data string }
		for _, line := range strings.Split(block, "\n") {
			if after, ok := strings.CutPrefix(line, "event: "); ok {
				ev.event = after
			}
			if after, ok := strings.CutPrefix(line, "data: "); ok {
				ev.data = after
			}
		}
		if ev.event != "" {
			events = append(events, ev)
		}
	}
	return events
}

func TestCampaignFlow(t *testing.T) {
	t.Parallel()

	t.Run("plan then send streams progress and summary", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.seedContacts(t,
			contact.Contact{Email: "amy@example.com", Name: "Amy"},
			contact.Contact{Email: "bob@example.com", Name: "Bob"},
		)

		rec := env.do(t, http.MethodPost, "/api/campaigns/plan", map[string]string{
			"subject": "Hi {{name}}",
			"body":    "Hello {{name}}",
			"mode":    "testing",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var plan struct {
			RunID      string               `json:"runId"`
			Recipients []campaign.Recipient `json:"recipients"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
		require.Len(t, plan.Recipients, 2)
		assert.Equal(t, "Hi Amy", plan.Recipients[0].Subject)

		rec = env.do(t, http.MethodPost, "/api/campaigns/send", map[string]any{
			"runId": plan.RunID,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

		events := parseSSE(t, rec.Body.String())
		require.Len(t, events, 3)
		assert.Equal(t, "progress", events[0].event)
		assert.Equal(t, "progress", events[1].event)
		assert.Equal(t, "summary", events[2].event)

		var summary campaign.Summary
		require.NoError(t, json.Unmarshal([]byte(events[2].data), &summary))
		assert.Equal(t, 2, summary.Sent)
		assert.Len(t, env.sender.emails, 2)
	})

	t.Run("excluded recipients are not sent", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.seedContacts(t,
			contact.Contact{Email: "amy@example.com", Name: "Amy"},
			contact.Contact{Email: "bob@example.com", Name: "Bob"},
		)

		rec := env.do(t, http.MethodPost, "/api/campaigns/plan", map[string]string{
			"subject": "s", "body": "b", "mode": "testing",
		})
		var plan struct {
			RunID string `json:"runId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))

		rec = env.do(t, http.MethodPost, "/api/campaigns/send", map[string]any{
			"runId":    plan.RunID,
			"excluded": []string{"bob@example.com"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, env.sender.emails, 1)
		assert.Contains(t, env.sender.emails[0].To, "amy@example.com")
	})

	t.Run("full send with wrong code gets 403 before streaming", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "s3cret")
		env.seedContacts(t, contact.Contact{Email: "amy@example.com", Name: "Amy"})

		rec := env.do(t, http.MethodPost, "/api/campaigns/plan", map[string]string{
			"subject": "s", "body": "b", "mode": "normal",
		})
		var plan struct {
			RunID string `json:"runId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))

		rec = env.do(t, http.MethodPost, "/api/campaigns/send", map[string]any{
			"runId": plan.RunID,
			"code":  "wrong",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, env.sender.emails)
	})

	t.Run("unknown run is a 404", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodPost, "/api/campaigns/send", map[string]any{
			"runId": "no-such-run",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("transport fault ends the stream with an error event", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.sender.fail = true
		env.seedContacts(t, contact.Contact{Email: "amy@example.com", Name: "Amy"})

		rec := env.do(t, http.MethodPost, "/api/campaigns/plan", map[string]string{
			"subject": "s", "body": "b", "mode": "normal",
		})
		var plan struct {
			RunID string `json:"runId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))

		rec = env.do(t, http.MethodPost, "/api/campaigns/send", map[string]any{
			"runId": plan.RunID,
		})
		// The fault happens on the first attempt, before any progress
		// event, so the client gets a status code instead of a stream.
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	now := time.Now()
	sentAt := now
	require.NoError(t, env.store.History.Append(context.Background(), &history.Record{
		RecipientEmail: "amy@example.com",
		Subject:        "Hi",
		Status:         mailer.StatusSent,
		SentAt:         &sentAt,
		CreatedAt:      now,
	}))
	require.NoError(t, env.store.History.Append(context.Background(), &history.Record{
		RecipientEmail: "bob@example.com",
		Subject:        "Hi",
		Status:         mailer.StatusFailed,
		CreatedAt:      now,
	}))

	rec := env.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Records []history.Record `json:"records"`
		Stats   history.Stats    `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 2)
	assert.Equal(t, 2, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Sent)
	assert.Equal(t, 1, resp.Stats.Failed)

	rec = env.do(t, http.MethodGet, "/api/history/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "amy@example.com")
}

func TestUploadWithoutStorage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodPost, "/api/uploads/image", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/uploads/image?key=campaign/img.png", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// fakeUploads records deleted keys without touching a real bucket.
type fakeUploads struct {
	deleted []string
}

func (f *fakeUploads) Put(_ context.Context, _ io.Reader, _ int64) (*storage.FileInfo, error) {
	return &storage.FileInfo{Key: "campaign/img.png", URL: "https://cdn.example.com/campaign/img.png"}, nil
}

func (f *fakeUploads) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestDeleteImage(t *testing.T) {
	t.Parallel()

	uploads := &fakeUploads{}
	env := newTestEnv(t, "", handlers.WithUploads(uploads))

	t.Run("requires a key", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/uploads/image", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, uploads.deleted)
	})

	t.Run("removes the stored image", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/uploads/image?key=campaign/img.png", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted":"campaign/img.png"}`, rec.Body.String())
		assert.Equal(t, []string{"campaign/img.png"}, uploads.deleted)
	})
}
