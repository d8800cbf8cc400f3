package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/internal/storage/memory"
	"github.com/heraldhq/herald/pkg/mailer"
)

func TestContactStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("upsert preserves insertion order", func(t *testing.T) {
		t.Parallel()

		store := memory.New()
		err := store.Contacts.Upsert(ctx, []contact.Contact{
			{Email: "a@example.com", Name: "A"},
			{Email: "b@example.com", Name: "B"},
		})
		require.NoError(t, err)

		contacts, err := store.Contacts.List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, "a@example.com", contacts[0].Email)
	})

	t.Run("upsert updates existing by email without reordering", func(t *testing.T) {
		t.Parallel()

		store := memory.New()
		require.NoError(t, store.Contacts.Upsert(ctx, []contact.Contact{
			{Email: "a@example.com", Name: "A"},
			{Email: "b@example.com", Name: "B"},
		}))
		require.NoError(t, store.Contacts.Upsert(ctx, []contact.Contact{
			{Email: "a@example.com", Name: "A2", CustomFields: map[string]string{"company": "Acme"}},
		}))

		contacts, err := store.Contacts.List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, "A2", contacts[0].Name)
		assert.Equal(t, "Acme", contacts[0].CustomFields["company"])
	})
}

func TestSettingsStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.New()

	s, err := store.Settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, store.Settings.InsertSettings(ctx, config.Settings{Domain: "first", FromEmail: "a@example.com"}))
	require.NoError(t, store.Settings.InsertSettings(ctx, config.Settings{Domain: "second", FromEmail: "b@example.com"}))

	s, err = store.Settings.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "first", s.Domain)
}

func TestHistoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.New()
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		rec := &history.Record{
			ID:             uuid.New(),
			RecipientEmail: email,
			Status:         mailer.StatusSent,
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.History.Append(ctx, rec))
	}

	t.Run("newest first", func(t *testing.T) {
		records, err := store.History.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "c@example.com", records[0].RecipientEmail)
		assert.Equal(t, "a@example.com", records[2].RecipientEmail)
	})

	t.Run("limit applies", func(t *testing.T) {
		records, err := store.History.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "c@example.com", records[0].RecipientEmail)
	})
}
