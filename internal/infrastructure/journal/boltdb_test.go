package journal_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/boilerplate/internal/infrastructure/journal"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "nested", "journal.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, op := range []string{"create", "update", "delete"} {
		require.NoError(t, store.Append(journal.Entry{
			Entity:    journal.EntityTask,
			Operation: op,
			RecordID:  "1",
			Data:      json.RawMessage(`{"id":"1"}`),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	recent, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "delete", recent[0].Operation)
	assert.Equal(t, "update", recent[1].Operation)
	assert.NotEmpty(t, recent[0].ID)
}

func TestCleanupDropsOnlyOlderEntries(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(journal.Entry{
			Entity:    journal.EntityUser,
			Operation: "create",
			RecordID:  "u",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	removed, err := store.Cleanup(base.Add(3 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestClosedStore(t *testing.T) {
	var store *journal.Store
	assert.Error(t, store.Append(journal.Entry{}))
	assert.NoError(t, store.Close())
}
