package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventecheck/ventecheck/internal/core/sessionstate"
)

func testSnapshot(captured time.Time) sessionstate.Snapshot {
	return sessionstate.Snapshot{
		ClientFields: map[string]string{"client-nom": "Dupont"},
		ActiveView:   "checklist",
		Timestamp:    captured.UnixMilli(),
		Version:      sessionstate.Version,
	}
}

func TestSessionStore_SaveLoad(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	store := NewSessionStore(NewKVStore(t.TempDir()))
	store.now = func() time.Time { return now }

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(testSnapshot(now.Add(-time.Hour))))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Dupont", snap.ClientFields["client-nom"])
}

func TestSessionStore_StaleSnapshotDeleted(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	store := NewSessionStore(NewKVStore(t.TempDir()))
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(testSnapshot(now.Add(-25*time.Hour))))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrStale)

	// The stale snapshot was removed, not kept around.
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_VersionMismatchDiscarded(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	store := NewSessionStore(NewKVStore(t.TempDir()))
	store.now = func() time.Time { return now }

	snap := testSnapshot(now)
	snap.Version = "0.9"
	require.NoError(t, store.Save(snap))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_CorruptSnapshotDiscarded(t *testing.T) {
	kv := NewKVStore(t.TempDir())
	store := NewSessionStore(kv)

	require.NoError(t, kv.Set(SessionKey, []byte("{pas du json")))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Clear(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	store := NewSessionStore(NewKVStore(t.TempDir()))
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(testSnapshot(now)))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}
