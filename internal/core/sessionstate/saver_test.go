package sessionstate

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSnapshotStore records saves and clears for saver tests.
type memSnapshotStore struct {
	mu      sync.Mutex
	saved   []Snapshot
	cleared int
}

func (m *memSnapshotStore) Save(snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, snap)
	return nil
}

func (m *memSnapshotStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
	return nil
}

func (m *memSnapshotStore) savedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func (m *memSnapshotStore) last() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[len(m.saved)-1]
}

func TestSaver_DebounceCoalesces(t *testing.T) {
	store := &memSnapshotStore{}
	saver := NewSaver(store, zerolog.Nop(), WithDebounce(20*time.Millisecond))

	saver.Queue(Snapshot{Timestamp: 1})
	saver.Queue(Snapshot{Timestamp: 2})
	saver.Queue(Snapshot{Timestamp: 3})

	require.Eventually(t, func() bool {
		return store.savedCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Last write wins; earlier snapshots were superseded before the
	// debounce fired.
	assert.EqualValues(t, 3, store.last().Timestamp)
}

func TestSaver_FlushWritesPending(t *testing.T) {
	store := &memSnapshotStore{}
	saver := NewSaver(store, zerolog.Nop(), WithDebounce(time.Hour))

	saver.Queue(Snapshot{Timestamp: 42})
	saver.Flush()

	require.Equal(t, 1, store.savedCount())
	assert.EqualValues(t, 42, store.last().Timestamp)

	// Nothing dirty, nothing written.
	saver.Flush()
	assert.Equal(t, 1, store.savedCount())
}

func TestSaver_ClearDropsPendingWrite(t *testing.T) {
	store := &memSnapshotStore{}
	saver := NewSaver(store, zerolog.Nop(), WithDebounce(10*time.Millisecond))

	saver.Queue(Snapshot{Timestamp: 7})
	saver.Clear()

	assert.Equal(t, 1, store.cleared)

	// The queued snapshot must not surface after the clear.
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, store.savedCount())
}
