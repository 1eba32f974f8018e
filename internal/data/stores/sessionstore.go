package stores

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ventecheck/ventecheck/internal/core/sessionstate"
)

// SessionKey is the key-value document holding the in-progress checklist
// snapshot.
const SessionKey = "checklist-session-state"

// SessionStore persists checklist snapshots. It implements
// sessionstate.Store for writes; Load applies the staleness and version
// rules on read.
type SessionStore struct {
	kv  *KVStore
	now func() time.Time
}

var _ sessionstate.Store = (*SessionStore)(nil)

// NewSessionStore creates a session snapshot store.
func NewSessionStore(kv *KVStore) *SessionStore {
	return &SessionStore{kv: kv, now: time.Now}
}

// Save writes the snapshot.
func (s *SessionStore) Save(snap sessionstate.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.kv.Set(SessionKey, data)
}

// Load returns the stored snapshot. Failure modes map to sentinels the
// caller recovers from by starting fresh: ErrNotFound (nothing stored),
// ErrStale (older than the maximum age; the snapshot is deleted), ErrCorrupt
// (deserialization or version mismatch; the snapshot is deleted so it is
// never partially applied).
func (s *SessionStore) Load() (sessionstate.Snapshot, error) {
	data, err := s.kv.Get(SessionKey)
	if err != nil {
		return sessionstate.Snapshot{}, err
	}

	var snap sessionstate.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		_ = s.kv.Remove(SessionKey)
		return sessionstate.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, SessionKey, err)
	}

	if snap.Version != sessionstate.Version {
		_ = s.kv.Remove(SessionKey)
		return sessionstate.Snapshot{}, fmt.Errorf("%w: version %q", ErrCorrupt, snap.Version)
	}

	if snap.Stale(s.now()) {
		_ = s.kv.Remove(SessionKey)
		return sessionstate.Snapshot{}, ErrStale
	}

	return snap, nil
}

// Clear removes the stored snapshot.
func (s *SessionStore) Clear() error {
	return s.kv.Remove(SessionKey)
}
