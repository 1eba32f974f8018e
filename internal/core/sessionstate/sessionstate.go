// Package sessionstate snapshots the in-progress checklist across restarts.
// Snapshots are versioned and expire after 24 hours; a stale or corrupt
// snapshot is discarded, never partially applied.
package sessionstate

import (
	"time"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// Version is the persisted snapshot format tag. A mismatch on read discards
// the snapshot; no migration is attempted.
const Version = "1.0"

// MaxAge is how long a snapshot stays restorable.
const MaxAge = 24 * time.Hour

// Snapshot is the serialized form of an in-progress checklist.
type Snapshot struct {
	ClientFields  map[string]string `json:"client_fields,omitempty"`
	Toggles       map[string]bool   `json:"toggles,omitempty"`
	ServiceStatus map[string]string `json:"service_status,omitempty"`
	OffsetTier    string            `json:"offset_tier,omitempty"`
	CallStartedAt int64             `json:"call_started_at,omitempty"` // epoch ms
	CallActive    bool              `json:"call_active"`
	ActiveView    string            `json:"active_view"`
	Timestamp     int64             `json:"timestamp"` // capture time, epoch ms
	Version       string            `json:"version"`
}

// Capture freezes the current checklist into a Snapshot stamped at now.
func Capture(s *checklist.State, now time.Time) Snapshot {
	snap := Snapshot{
		ClientFields:  make(map[string]string, len(s.ClientFields)),
		Toggles:       make(map[string]bool, len(s.Toggles)),
		ServiceStatus: make(map[string]string, len(s.ServiceStatus)),
		OffsetTier:    s.OffsetTier,
		CallActive:    s.CallActive,
		ActiveView:    string(s.ActiveView),
		Timestamp:     now.UnixMilli(),
		Version:       Version,
	}
	for k, v := range s.ClientFields {
		snap.ClientFields[k] = v
	}
	for k, v := range s.Toggles {
		snap.Toggles[k] = v
	}
	for k, v := range s.ServiceStatus {
		snap.ServiceStatus[k] = string(v)
	}
	if !s.CallStartedAt.IsZero() {
		snap.CallStartedAt = s.CallStartedAt.UnixMilli()
	}
	return snap
}

// Stale reports whether the snapshot was captured more than MaxAge before
// now.
func (snap Snapshot) Stale(now time.Time) bool {
	captured := time.UnixMilli(snap.Timestamp)
	return now.Sub(captured) > MaxAge
}

// Restore merges the snapshot over a fresh default state: stored values
// override defaults, everything else keeps its default. The caller re-runs
// field validation to restore visual markers.
func (snap Snapshot) Restore(reg *registry.Registry) *checklist.State {
	s := checklist.NewState(reg)

	for id, value := range snap.ClientFields {
		s.SetField(id, value)
	}
	for id, checked := range snap.Toggles {
		s.SetToggle(id, checked)
	}
	for id, status := range snap.ServiceStatus {
		switch checklist.Status(status) {
		case checklist.StatusNotOffered, checklist.StatusOffered, checklist.StatusSold:
			s.SetServiceStatus(id, checklist.Status(status))
		}
	}
	if snap.OffsetTier != "" && reg.TierInfo(snap.OffsetTier) != "" {
		s.OffsetTier = snap.OffsetTier
	}
	if snap.CallStartedAt > 0 {
		s.CallStartedAt = time.UnixMilli(snap.CallStartedAt)
	}
	s.CallActive = snap.CallActive && !s.CallStartedAt.IsZero()

	switch checklist.View(snap.ActiveView) {
	case checklist.ViewChecklist, checklist.ViewHistory:
		s.ActiveView = checklist.View(snap.ActiveView)
	}

	return s
}
