// Package checklist defines the in-progress sale state and the pure rule
// engine evaluated against it: field validation, the sale validation
// verdict, and the progress projection.
package checklist

import (
	"time"

	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// Status is the selling status of a status-driven service.
type Status string

const (
	StatusNotOffered Status = "non"
	StatusOffered    Status = "propose"
	StatusSold       Status = "vendu"
)

// Label returns the user-facing label for the status.
func (s Status) Label() string {
	switch s {
	case StatusOffered:
		return "Proposé"
	case StatusSold:
		return "Vendu"
	default:
		return "Non proposé"
	}
}

// Next cycles to the following status. Used by the selector UI.
func (s Status) Next() Status {
	switch s {
	case StatusNotOffered:
		return StatusOffered
	case StatusOffered:
		return StatusSold
	default:
		return StatusNotOffered
	}
}

// View identifies which screen of the tool is active.
type View string

const (
	ViewChecklist View = "checklist"
	ViewHistory   View = "history"
)

// State is the uncommitted, in-progress checklist. It is mutated on every
// edit and consumed (then reset) when a sale is committed. It is never
// written to the history directly.
type State struct {
	ClientFields  map[string]string
	Toggles       map[string]bool
	ServiceStatus map[string]Status
	OffsetTier    string

	CallStartedAt time.Time // zero when no call was started
	CallActive    bool      // invariant: true implies CallStartedAt is set

	ActiveView View
}

// NewState returns an empty checklist with registry defaults applied.
func NewState(reg *registry.Registry) *State {
	s := &State{
		ClientFields:  make(map[string]string),
		Toggles:       make(map[string]bool),
		ServiceStatus: make(map[string]Status),
		OffsetTier:    reg.DefaultTier(),
		ActiveView:    ViewChecklist,
	}
	for _, svc := range reg.Services() {
		if svc.Statuses {
			s.ServiceStatus[svc.ID] = StatusNotOffered
		}
	}
	return s
}

// SetField stores a trimmed client field value. Setting an empty value
// removes the entry.
func (s *State) SetField(id, value string) {
	value = trim(value)
	if value == "" {
		delete(s.ClientFields, id)
		return
	}
	s.ClientFields[id] = value
}

// Field returns the stored value for a client field, "" when unset.
func (s *State) Field(id string) string {
	return s.ClientFields[id]
}

// SetToggle stores a toggle state. Unknown identifiers are stored as-is;
// the registry decides whether they count toward anything.
func (s *State) SetToggle(id string, checked bool) {
	if !checked {
		delete(s.Toggles, id)
		return
	}
	s.Toggles[id] = true
}

// Toggle returns the stored state of a toggle, false when unset.
func (s *State) Toggle(id string) bool {
	return s.Toggles[id]
}

// SetServiceStatus stores the selling status of a status-driven service.
func (s *State) SetServiceStatus(id string, status Status) {
	s.ServiceStatus[id] = status
}

// Service returns the status of a status-driven service, defaulting to
// not offered.
func (s *State) Service(id string) Status {
	if st, ok := s.ServiceStatus[id]; ok {
		return st
	}
	return StatusNotOffered
}

// StartCall marks the call as running from the given instant.
func (s *State) StartCall(now time.Time) {
	s.CallStartedAt = now
	s.CallActive = true
}

// StopCall ends the running call and returns its duration in whole seconds.
// Returns 0 when no call was started.
func (s *State) StopCall(now time.Time) int {
	s.CallActive = false
	if s.CallStartedAt.IsZero() {
		return 0
	}
	return int(now.Sub(s.CallStartedAt) / time.Second)
}

// CallDuration returns the elapsed whole seconds since the call started, or
// 0 when no call was started.
func (s *State) CallDuration(now time.Time) int {
	if s.CallStartedAt.IsZero() {
		return 0
	}
	d := int(now.Sub(s.CallStartedAt) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Reset replaces the state with a fresh one, keeping only the active view.
func (s *State) Reset(reg *registry.Registry) {
	view := s.ActiveView
	*s = *NewState(reg)
	s.ActiveView = view
}

// Dirty reports whether the state holds any user input worth persisting.
func (s *State) Dirty() bool {
	if len(s.ClientFields) > 0 || len(s.Toggles) > 0 {
		return true
	}
	for _, st := range s.ServiceStatus {
		if st != StatusNotOffered {
			return true
		}
	}
	return s.CallActive
}
