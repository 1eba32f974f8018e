package checklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ventecheck/ventecheck/internal/core/registry"
)

func TestStatusNext(t *testing.T) {
	assert.Equal(t, StatusOffered, StatusNotOffered.Next())
	assert.Equal(t, StatusSold, StatusOffered.Next())
	assert.Equal(t, StatusNotOffered, StatusSold.Next())
}

func TestStateFields(t *testing.T) {
	reg := registry.New()
	s := NewState(reg)

	s.SetField(registry.FieldNom, "  Dupont  ")
	assert.Equal(t, "Dupont", s.Field(registry.FieldNom))

	// Clearing a field removes it entirely.
	s.SetField(registry.FieldNom, "   ")
	assert.Empty(t, s.Field(registry.FieldNom))
	assert.NotContains(t, s.ClientFields, registry.FieldNom)
}

func TestStateToggles(t *testing.T) {
	reg := registry.New()
	s := NewState(reg)

	assert.False(t, s.Toggle(registry.ToggleRGPD))
	s.SetToggle(registry.ToggleRGPD, true)
	assert.True(t, s.Toggle(registry.ToggleRGPD))

	// Unchecking removes the entry instead of storing false.
	s.SetToggle(registry.ToggleRGPD, false)
	assert.NotContains(t, s.Toggles, registry.ToggleRGPD)
}

func TestStateServiceDefaults(t *testing.T) {
	reg := registry.New()
	s := NewState(reg)

	assert.Equal(t, StatusNotOffered, s.Service(registry.ServiceAXA))
	s.SetServiceStatus(registry.ServiceAXA, StatusSold)
	assert.Equal(t, StatusSold, s.Service(registry.ServiceAXA))
}

func TestCallTimer(t *testing.T) {
	reg := registry.New()
	s := NewState(reg)
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	assert.Zero(t, s.CallDuration(start))

	s.StartCall(start)
	assert.True(t, s.CallActive)
	assert.Equal(t, 95, s.CallDuration(start.Add(95*time.Second)))

	elapsed := s.StopCall(start.Add(2 * time.Minute))
	assert.Equal(t, 120, elapsed)
	assert.False(t, s.CallActive)
}

func TestReset(t *testing.T) {
	reg := registry.New()
	s := sellableState(reg)
	s.ActiveView = ViewHistory
	s.StartCall(time.Now())

	s.Reset(reg)

	assert.Empty(t, s.ClientFields)
	assert.Empty(t, s.Toggles)
	assert.Equal(t, StatusNotOffered, s.Service(registry.ServiceAXA))
	assert.Equal(t, StatusNotOffered, s.Service(registry.ServiceOffset))
	assert.False(t, s.CallActive)
	// The active screen survives a reset.
	assert.Equal(t, ViewHistory, s.ActiveView)
}

func TestDirty(t *testing.T) {
	reg := registry.New()
	s := NewState(reg)
	assert.False(t, s.Dirty())

	s.SetToggle("sms-recap", true)
	assert.True(t, s.Dirty())
}
