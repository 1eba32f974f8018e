package sale

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// memHistory is an in-memory HistoryStore for recorder tests.
type memHistory struct {
	records []Record
}

func (m *memHistory) List(_ context.Context) ([]Record, error) {
	return m.records, nil
}

func (m *memHistory) Append(_ context.Context, rec Record, capacity int) error {
	m.records = append([]Record{rec}, m.records...)
	if len(m.records) > capacity {
		m.records = m.records[:capacity]
	}
	return nil
}

func (m *memHistory) RemoveAt(_ context.Context, index int) error {
	if index < 0 || index >= len(m.records) {
		return ErrNotFound
	}
	m.records = append(m.records[:index], m.records[index+1:]...)
	return nil
}

func (m *memHistory) Clear(_ context.Context) error {
	m.records = nil
	return nil
}

func testRecorder(store HistoryStore, reg *registry.Registry) *Recorder {
	return NewRecorder(store, reg, zerolog.Nop())
}

// soldState fills a checklist that passes validation with AXA and Offset sold.
func soldState(reg *registry.Registry) *checklist.State {
	s := checklist.NewState(reg)
	s.SetField(registry.FieldNom, "Dupont")
	s.SetField(registry.FieldPrenom, "Jean")
	s.SetField(registry.FieldAdresse, "12 rue de la Paix, 75002 Paris")
	s.SetField(registry.FieldEmail, "jean.dupont@exemple.fr")
	s.SetField(registry.FieldTelephone, "0612345678")
	s.SetToggle(registry.ToggleRGPD, true)
	s.SetToggle(registry.ToggleReseau, true)
	s.SetServiceStatus(registry.ServiceAXA, checklist.StatusSold)
	s.SetServiceStatus(registry.ServiceOffset, checklist.StatusSold)
	s.OffsetTier = "4.99"
	s.SetToggle(registry.ToggleFrais, true)
	s.SetToggle(registry.ToggleRetractation, true)
	return s
}

func TestCommit_ValidSale(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	store := &memHistory{}
	rec := testRecorder(store, reg)

	start := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return start.Add(5 * time.Minute) }

	s := soldState(reg)
	s.StartCall(start)

	got, err := rec.Commit(ctx, s)
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Jean Dupont", got.Client.FullName())
	assert.Equal(t, 300, got.Duration)
	assert.Equal(t, 2, got.ServicesCount)
	assert.True(t, got.Services.AXA.Sold)
	assert.True(t, got.Services.Carbone.Sold)
	assert.Equal(t, "4.99", got.Services.Carbone.Tier)
	assert.False(t, got.Services.MCP.Sold)
	assert.NotEmpty(t, got.Quality)

	// The committed record is prepended and the working state resets.
	require.Len(t, store.records, 1)
	assert.Equal(t, got.ID, store.records[0].ID)
	assert.False(t, s.Dirty())
}

func TestCommit_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	store := &memHistory{}
	rec := testRecorder(store, reg)

	first, err := rec.Commit(ctx, soldState(reg))
	require.NoError(t, err)
	second, err := rec.Commit(ctx, soldState(reg))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCommit_InvalidLeavesHistoryUntouched(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	store := &memHistory{}
	rec := testRecorder(store, reg)

	s := soldState(reg)
	s.SetToggle(registry.ToggleRGPD, false)

	_, err := rec.Commit(ctx, s)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Result.MissingCount)

	assert.Empty(t, store.records)
	// The in-progress state survives a failed commit.
	assert.True(t, s.Dirty())
}

func TestCommit_CapacityEviction(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(registry.WithHistoryCapacity(3))
	store := &memHistory{}
	rec := testRecorder(store, reg)

	ids := make([]string, 0, 4)
	for range 4 {
		got, err := rec.Commit(ctx, soldState(reg))
		require.NoError(t, err)
		ids = append(ids, got.ID)
	}

	require.Len(t, store.records, 3)
	// Newest first; the oldest commit fell off.
	assert.Equal(t, ids[3], store.records[0].ID)
	assert.Equal(t, ids[1], store.records[2].ID)
}

func TestRemove_OutOfRangeIsNoOp(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	store := &memHistory{}
	rec := testRecorder(store, reg)

	_, err := rec.Commit(ctx, soldState(reg))
	require.NoError(t, err)

	require.NoError(t, rec.Remove(ctx, 5))
	require.NoError(t, rec.Remove(ctx, -1))
	assert.Len(t, store.records, 1)

	require.NoError(t, rec.Remove(ctx, 0))
	assert.Empty(t, store.records)
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	store := &memHistory{}
	rec := testRecorder(store, reg)

	_, err := rec.Commit(ctx, soldState(reg))
	require.NoError(t, err)

	require.NoError(t, rec.ClearHistory(ctx))
	assert.Empty(t, store.records)
}

func TestDuplicate(t *testing.T) {
	reg := registry.New()
	rec := testRecorder(&memHistory{}, reg)

	source := Record{
		Client: Client{
			Nom:       "Martin",
			Prenom:    "Claire",
			Adresse:   "8 avenue des Champs",
			Email:     "claire.martin@exemple.fr",
			Telephone: "0698765432",
		},
		Services: Services{
			AXA:      ServiceSale{Offered: true},
			Carbone:  ServiceSale{Offered: true, Sold: true, Tier: "7.50"},
			MCP:      ServiceSale{Offered: true, Sold: true},
			Voltalis: ServiceSale{},
		},
	}

	s := rec.Duplicate(source)

	assert.Equal(t, "Martin", s.Field(registry.FieldNom))
	assert.Equal(t, "claire.martin@exemple.fr", s.Field(registry.FieldEmail))
	assert.Equal(t, checklist.StatusOffered, s.Service(registry.ServiceAXA))
	assert.Equal(t, checklist.StatusSold, s.Service(registry.ServiceOffset))
	assert.Equal(t, "7.50", s.OffsetTier)
	assert.True(t, s.Toggle(registry.ToggleMCP))
	assert.False(t, s.Toggle(registry.ToggleVoltalis))

	// Duplication fills the checklist only; agreements and disclosures
	// must be collected again on the new call.
	assert.False(t, s.Toggle(registry.ToggleRGPD))
	res := checklist.Evaluate(s, reg)
	assert.False(t, res.Valid)
}
