package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// ValidationError is returned by Commit when the checklist does not satisfy
// the sale rules. It carries the itemized verdict so callers can surface the
// reasons; the history is left untouched.
type ValidationError struct {
	Result checklist.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("vente non valide: %d critère(s) manquant(s)", e.Result.MissingCount)
}

// HistoryStore persists the ordered, capacity-bounded sales history.
type HistoryStore interface {
	List(ctx context.Context) ([]Record, error)
	Append(ctx context.Context, rec Record, capacity int) error
	RemoveAt(ctx context.Context, index int) error
	Clear(ctx context.Context) error
}

// Recorder commits validated checklists into the sales history.
type Recorder struct {
	store HistoryStore
	reg   *registry.Registry
	log   zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewRecorder creates a Recorder backed by the given history store.
func NewRecorder(store HistoryStore, reg *registry.Registry, log zerolog.Logger) *Recorder {
	return &Recorder{
		store: store,
		reg:   reg,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Commit validates the checklist and, on success, freezes it into a Record,
// prepends the record to the history (evicting beyond capacity, oldest
// first), persists, and resets the in-progress state. A failed validation
// returns a *ValidationError and changes nothing.
func (r *Recorder) Commit(ctx context.Context, s *checklist.State) (Record, error) {
	res := checklist.Evaluate(s, r.reg)
	if !res.Valid {
		return Record{}, &ValidationError{Result: res}
	}

	now := r.now()
	svcs := snapshot(s)

	rec := Record{
		ID:   r.newID(),
		Date: now,
		Client: Client{
			Nom:       s.Field(registry.FieldNom),
			Prenom:    s.Field(registry.FieldPrenom),
			Adresse:   s.Field(registry.FieldAdresse),
			Email:     s.Field(registry.FieldEmail),
			Telephone: s.Field(registry.FieldTelephone),
		},
		Services:      svcs,
		Duration:      s.CallDuration(now),
		ServicesCount: res.PaidSold,
		Quality:       Classify(checklist.Completion(s, r.reg)),
	}

	if err := r.store.Append(ctx, rec, r.reg.HistoryCapacity()); err != nil {
		return Record{}, fmt.Errorf("append sale: %w", err)
	}

	s.Reset(r.reg)

	r.log.Info().
		Str("sale_id", rec.ID).
		Str("client", rec.Client.FullName()).
		Int("services", rec.ServicesCount).
		Msg("sale recorded")

	return rec, nil
}

// List returns the history, newest first.
func (r *Recorder) List(ctx context.Context) ([]Record, error) {
	return r.store.List(ctx)
}

// Remove deletes the record at index. An out-of-range index is a logged
// no-op; deletion never fails the session.
func (r *Recorder) Remove(ctx context.Context, index int) error {
	err := r.store.RemoveAt(ctx, index)
	if err != nil {
		if IsNotFound(err) {
			r.log.Warn().Int("index", index).Msg("delete ignored: index out of range")
			return nil
		}
		return fmt.Errorf("remove sale: %w", err)
	}
	return nil
}

// ClearHistory empties the sales history. Callers are expected to have
// confirmed the action with the user.
func (r *Recorder) ClearHistory(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Duplicate builds a fresh checklist pre-filled from a past record's client
// fields and service statuses, ready for editing and re-commit. The history
// is not touched.
func (r *Recorder) Duplicate(rec Record) *checklist.State {
	s := checklist.NewState(r.reg)

	s.SetField(registry.FieldNom, rec.Client.Nom)
	s.SetField(registry.FieldPrenom, rec.Client.Prenom)
	s.SetField(registry.FieldAdresse, rec.Client.Adresse)
	s.SetField(registry.FieldEmail, rec.Client.Email)
	s.SetField(registry.FieldTelephone, rec.Client.Telephone)

	s.SetServiceStatus(registry.ServiceAXA, statusOf(rec.Services.AXA))
	s.SetServiceStatus(registry.ServiceOffset, statusOf(rec.Services.Carbone))
	if rec.Services.Carbone.Tier != "" {
		s.OffsetTier = rec.Services.Carbone.Tier
	}
	s.SetToggle(registry.ToggleMCP, rec.Services.MCP.Sold)
	s.SetToggle(registry.ToggleVoltalis, rec.Services.Voltalis.Sold)

	return s
}

func statusOf(svc ServiceSale) checklist.Status {
	switch {
	case svc.Sold:
		return checklist.StatusSold
	case svc.Offered:
		return checklist.StatusOffered
	default:
		return checklist.StatusNotOffered
	}
}
