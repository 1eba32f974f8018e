package sessionstate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultDebounce coalesces rapid edits into one write.
	DefaultDebounce = 2 * time.Second
	// DefaultInterval is the unconditional background flush period.
	DefaultInterval = 30 * time.Second
)

// Store persists snapshots. Implemented by the session state store.
type Store interface {
	Save(snap Snapshot) error
	Clear() error
}

// Saver schedules snapshot writes: a debounce timer restarted on every edit
// plus a periodic flush while dirty. Writes follow last-write-wins; a
// rescheduled debounce replaces the pending snapshot entirely.
type Saver struct {
	store    Store
	log      zerolog.Logger
	debounce time.Duration
	interval time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	latest Snapshot
	dirty  bool
}

// SaverOption customizes a Saver built by NewSaver.
type SaverOption func(*Saver)

// WithDebounce overrides the debounce window. Non-positive values keep the
// default.
func WithDebounce(d time.Duration) SaverOption {
	return func(s *Saver) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithInterval overrides the periodic flush interval. Non-positive values
// keep the default.
func WithInterval(d time.Duration) SaverOption {
	return func(s *Saver) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewSaver creates a Saver with the default debounce and flush interval.
func NewSaver(store Store, log zerolog.Logger, opts ...SaverOption) *Saver {
	s := &Saver{
		store:    store,
		log:      log,
		debounce: DefaultDebounce,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Queue records the latest snapshot and (re)starts the debounce timer. The
// previous pending write, if any, is superseded.
func (s *Saver) Queue(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = snap
	s.dirty = true

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

// Start runs the periodic flush until the context is cancelled.
func (s *Saver) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.flush()
		}
	}
}

// Flush writes the pending snapshot immediately, if any. Called on session
// end so an abandoned checklist survives the restart.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.flush()
}

// Clear drops the pending write and removes the stored snapshot. Called
// after a commit or an explicit reset.
func (s *Saver) Clear() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.dirty = false
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		// Write failures never interrupt the session.
		s.log.Warn().Err(err).Msg("clear session snapshot")
	}
}

func (s *Saver) flush() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	snap := s.latest
	s.dirty = false
	s.mu.Unlock()

	if err := s.store.Save(snap); err != nil {
		s.log.Warn().Err(err).Msg("save session snapshot")
	}
}
