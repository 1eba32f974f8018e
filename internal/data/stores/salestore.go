package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ventecheck/ventecheck/internal/core/sale"
)

// HistoryKey is the key-value document holding the sales history.
const HistoryKey = "sales-history"

// SaleStore implements sale.HistoryStore on top of the key-value store.
// Records are stored as a JSON array, newest first.
type SaleStore struct {
	kv *KVStore
	mu sync.Mutex
}

var _ sale.HistoryStore = (*SaleStore)(nil)

// NewSaleStore creates a sales history store.
func NewSaleStore(kv *KVStore) *SaleStore {
	return &SaleStore{kv: kv}
}

// List returns all records, newest first. A missing document is an empty
// history; a corrupt document returns ErrCorrupt so the caller can decide
// to fall back.
func (s *SaleStore) List(ctx context.Context) ([]sale.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append prepends the record and truncates the history to capacity. Oldest
// records beyond capacity are dropped, not archived.
func (s *SaleStore) Append(ctx context.Context, rec sale.Record, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		// A corrupt history is replaced rather than grown; losing a
		// readable record set is worse than starting a fresh one.
		if !IsNotFound(err) && !isCorrupt(err) {
			return err
		}
		records = nil
	}

	records = append([]sale.Record{rec}, records...)
	if capacity > 0 && len(records) > capacity {
		records = records[:capacity]
	}

	return s.save(records)
}

// RemoveAt deletes the record at index. Returns sale.ErrNotFound when the
// index is out of range.
func (s *SaleStore) RemoveAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("index %d: %w", index, sale.ErrNotFound)
	}

	records = append(records[:index], records[index+1:]...)
	return s.save(records)
}

// Clear empties the history.
func (s *SaleStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]sale.Record{})
}

func (s *SaleStore) load() ([]sale.Record, error) {
	data, err := s.kv.Get(HistoryKey)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []sale.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, HistoryKey, err)
	}
	return records, nil
}

func (s *SaleStore) save(records []sale.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return s.kv.Set(HistoryKey, data)
}

func isCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}
