package stores

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ventecheck/ventecheck/pkg/kv"
)

// KVStore is the opaque document store the rest of the tool persists
// through: one JSON file per key under the data directory, written
// atomically, with a read-through cache in front. It is the only component
// that touches the disk.
type KVStore struct {
	dir   string
	mu    sync.Mutex
	cache *kv.Store[string, []byte]
}

// NewKVStore creates a store rooted at dir. The directory is created on the
// first write.
func NewKVStore(dir string) *KVStore {
	return &KVStore{
		dir:   dir,
		cache: kv.New[string, []byte](),
	}
}

func (s *KVStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the raw document for key. Returns ErrNotFound when no
// document exists.
func (s *KVStore) Get(key string) ([]byte, error) {
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	s.cache.Set(key, data)
	return data, nil
}

// Set writes the raw document for key atomically (tmp file + rename).
func (s *KVStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.cache.Set(key, data)
	return nil
}

// Remove deletes the document for key. Removing a missing key is a no-op.
func (s *KVStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(key)

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Clear deletes every stored document.
func (s *KVStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Clear()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear store: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
	}
	return nil
}
