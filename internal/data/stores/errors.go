// Package stores contains the persistence adapters: a file-backed key-value
// store and the typed document stores layered on top of it.
package stores

import "errors"

var (
	// ErrNotFound means the requested key has no stored document.
	ErrNotFound = errors.New("not found")
	// ErrStale means a stored snapshot exceeded its maximum age.
	ErrStale = errors.New("snapshot stale")
	// ErrCorrupt means a stored document failed to deserialize.
	ErrCorrupt = errors.New("document corrupt")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
