// Package settings persists small user preferences shared between dialog
// invocations: file chooser bookmarks and view mode, and the custom colour
// palette.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key cannot be empty")
)

// Store is a flat key/value preference store.
type Store interface {
	// Store saves value under key
	Store(ctx context.Context, key string, value []byte) error

	// Retrieve gets a value by key
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// List returns all keys with optional prefix filtering
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases the store
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendBadger = "badger"
)

// DefaultDir returns $XDG_CONFIG_HOME/zentui, falling back to ~/.config/zentui.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "zentui"), nil
}

// Open opens the store of the named backend under dir. An empty backend
// selects the JSON file store.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(filepath.Join(dir, "settings.json"))
	case BackendBadger:
		return NewBadgerStore(filepath.Join(dir, "settings.db"))
	default:
		return nil, fmt.Errorf("unknown settings backend %q", backend)
	}
}
