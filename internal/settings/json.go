package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 20 * time.Millisecond

// JSONStore keeps every key in one JSON object on disk. Writes take a
// cross-process lock and re-read the file first, so concurrent dialogs only
// lose updates to the same key.
type JSONStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	path string
	lock *flock.Flock
}

// NewJSONStore opens the store at path, creating its directory.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	s := &JSONStore{
		data: make(map[string][]byte),
		path: path,
		lock: flock.New(path + ".lock"),
	}
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	s.data = data
	return s, nil
}

func (s *JSONStore) load() (map[string][]byte, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var stored map[string]string
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
		}
	}
	data := make(map[string][]byte, len(stored))
	for k, v := range stored {
		data[k] = []byte(v)
	}
	return data, nil
}

// update runs fn on the freshest on-disk state under the file lock and
// writes the result back.
func (s *JSONStore) update(ctx context.Context, fn func(map[string][]byte)) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock settings: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock settings: %s is busy", s.lock.Path())
	}
	defer s.lock.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	fn(data)
	if err := s.write(data); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) write(data map[string][]byte) error {
	stored := make(map[string]string, len(data))
	for k, v := range data {
		stored[k] = string(v)
	}
	raw, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Store implements Store.
func (s *JSONStore) Store(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrKeyEmpty
	}
	return s.update(ctx, func(data map[string][]byte) {
		data[key] = append([]byte(nil), value...)
	})
}

// Retrieve implements Store.
func (s *JSONStore) Retrieve(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Delete implements Store.
func (s *JSONStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyEmpty
	}
	return s.update(ctx, func(data map[string][]byte) {
		delete(data, key)
	})
}

// List implements Store. Keys come back sorted.
func (s *JSONStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store.
func (s *JSONStore) Close() error {
	return s.lock.Close()
}
