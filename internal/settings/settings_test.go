package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.Store(ctx, "color:a", []byte("1")); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}
	if err := store.Store(ctx, "file-chooser:b", []byte("2")); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}

	got, err := store.Retrieve(ctx, "color:a")
	if err != nil {
		t.Fatalf("Failed to retrieve data: %v", err)
	}
	if string(got) != "1" {
		t.Fatalf("Retrieved value doesn't match: got %s, want 1", got)
	}

	keys, err := store.List(ctx, "color:")
	require.NoError(t, err)
	assert.Equal(t, []string{"color:a"}, keys)

	if err := store.Delete(ctx, "color:a"); err != nil {
		t.Fatalf("Failed to delete data: %v", err)
	}
	_, err = store.Retrieve(ctx, "color:a")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got: %v", err)
	}

	assert.ErrorIs(t, store.Store(ctx, "", nil), ErrKeyEmpty)
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestJSONStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx := context.Background()

	first, err := NewJSONStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Store(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := NewJSONStore(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestJSONStoreMergesConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx := context.Background()

	a, err := NewJSONStore(path)
	require.NoError(t, err)
	defer a.Close()
	b, err := NewJSONStore(path)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Store(ctx, "one", []byte("1")))
	require.NoError(t, b.Store(ctx, "two", []byte("2")))

	keys, err := b.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, keys)
}

func TestBadgerStore(t *testing.T) {
	store, err := NewBadgerStore(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, store)
	require.NoError(t, store.Close())

	store, err = Open(BackendBadger, dir)
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open("sqlite", dir)
	assert.Error(t, err)
}

func TestSettingsHelpers(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	s := New(store)
	defer s.Close()
	ctx := context.Background()

	marks, err := s.Bookmarks(ctx)
	require.NoError(t, err)
	assert.Empty(t, marks)

	require.NoError(t, s.SetBookmarks(ctx, []string{"/tmp", "", "/home", "/tmp"}))
	marks, err = s.Bookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp", "/home"}, marks)

	mode, err := s.ViewMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, ViewList, mode)
	require.NoError(t, s.SetViewMode(ctx, ViewDetails))
	mode, err = s.ViewMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, ViewDetails, mode)

	palette, err := s.Palette(ctx)
	require.NoError(t, err)
	require.Len(t, palette, PaletteSize)
	assert.Equal(t, PaletteFill, palette[0])

	require.NoError(t, s.SetPalette(ctx, []string{"#ff0000", "#00ff00"}))
	palette, err = s.Palette(ctx)
	require.NoError(t, err)
	require.Len(t, palette, PaletteSize)
	assert.Equal(t, "#ff0000", palette[0])
	assert.Equal(t, "#00ff00", palette[1])
	assert.Equal(t, PaletteFill, palette[47])
}
