package settings

import (
	"context"
	"encoding/json"
	"errors"
)

// Preference keys
const (
	BookmarksKey = "file-chooser:bookmarks"
	ViewModeKey  = "file-chooser:view-mode"
	PaletteKey   = "color:palette"
)

// PaletteSize is the number of custom colour slots.
const PaletteSize = 48

// PaletteFill fills palette slots that were never set.
const PaletteFill = "#ffffff"

// File chooser view modes
const (
	ViewList    = "list"
	ViewDetails = "details"
)

// Settings is a typed wrapper around a Store.
type Settings struct {
	Store Store
}

// New wraps store.
func New(store Store) *Settings {
	return &Settings{Store: store}
}

func (s *Settings) storeJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Store.Store(ctx, key, data)
}

// retrieveJSON decodes key into value. A missing key leaves value untouched
// and reports false.
func (s *Settings) retrieveJSON(ctx context.Context, key string, value any) (bool, error) {
	data, err := s.Store.Retrieve(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, value)
}

// Bookmarks returns the saved file chooser bookmarks.
func (s *Settings) Bookmarks(ctx context.Context) ([]string, error) {
	var marks []string
	if _, err := s.retrieveJSON(ctx, BookmarksKey, &marks); err != nil {
		return nil, err
	}
	return marks, nil
}

// SetBookmarks replaces the bookmarks, dropping duplicates and empty paths.
func (s *Settings) SetBookmarks(ctx context.Context, marks []string) error {
	seen := make(map[string]bool, len(marks))
	clean := make([]string, 0, len(marks))
	for _, m := range marks {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		clean = append(clean, m)
	}
	return s.storeJSON(ctx, BookmarksKey, clean)
}

// ViewMode returns the file chooser view mode, ViewList when unset.
func (s *Settings) ViewMode(ctx context.Context) (string, error) {
	data, err := s.Store.Retrieve(ctx, ViewModeKey)
	if errors.Is(err, ErrKeyNotFound) {
		return ViewList, nil
	}
	if err != nil {
		return "", err
	}
	if mode := string(data); mode == ViewDetails {
		return mode, nil
	}
	return ViewList, nil
}

// SetViewMode saves the file chooser view mode.
func (s *Settings) SetViewMode(ctx context.Context, mode string) error {
	if mode != ViewDetails {
		mode = ViewList
	}
	return s.Store.Store(ctx, ViewModeKey, []byte(mode))
}

// Palette returns exactly PaletteSize colours.
func (s *Settings) Palette(ctx context.Context) ([]string, error) {
	var colors []string
	if _, err := s.retrieveJSON(ctx, PaletteKey, &colors); err != nil {
		return nil, err
	}
	return normalizePalette(colors), nil
}

// SetPalette saves the palette, padding or truncating it to PaletteSize.
func (s *Settings) SetPalette(ctx context.Context, colors []string) error {
	return s.storeJSON(ctx, PaletteKey, normalizePalette(colors))
}

func normalizePalette(colors []string) []string {
	out := make([]string, PaletteSize)
	for i := range out {
		if i < len(colors) && colors[i] != "" {
			out[i] = colors[i]
		} else {
			out[i] = PaletteFill
		}
	}
	return out
}

// Close closes the underlying store.
func (s *Settings) Close() error {
	return s.Store.Close()
}
