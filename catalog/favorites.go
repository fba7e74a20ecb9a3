package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Favorites maps movie ids to a favorite flag. It is owned by the caller; the
// catalog records themselves never carry it.
type Favorites struct {
	mu  sync.RWMutex
	ids map[int]bool
}

// NewFavorites creates an empty favorites set
func NewFavorites() *Favorites {
	return &Favorites{ids: make(map[int]bool)}
}

// LoadFavorites reads a favorites file. A missing file yields an empty set.
func LoadFavorites(path string) (*Favorites, error) {
	f := NewFavorites()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse favorites %s: %w", path, err)
	}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f, nil
}

// Save writes the favorite ids to path, creating parent directories
func (f *Favorites) Save(path string) error {
	data, err := json.MarshalIndent(f.IDs(), "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create favorites directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	return os.Rename(tmp, path)
}

// Set marks or unmarks a movie as favorite
func (f *Favorites) Set(movieID int, favorite bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if favorite {
		f.ids[movieID] = true
		return
	}
	delete(f.ids, movieID)
}

// Toggle flips the favorite flag and returns the new value
func (f *Favorites) Toggle(movieID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ids[movieID] {
		delete(f.ids, movieID)
		return false
	}
	f.ids[movieID] = true
	return true
}

// IsFavorite checks if a movie is marked as favorite
func (f *Favorites) IsFavorite(movieID int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ids[movieID]
}

// IDs returns the favorite movie ids in ascending order
func (f *Favorites) IDs() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]int, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of favorites
func (f *Favorites) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.ids)
}
