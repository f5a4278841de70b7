package library

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ItemStats is the play history of one item.
type ItemStats struct {
	TimesPlayed   int       `yaml:"times_played"`
	SecondsPlayed int64     `yaml:"seconds_played"`
	LastPlayed    time.Time `yaml:"last_played,omitempty"`
}

type statsFile struct {
	Version   int                   `yaml:"version"`
	Items     map[string]*ItemStats `yaml:"items"`
	Favorites map[string][]string   `yaml:"favorites"`
}

// StatsStore persists play statistics and favorites. It is safe for
// concurrent use; every mutation is written through to disk.
type StatsStore struct {
	mu   sync.Mutex
	path string
	data statsFile
}

// OpenStats loads the store at path. A missing file starts empty. An empty
// path gives an in-memory store.
func OpenStats(path string) (*StatsStore, error) {
	s := &StatsStore{
		path: path,
		data: statsFile{
			Version:   1,
			Items:     make(map[string]*ItemStats),
			Favorites: make(map[string][]string),
		},
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse stats: %w", err)
	}
	if s.data.Items == nil {
		s.data.Items = make(map[string]*ItemStats)
	}
	if s.data.Favorites == nil {
		s.data.Favorites = make(map[string][]string)
	}
	return s, nil
}

func statsKey(collection, item string) string {
	return collection + "/" + item
}

// RecordPlay adds one play of the given length.
func (s *StatsStore) RecordPlay(collection, item string, started time.Time, played time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := statsKey(collection, item)
	st := s.data.Items[key]
	if st == nil {
		st = &ItemStats{}
		s.data.Items[key] = st
	}
	st.TimesPlayed++
	st.SecondsPlayed += int64(played / time.Second)
	st.LastPlayed = started.UTC()
	return s.saveLocked()
}

// Get returns the stats of an item. Unknown items return the zero value.
func (s *StatsStore) Get(collection, item string) ItemStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.data.Items[statsKey(collection, item)]; st != nil {
		return *st
	}
	return ItemStats{}
}

// IsFavorite reports whether the item is in the collection's favorites.
func (s *StatsStore) IsFavorite(collection, item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.data.Favorites[collection], item)
}

// Favorites returns the collection's favorites in the order they were added.
func (s *StatsStore) Favorites(collection string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Favorites[collection])
}

// ToggleFavorite adds or removes the item and returns whether it is now a
// favorite.
func (s *StatsStore) ToggleFavorite(collection, item string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.data.Favorites[collection]
	if i := slices.Index(favs, item); i >= 0 {
		s.data.Favorites[collection] = slices.Delete(favs, i, i+1)
		return false, s.saveLocked()
	}
	s.data.Favorites[collection] = append(favs, item)
	return true, s.saveLocked()
}

func (s *StatsStore) saveLocked() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}
