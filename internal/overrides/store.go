// Package overrides persists user-chosen category assignments keyed by
// absolute bundle path.
package overrides

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"appdeck/internal/models"
)

// configFileName matches the file the original launcher frontend reads.
const configFileName = ".app-launcher-config.json"

// Store persists category overrides in a single JSON file. The whole map is
// loaded and rewritten on every save; there is no file lock, so concurrent
// writers in separate processes can still lose updates to each other.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the given file. An empty path falls back
// to DefaultPath.
func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the override file path in the user's home directory.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, configFileName)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns all overrides. A missing, unreadable or malformed file reads
// as an empty map; callers never see an error.
func (s *Store) Load() map[string]models.Override {
	m, err := s.load()
	if err != nil {
		return map[string]models.Override{}
	}
	return m
}

// Save records a category for a bundle path and rewrites the whole file.
// Write failures are swallowed; callers get no confirmation either way.
func (s *Store) Save(bundlePath, category string) {
	_ = s.save(bundlePath, category)
}

// load reads and decodes the override file. Kept separate from Load so tests
// can distinguish "empty file" from "read or decode failure".
func (s *Store) load() (map[string]models.Override, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var m map[string]models.Override
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]models.Override{}
	}
	return m, nil
}

func (s *Store) save(bundlePath, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		m = map[string]models.Override{}
	}
	m[bundlePath] = models.Override{Category: &category}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
