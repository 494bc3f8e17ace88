package config

import (
	"errors"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/DSM-PICK/pick-cli/utils"
)

const configFileMode = 0o600

// Store reads and writes the Config record. Callers treat its errors as
// non-fatal and carry on as if nothing was saved.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved record. A missing file yields (nil, nil).
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the file with cfg.
func (s *Store) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

// Update loads the record (or starts an empty one), applies fn and saves the
// result. An unreadable file is replaced.
func (s *Store) Update(fn func(cfg *Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := s.load()
	if err != nil || cfg == nil {
		cfg = &Config{}
	}
	fn(cfg)
	return s.save(cfg)
}

// Clear resets an existing file to an empty record. It reports false when
// there was nothing to clear.
func (s *Store) Clear() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := utils.FileExists(s.path)
	if err != nil {
		return false, pkgerrors.Wrap(err, "checking config file")
	}
	if !exists {
		return false, nil
	}
	if err := utils.WriteFile([]byte("{}"), s.path, configFileMode); err != nil {
		return false, pkgerrors.Wrap(err, "clearing config file")
	}
	return true, nil
}

func (s *Store) load() (*Config, error) {
	var cfg Config
	if err := utils.ReadJSONFile(s.path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "error while reading config JSON")
	}
	return &cfg, nil
}

func (s *Store) save(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := utils.WriteJSONFile(cfg, s.path, configFileMode); err != nil {
		return pkgerrors.Wrap(err, "error while updating config JSON")
	}
	return nil
}
