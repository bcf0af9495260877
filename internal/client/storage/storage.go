// Package storage keeps the client's small key/value state between runs.
package storage

import (
	"os"
	"path/filepath"
	"sync"

	"gaia/internal/errors"

	"gopkg.in/yaml.v3"
)

// Keys used by the session.
const (
	TokenKey   = "gaia_token"
	NewUserKey = "newUser"
)

// Store is a string key/value store. Get reports false for a missing key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore keeps values for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]

	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}

// FileStore persists values as a YAML map readable only by the owner.
// Every write replaces the file through a rename so a crash never leaves it half written.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore stores values at path. The file and its directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is $HOME/.gaia/session.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}

	return filepath.Join(home, ".gaia", "session.yaml"), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]

	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value

	return s.save(values)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)

	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.path)
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", s.path)
	}
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.WithStack(err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to restrict temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}

	return errors.Wrapf(os.Rename(tmpName, s.path), "failed to replace %s", s.path)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
