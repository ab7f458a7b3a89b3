package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cbodonnell/seafarer/pkg/log"
)

var _ Store = &FileStore{}

// FileStore persists values as a JSON object in a single file.
// Every write replaces the file atomically.
type FileStore struct {
	lock   sync.RWMutex
	path   string
	values map[string]string
}

// NewFileStore opens the store at path, creating its directory if needed.
// A missing file is treated as an empty store.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %v", err)
	}

	values := make(map[string]string)
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read token file: %v", err)
	case len(b) > 0:
		if err := json.Unmarshal(b, &values); err != nil {
			log.Warn("Discarding unreadable token file %s: %v", path, err)
			values = make(map[string]string)
		}
	}

	return &FileStore{
		path:   path,
		values: values,
	}, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *FileStore) Set(key string, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	previous, existed := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	previous, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = previous
		return err
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// flush writes the values to a temp file and renames it over the store file.
// The caller must hold the write lock.
func (s *FileStore) flush() error {
	b, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp token file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp token file: %v", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace token file: %v", err)
	}

	return nil
}
