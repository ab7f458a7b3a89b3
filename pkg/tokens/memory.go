package tokens

import "sync"

var _ Store = &MemoryStore{}

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	lock   sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStore) Set(key string, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
