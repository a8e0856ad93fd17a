package memory

import (
	"context"
	"sync"
)

type kvKey struct {
	userID string
	key    string
}

type kvStore struct {
	mu     sync.RWMutex
	values map[kvKey]string
}

func newKVStore() *kvStore {
	return &kvStore{values: make(map[kvKey]string)}
}

func (s *kvStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[kvKey{userID: userID, key: key}]
	return v, ok, nil
}

func (s *kvStore) Set(ctx context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[kvKey{userID: userID, key: key}] = value
	return nil
}

func (s *kvStore) Delete(ctx context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, kvKey{userID: userID, key: key})
	return nil
}
