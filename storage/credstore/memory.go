package credstore

import (
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	token string
	user  json.RawMessage
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemStore) User() (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, len(s.user) > 0
}

func (s *MemStore) SetUser(user json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return nil
}

func (s *MemStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
