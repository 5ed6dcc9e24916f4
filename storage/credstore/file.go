package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type fileState struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// FileStore keeps the credentials in a JSON file (0600). State is held in
// memory and flushed atomically on every write, so reads stay cheap and a
// half-written file is never observed.
type FileStore struct {
	path string

	mu    sync.RWMutex
	state fileState
}

var _ Store = (*FileStore)(nil)

// OpenFile loads existing credentials from path. An unreadable or corrupt
// file is treated as "no credentials" rather than an error.
func OpenFile(path string) *FileStore {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(data, &s.state)
	return s
}

func (s *FileStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token, s.state.Token != ""
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.flush()
}

func (s *FileStore) User() (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User, len(s.state.User) > 0
}

func (s *FileStore) SetUser(user json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	return s.flush()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "credstore: removing credentials file")
	}
	return nil
}

func (s *FileStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

func (s *FileStore) flush() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return errors.Wrap(err, "credstore: encoding credentials")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "credstore: creating credentials dir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "credstore: writing credentials")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "credstore: replacing credentials")
	}
	return nil
}
