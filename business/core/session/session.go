// Package session maintains the locally asserted identity. The handle is a
// display name the caller claims, not a verified owner; only the keychain
// path can prove anything. The slot persists to disk so it survives process
// restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// fileName is the fixed key the handle persists under.
const fileName = "hive_user.json"

// record is the persisted form of the session slot.
type record struct {
	User string `json:"user"`
}

// Store holds at most one logged in handle.
type Store struct {
	path string
	mu   sync.RWMutex
	user string
}

// New constructs a store rooted at the specified directory, loading any
// handle persisted by a previous run.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	s := Store{
		path: filepath.Join(dir, fileName),
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &s, nil
	case err != nil:
		return nil, fmt.Errorf("read session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.user = rec.User

	return &s, nil
}

// Login persists the specified handle as the active identity. The handle is
// taken on trust.
func (s *Store) Login(handle string) error {
	if handle == "" {
		return errors.New("handle is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record{User: handle})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.user = handle
	return nil
}

// Logout clears the active identity.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}

	s.user = ""
	return nil
}

// Current returns the active handle, or an empty string when logged out.
func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

// IsLoggedIn reports whether a handle is present.
func (s *Store) IsLoggedIn() bool {
	return s.Current() != ""
}
