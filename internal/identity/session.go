package identity

import (
	"os"
	"path/filepath"
	"strings"
)

// SessionStore persists the opaque auth token between client runs. The
// token lands in the user config dir with owner-only permissions.
type SessionStore struct {
	path string
}

func NewSessionStore(appName string) (*SessionStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	root := filepath.Join(dir, appName)
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	return &SessionStore{path: filepath.Join(root, "session")}, nil
}

// Load returns the stored token, or "" when no session exists.
func (s *SessionStore) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *SessionStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
