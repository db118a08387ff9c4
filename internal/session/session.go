// Package session persists the "current user" of the CLI across process
// restarts. It is a bare profile cache: the stored snapshot is a copy of the
// sanitized user, never consulted by the server for authorization.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	dirName   = "relieflink"
	fileName  = "session.json"
	dirPerms  = 0700
	filePerms = 0600

	DefaultServerURL = "http://localhost:5000"
)

// User is the sanitized profile snapshot cached locally.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session holds persisted CLI state.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	User      *User  `json:"user,omitempty"`
}

// Path returns the full path to the session file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Load reads the session from disk. A missing file yields a zero-value
// session with the default server URL, not an error.
func Load() (*Session, error) {
	p, err := Path()
	if err != nil {
		return &Session{ServerURL: DefaultServerURL}, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{ServerURL: DefaultServerURL}, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.ServerURL == "" {
		sess.ServerURL = DefaultServerURL
	}
	return &sess, nil
}

// Save writes the session to disk, creating the directory if needed.
func Save(sess *Session) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, filePerms)
}

// Clear removes the session file. Clearing is purely local state.
func Clear() error {
	p, err := Path()
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Current returns the cached user snapshot, or nil when logged out.
func (s *Session) Current() *User {
	return s.User
}

// LoggedIn reports whether a user snapshot is cached.
func (s *Session) LoggedIn() bool {
	return s.User != nil
}
