// ABOUTME: Durable storage for the CyrLab bearer token
// ABOUTME: Persists a single opaque string in the XDG config directory

package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// fileName is the fixed key under which the token is persisted.
const fileName = "token.json"

// Store persists one opaque bearer token. A present token only means
// "possibly authenticated"; validity is confirmed by an identity fetch.
type Store struct {
	configDir string
}

type tokenData struct {
	Token string `json:"token"`
}

// New creates a Store rooted at the given config directory.
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

func (s *Store) path() string {
	return filepath.Join(s.configDir, fileName)
}

// Get returns the persisted token, or the empty string when none is stored.
// Unreadable or corrupt files are treated as no token.
func (s *Store) Get() string {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return ""
	}

	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return ""
	}
	return td.Token
}

// Set persists the token durably. The file is only readable by the owner.
func (s *Store) Set(token string) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(tokenData{Token: token})
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(), data, 0600)
}

// Clear removes the persisted token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
