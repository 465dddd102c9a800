// Package identity remembers the student's name and email between runs.
// The JSON keys match the ones the site's pages keep in browser local
// storage, so an exported identity file is interchangeable.
package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Identity struct {
	Name  string `json:"aq_studentName"`
	Email string `json:"aq_studentEmail"`
}

type Store struct{ path string }

// NewStore stores identity at path; empty path means the default location
// under the user config dir.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "monthlyquiz", "identity.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// Load returns the saved identity; a missing or unreadable file is just an
// empty identity.
func (s *Store) Load() Identity {
	var id Identity
	data, err := os.ReadFile(s.path)
	if err != nil {
		return id
	}
	_ = json.Unmarshal(data, &id)
	return id
}

func (s *Store) Save(id Identity) error {
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
