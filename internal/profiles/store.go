package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/utils"
)

// Profile is a named Content.
type Profile struct {
	ID      string
	Content Content
}

// String renders the profile as {"id": {...}} with four-space indentation.
func (p *Profile) String() string {
	data, err := json.MarshalIndent(map[string]Content{p.ID: p.Content}, "", "    ")
	if err != nil {
		return fmt.Sprintf("%s: <%v>", p.ID, err)
	}
	return string(data)
}

// Store is the JSON profile file loaded into memory. Mutations are kept in
// memory until Save is called. There is no locking: one process at a time.
type Store struct {
	path     string
	profiles map[string]Content
	modified bool
}

// Load reads the profile file at path. A missing file is an empty store.
func Load(path string) (*Store, error) {
	s := &Store{
		path:     path,
		profiles: make(map[string]Content),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile store: %w", err)
	}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.profiles); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidProfileStore, path, err)
	}
	for id, content := range s.profiles {
		if content == nil {
			s.profiles[id] = make(Content)
		}
	}

	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Modified reports whether there are unsaved changes.
func (s *Store) Modified() bool {
	return s.modified
}

// List returns all profile IDs in sorted order.
func (s *Store) List() []string {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Exists reports whether the profile id is present.
func (s *Store) Exists(id string) bool {
	_, ok := s.profiles[id]
	return ok
}

// Get returns the profile id. The returned Content aliases the store, so
// changes must go through Set and RemoveKey to be tracked.
func (s *Store) Get(id string) (*Profile, error) {
	content, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrProfileNotFound, id)
	}
	return &Profile{ID: id, Content: content}, nil
}

// Add creates an empty profile.
func (s *Store) Add(id string) error {
	if id == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if s.Exists(id) {
		return fmt.Errorf("%w: %q", kerrors.ErrProfileExists, id)
	}
	s.profiles[id] = make(Content)
	s.modified = true
	return nil
}

// Set stores value under key in profile id, creating the profile if needed.
func (s *Store) Set(id, key string, value Value) error {
	if id == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	content, ok := s.profiles[id]
	if !ok {
		content = make(Content)
		s.profiles[id] = content
	}
	content[key] = value
	s.modified = true
	return nil
}

// RemoveKey deletes key from profile id.
func (s *Store) RemoveKey(id, key string) error {
	content, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("%w: %q", kerrors.ErrProfileNotFound, id)
	}
	if _, ok := content[key]; !ok {
		return fmt.Errorf("%w: %q in profile %q", kerrors.ErrMissingKey, key, id)
	}
	delete(content, key)
	s.modified = true
	return nil
}

// Remove deletes profile id.
func (s *Store) Remove(id string) error {
	if !s.Exists(id) {
		return fmt.Errorf("%w: %q", kerrors.ErrProfileNotFound, id)
	}
	delete(s.profiles, id)
	s.modified = true
	return nil
}

// Save writes the store back to disk with 0600 permissions.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.profiles, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode profile store: %w", err)
	}

	if err := utils.WriteFileAtomic(s.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to save profile store: %w", err)
	}

	s.modified = false
	return nil
}
