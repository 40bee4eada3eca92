// Package config manages named engine-link profiles on disk
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"warpanel/pkg/serial"
)

// ProfileInfo is one saved link profile with its metadata
type ProfileInfo struct {
	Name        string        `toml:"name"`
	Link        serial.Config `toml:"link"`
	CreatedAt   time.Time     `toml:"created_at"`
	LastUsedAt  time.Time     `toml:"last_used_at"`
	Description string        `toml:"description,omitempty"`
}

// Validate checks if the profile is usable
func (p ProfileInfo) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if err := p.Link.Validate(); err != nil {
		return fmt.Errorf("invalid link config: %w", err)
	}
	return nil
}

// store is the on-disk layout
type store struct {
	Version  string                 `toml:"version"`
	Profiles map[string]ProfileInfo `toml:"profiles"`
}

// Manager is the contract for profile storage
type Manager interface {
	Save(name string, link serial.Config) error
	Load(name string) (serial.Config, error)
	List() ([]ProfileInfo, error)
	Delete(name string) error
	Exists(name string) bool
	UpdateLastUsed(name string) error
}

// FileManager stores profiles as a TOML file in a dot-directory
type FileManager struct {
	dir  string
	file string
}

// NewFileManager creates a profile manager rooted at dir; an empty dir
// selects ~/.warpanel.
func NewFileManager(dir string) *FileManager {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, ".warpanel")
		} else {
			dir = ".warpanel"
		}
	}
	return &FileManager{dir: dir, file: "profiles.toml"}
}

func (m *FileManager) path() string {
	return filepath.Join(m.dir, m.file)
}

func (m *FileManager) load() (store, error) {
	s := store{Version: "1", Profiles: map[string]ProfileInfo{}}

	data, err := os.ReadFile(m.path())
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read profiles: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse profiles: %w", err)
	}
	if s.Profiles == nil {
		s.Profiles = map[string]ProfileInfo{}
	}
	return s, nil
}

func (m *FileManager) write(s store) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(m.path())
	if err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return nil
}

// Save stores a profile, overwriting any existing one with the same name
func (m *FileManager) Save(name string, link serial.Config) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if err := link.Validate(); err != nil {
		return fmt.Errorf("invalid link config: %w", err)
	}

	s, err := m.load()
	if err != nil {
		return err
	}

	now := time.Now()
	info := ProfileInfo{Name: name, Link: link, CreatedAt: now, LastUsedAt: now}
	if prev, ok := s.Profiles[name]; ok {
		info.CreatedAt = prev.CreatedAt
		info.Description = prev.Description
	}
	s.Profiles[name] = info

	return m.write(s)
}

// Load returns the link config saved under name
func (m *FileManager) Load(name string) (serial.Config, error) {
	s, err := m.load()
	if err != nil {
		return serial.Config{}, err
	}

	info, ok := s.Profiles[name]
	if !ok {
		return serial.Config{}, fmt.Errorf("profile %q not found", name)
	}
	return info.Link, nil
}

// List returns all profiles sorted by name
func (m *FileManager) List() ([]ProfileInfo, error) {
	s, err := m.load()
	if err != nil {
		return nil, err
	}

	out := make([]ProfileInfo, 0, len(s.Profiles))
	for _, info := range s.Profiles {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a profile; deleting a missing profile is an error
func (m *FileManager) Delete(name string) error {
	s, err := m.load()
	if err != nil {
		return err
	}

	if _, ok := s.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(s.Profiles, name)

	return m.write(s)
}

// Exists reports whether a profile with the name is saved
func (m *FileManager) Exists(name string) bool {
	s, err := m.load()
	if err != nil {
		return false
	}
	_, ok := s.Profiles[name]
	return ok
}

// UpdateLastUsed stamps the profile's last-used time
func (m *FileManager) UpdateLastUsed(name string) error {
	s, err := m.load()
	if err != nil {
		return err
	}

	info, ok := s.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	info.LastUsedAt = time.Now()
	s.Profiles[name] = info

	return m.write(s)
}
