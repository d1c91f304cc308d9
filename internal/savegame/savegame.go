// Package savegame snapshots a play session to YAML so a player can put a
// book down and pick it up later.
package savegame

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot is everything needed to resume a session: where the book lives,
// which page the player is on, the live record and name values, and the
// seed for the resumed generator. The generator's internal state is not
// capturable, so resuming starts a fresh sequence from the stored seed.
type Snapshot struct {
	Adventure string            `yaml:"adventure"`
	Page      string            `yaml:"page"`
	Seed      int64             `yaml:"seed"`
	Records   map[string]int    `yaml:"records"`
	Names     map[string]string `yaml:"names"`
	SavedAt   time.Time         `yaml:"saved_at"`
}

// Store reads and writes snapshots under a base directory, one YAML file
// per save name.
type Store struct {
	Dir string
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the snapshot under the given name, creating the store
// directory as needed.
func (s *Store) Save(name string, snap *Snapshot) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode save %q: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("write save %q: %w", name, err)
	}
	return nil
}

// Load reads the snapshot saved under the given name.
func (s *Store) Load(name string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("read save %q: %w", name, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode save %q: %w", name, err)
	}
	return &snap, nil
}

// List returns the names of all saves in the store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		names = append(names, entry.Name()[:len(entry.Name())-len(".yaml")])
	}
	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name+".yaml")
}
