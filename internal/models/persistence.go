package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const snapshotFile = "snapshot.yaml"

// Snapshot is the persistable slice of a GameState.
type Snapshot struct {
	GameMode              GameMode           `yaml:"game_mode"`
	Elements              []Element          `yaml:"elements"`
	EndElements           []Element          `yaml:"end_elements"`
	Combinations          Combinations       `yaml:"combinations"`
	FailedCombinations    FailedCombinations `yaml:"failed_combinations"`
	Achievements          []Achievement      `yaml:"achievements"`
	TotalCombinationsMade int                `yaml:"total_combinations_made"`
}

// Snapshot extracts the persistable slice of s.
func (s GameState) Snapshot() Snapshot {
	return Snapshot{
		GameMode:              s.GameMode,
		Elements:              append([]Element(nil), s.Elements...),
		EndElements:           append([]Element(nil), s.EndElements...),
		Combinations:          append(Combinations(nil), s.Combinations...),
		FailedCombinations:    append(FailedCombinations(nil), s.FailedCombinations...),
		Achievements:          append([]Achievement(nil), s.Achievements...),
		TotalCombinationsMade: s.TotalCombinationsMade,
	}
}

func (s Snapshot) MarshalYAMLBytes() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot to dir/name.
func (s Snapshot) Save(dir, name string) error {
	dir = filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := s.MarshalYAMLBytes()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, snapshotFile), data, 0644)
}

// LoadSnapshot reads the save dir/name.
func LoadSnapshot(dir, name string) (Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(dir, name, snapshotFile))
	if err != nil {
		return Snapshot{}, err
	}
	return DecodeSnapshot(data)
}

// ListSaves lists the save names under dir.
func ListSaves(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var saves []string
	for _, entry := range entries {
		if entry.IsDir() {
			// snapshot.yaml marks a valid save
			path := filepath.Join(dir, entry.Name(), snapshotFile)
			if _, err := os.Stat(path); err == nil {
				saves = append(saves, entry.Name())
			}
		}
	}
	return saves, nil
}
