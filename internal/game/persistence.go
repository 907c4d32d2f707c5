package game

import (
	"fmt"
	"os"
)

// LoadLevelFile loads level data from a TOML level file.
func LoadLevelFile(path string) (LevelData, error) {
	lvlData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return LevelData{}, fmt.Errorf("reading level file: %w", loadErr)
	}

	data, err := ParseLevelFromTOML(lvlData)
	if err != nil {
		return LevelData{}, fmt.Errorf("loading level file: %w", err)
	}

	return data, nil
}

// SaveLevelFile writes the current state of play to path in the level file
// format.
func SaveLevelFile(s *State, path string) error {
	data, err := MarshalLevelToTOML(s)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing level file: %w", err)
	}
	return nil
}
