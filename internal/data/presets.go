package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preset is a named, ready-to-run experiment scenario.
type Preset struct {
	Scenario
	Description string `json:"description,omitempty"`
}

// PresetList represents a collection of presets on disk.
type PresetList struct {
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Presets   []Preset `json:"presets"`
}

// LoadPresets loads presets from a JSON file.
func LoadPresets(filePath string) (*PresetList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var list PresetList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	return &list, nil
}

// SavePresets saves presets to a JSON file.
func SavePresets(list *PresetList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// GetDefaultPresetsPath returns the default path for the presets file.
func GetDefaultPresetsPath() string {
	if path := os.Getenv("PRESETS_FILE"); path != "" {
		return path
	}
	return "./data/presets.json"
}

// BuiltinPresets returns the calibrations shipped with the repo. These match
// the worked example: actual persistence 0.97 with beliefs at, above, and
// matching it.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Scenario: Scenario{
				Name:          "correct-beliefs",
				CorrAct:       0.97,
				CorrPcvd:      0.97,
				DiscFacCenter: 0.9867,
				DiscFacSpread: 0.0067,
			},
			Description: "Agents perceive the true income persistence",
		},
		{
			Scenario: Scenario{
				Name:          "overestimated-persistence",
				CorrAct:       0.97,
				CorrPcvd:      0.9831,
				DiscFacCenter: 0.9867,
				DiscFacSpread: 0.0067,
			},
			Description: "Agents believe income shocks are more persistent than they are",
		},
		{
			Scenario: Scenario{
				Name:          "homogeneous-patience",
				CorrAct:       0.97,
				CorrPcvd:      0.97,
				DiscFacCenter: 0.9867,
				DiscFacSpread: 0.0,
			},
			Description: "Single discount factor, no patience heterogeneity",
		},
	}
}
