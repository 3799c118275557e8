package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a scripted session.
type Fixture struct {
	Description string        `json:"description"`
	Steps       []FixtureStep `json:"steps"`
}

// FixtureStep is one scripted interaction, optionally followed by feedback
// and optionally carrying expectations to assert against.
type FixtureStep struct {
	Utterance string `json:"utterance"`
	Blob      string `json:"blob"`

	// Satisfaction, when set, is fed back (1..10) after processing, provided
	// the interaction was gated into the log. Success may override inference.
	Satisfaction *int  `json:"satisfaction,omitempty"`
	Success      *bool `json:"success,omitempty"`

	// Expectations; empty/nil fields are not asserted.
	ExpectChoice    string `json:"expect_choice,omitempty"`
	ExpectLearn     *bool  `json:"expect_learn,omitempty"`
	ExpectStructure string `json:"expect_structure,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("fixture %s has no steps", path)
	}
	return &f, nil
}

// #endregion fixture-loader
