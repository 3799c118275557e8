package replay

// #region imports
import (
	"fmt"

	"github.com/danielpatrickdp/storage-advisor/internal/session"
)

// #endregion

// #region types

// StepResult captures the outcome of replaying one fixture step.
type StepResult struct {
	Index    int
	Choice   string
	Score    float64
	Learned  bool
	FedBack  bool
	Mismatch string // empty when all expectations held
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Description  string
	Steps        int
	Learned      int
	FedBack      int
	Mismatches   int
	FinalWeights map[string]float64
}

// #endregion types

// #region replay

// Replay drives a fixture's steps through a session engine in order,
// checking each step's expectations as it goes.
func Replay(e *session.Engine, f *Fixture) ([]StepResult, Summary, error) {
	results := make([]StepResult, 0, len(f.Steps))
	summary := Summary{Description: f.Description, Steps: len(f.Steps)}

	for i, step := range f.Steps {
		res, err := e.Process(step.Blob, step.Utterance)
		if err != nil {
			return results, summary, fmt.Errorf("step %d process: %w", i, err)
		}

		sr := StepResult{
			Index:   i,
			Choice:  string(res.StorageChoice),
			Score:   res.StorageScore,
			Learned: res.ShouldLearn,
		}
		sr.Mismatch = checkExpectations(step, res)

		if res.ShouldLearn {
			summary.Learned++
		}

		if step.Satisfaction != nil && res.ID != nil {
			if _, err := e.ProvideFeedback(*res.ID, *step.Satisfaction, step.Success); err != nil {
				return results, summary, fmt.Errorf("step %d feedback: %w", i, err)
			}
			sr.FedBack = true
			summary.FedBack++
		}

		if sr.Mismatch != "" {
			summary.Mismatches++
		}
		results = append(results, sr)
	}

	summary.FinalWeights = e.Stats().CurrentWeights
	return results, summary, nil
}

// #endregion replay

// #region expectations

func checkExpectations(step FixtureStep, res session.InteractionResult) string {
	if step.ExpectChoice != "" && string(res.StorageChoice) != step.ExpectChoice {
		return fmt.Sprintf("choice %s, expected %s", res.StorageChoice, step.ExpectChoice)
	}
	if step.ExpectLearn != nil && res.ShouldLearn != *step.ExpectLearn {
		return fmt.Sprintf("learn=%v, expected %v", res.ShouldLearn, *step.ExpectLearn)
	}
	if step.ExpectStructure != "" && string(res.Features.StructureType) != step.ExpectStructure {
		return fmt.Sprintf("structure %s, expected %s", res.Features.StructureType, step.ExpectStructure)
	}
	return ""
}

// #endregion expectations
