package update

// #region imports
import (
	"fmt"

	"github.com/danielpatrickdp/storage-advisor/internal/weights"
)

// #endregion

// #region apply

// Apply mutates the weight state for one feedback signal:
//
//  1. adjustment = learning_rate * (f - 0.5)
//  2. clamp the context weight after adding the adjustment
//  3. scale success_rate and the choice's pattern multiplier by the
//     success/failure factors
//  4. renormalize the weights (never the pattern multipliers)
//  5. append f to the feedback history
//
// The renormalization happens once, after the multipliers, and that ordering
// is load-bearing for the weight-sum invariant. Callers pass a clone when the
// mutation must be abandonable.
func Apply(s *weights.State, fb Feedback) (ApplyResult, error) {
	if fb.Value < 0 || fb.Value > 1 {
		return ApplyResult{}, fmt.Errorf("feedback value %.4f out of [0, 1]", fb.Value)
	}
	if _, ok := s.Weights[fb.ContextType]; !ok ||
		(fb.ContextType != "business" && fb.ContextType != "technical" && fb.ContextType != "personal") {
		return ApplyResult{}, fmt.Errorf("unknown context type %q", fb.ContextType)
	}

	adjustment := s.LearningRate * (fb.Value - 0.5)

	m := Metrics{
		Adjustment:        adjustment,
		ContextBefore:     s.Weights[fb.ContextType],
		SuccessRateBefore: s.Weights["success_rate"],
		PatternBefore:     s.PatternFor(string(fb.StorageChoice)),
	}

	s.Weights[fb.ContextType] = weights.ClampWeight(s.Weights[fb.ContextType] + adjustment)

	if fb.Success {
		s.Weights["success_rate"] *= s.BiasFactors["interaction_boost"]
		s.StoragePatterns[string(fb.StorageChoice)] = m.PatternBefore * 1.1
	} else {
		s.Weights["success_rate"] *= s.BiasFactors["failure_penalty"]
		s.StoragePatterns[string(fb.StorageChoice)] = m.PatternBefore * 0.9
	}

	m.ContextAfter = s.Weights[fb.ContextType]
	m.SuccessRateAfter = s.Weights["success_rate"]
	m.PatternAfter = s.StoragePatterns[string(fb.StorageChoice)]

	s.ClampAndRenormalize()
	s.FeedbackHistory = append(s.FeedbackHistory, fb.Value)

	return ApplyResult{
		Metrics:  m,
		Improved: m.ContextAfter > m.ContextBefore,
	}, nil
}

// #endregion
