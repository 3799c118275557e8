package weights

// #region imports
import (
	"errors"
	"fmt"
	"math"
)

// #endregion

// #region errors

// ErrInternalInvariant reports a corrupted weight state. The current call is
// fatal and the owning session must be torn down.
var ErrInternalInvariant = errors.New("internal invariant violation")

// #endregion

// #region constants

// Keys is the fixed set of weight names. No additions or removals at runtime.
var Keys = []string{
	"business", "technical", "personal",
	"complexity", "frequency", "success_rate", "user_preference",
}

const (
	// MinWeight and MaxWeight bound each weight at the clamp stage,
	// before renormalization.
	MinWeight = 0.1
	MaxWeight = 0.9

	// LearningRate scales feedback adjustments.
	LearningRate = 0.1

	// SumTolerance is the allowed drift of sum(weights) from 1.
	SumTolerance = 1e-9
)

// #endregion

// #region state

// State holds the weight vector, bias factors, and per-option pattern
// multipliers for one session. Mutations go through the feedback updater
// and ApplyTimeDecay; both clamp then renormalize.
type State struct {
	Weights         map[string]float64
	BiasFactors     map[string]float64
	StoragePatterns map[string]float64
	LearningRate    float64
	FeedbackHistory []float64
}

// NewState constructs the initial weight state, normalized so the weights sum to 1.
func NewState() *State {
	s := &State{
		Weights: map[string]float64{
			"business":        0.33,
			"technical":       0.33,
			"personal":        0.34,
			"complexity":      0.5,
			"frequency":       0.3,
			"success_rate":    0.7,
			"user_preference": 0.8,
		},
		BiasFactors: map[string]float64{
			"time_decay":         0.95,
			"interaction_boost":  1.2,
			"failure_penalty":    0.8,
			"context_similarity": 1.5,
		},
		StoragePatterns: map[string]float64{},
		LearningRate:    LearningRate,
	}
	s.renormalize()
	return s
}

// #endregion

// #region snapshot

// Snapshot returns a deep copy of the weight vector.
func (s *State) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.Weights))
	for k, v := range s.Weights {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of the full state. The feedback updater operates
// on a clone so a failed log write leaves the original untouched.
func (s *State) Clone() *State {
	c := &State{
		Weights:         make(map[string]float64, len(s.Weights)),
		BiasFactors:     make(map[string]float64, len(s.BiasFactors)),
		StoragePatterns: make(map[string]float64, len(s.StoragePatterns)),
		LearningRate:    s.LearningRate,
		FeedbackHistory: append([]float64(nil), s.FeedbackHistory...),
	}
	for k, v := range s.Weights {
		c.Weights[k] = v
	}
	for k, v := range s.BiasFactors {
		c.BiasFactors[k] = v
	}
	for k, v := range s.StoragePatterns {
		c.StoragePatterns[k] = v
	}
	return c
}

// #endregion

// #region patterns

// PatternFor returns the pattern multiplier for a storage option, defaulting to 1.
func (s *State) PatternFor(option string) float64 {
	if v, ok := s.StoragePatterns[option]; ok {
		return v
	}
	return 1.0
}

// #endregion

// #region time-decay

// ApplyTimeDecay multiplies every weight except user_preference by the
// time_decay bias factor, then clamps and renormalizes.
func (s *State) ApplyTimeDecay() {
	decay := s.BiasFactors["time_decay"]
	for _, k := range Keys {
		if k == "user_preference" {
			continue
		}
		s.Weights[k] *= decay
	}
	s.ClampAndRenormalize()
}

// #endregion

// #region normalize

// ClampWeight bounds a single weight to [MinWeight, MaxWeight].
func ClampWeight(v float64) float64 {
	if v < MinWeight {
		return MinWeight
	}
	if v > MaxWeight {
		return MaxWeight
	}
	return v
}

// ClampAndRenormalize applies the per-key clamp and then rescales the
// weights to sum to 1. Pattern multipliers are never renormalized.
func (s *State) ClampAndRenormalize() {
	for _, k := range Keys {
		s.Weights[k] = ClampWeight(s.Weights[k])
	}
	s.renormalize()
}

func (s *State) renormalize() {
	var sum float64
	for _, k := range Keys {
		sum += s.Weights[k]
	}
	if sum == 0 {
		return
	}
	for _, k := range Keys {
		s.Weights[k] /= sum
	}
}

// #endregion

// #region invariants

// CheckInvariants verifies the weight-state invariants: exactly the seven
// fixed keys, weights summing to 1 within tolerance, every weight strictly
// inside (0, 1), and every pattern multiplier positive.
func (s *State) CheckInvariants() error {
	if len(s.Weights) != len(Keys) {
		return fmt.Errorf("%w: expected %d weight keys, got %d", ErrInternalInvariant, len(Keys), len(s.Weights))
	}
	var sum float64
	for _, k := range Keys {
		v, ok := s.Weights[k]
		if !ok {
			return fmt.Errorf("%w: missing weight key %q", ErrInternalInvariant, k)
		}
		if v <= 0 || v >= 1 {
			return fmt.Errorf("%w: weight %q = %.9f out of (0, 1)", ErrInternalInvariant, k, v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > SumTolerance {
		return fmt.Errorf("%w: weights sum to %.12f, want 1", ErrInternalInvariant, sum)
	}
	for opt, v := range s.StoragePatterns {
		if v <= 0 {
			return fmt.Errorf("%w: pattern multiplier for %q = %.9f not positive", ErrInternalInvariant, opt, v)
		}
	}
	return nil
}

// #endregion
