package eval

// #region imports
import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/storage-advisor/internal/weights"
)

// #endregion

// #region eval-harness
// EvalHarness runs lightweight validation on a weight state after updates.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run checks the weight sum, per-key presence and bounds, and pattern
// multiplier positivity. Returns pass/fail with per-check metrics.
func (h *EvalHarness) Run(s *weights.State) EvalResult {
	var metrics []EvalMetric
	passed := true
	var failReasons []string

	// 1. Weight sum within tolerance of 1
	var sum float64
	for _, k := range weights.Keys {
		sum += s.Weights[k]
	}
	sumPass := math.Abs(sum-1.0) <= h.config.SumTolerance
	metrics = append(metrics, EvalMetric{
		Name:  "weight_sum",
		Value: sum,
		Pass:  sumPass,
	})
	if !sumPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("weight sum %.12f drifts from 1", sum))
	}

	// 2. Each key present with a positive weight below 1
	keyCount := 0
	for _, k := range weights.Keys {
		v, ok := s.Weights[k]
		if ok {
			keyCount++
		}
		keyPass := ok && v > 0 && v < 1
		metrics = append(metrics, EvalMetric{
			Name:  fmt.Sprintf("weight_%s", k),
			Value: v,
			Pass:  keyPass,
		})
		if !keyPass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("weight %s = %.9f out of (0, 1)", k, v))
		}
	}
	keySetPass := keyCount == len(weights.Keys) && len(s.Weights) == len(weights.Keys)
	metrics = append(metrics, EvalMetric{
		Name:  "weight_key_count",
		Value: float64(len(s.Weights)),
		Pass:  keySetPass,
	})
	if !keySetPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("%d weight keys, want %d", len(s.Weights), len(weights.Keys)))
	}

	// 3. Pattern multipliers strictly positive
	for opt, v := range s.StoragePatterns {
		patPass := v > 0
		metrics = append(metrics, EvalMetric{
			Name:  fmt.Sprintf("pattern_%s", opt),
			Value: v,
			Pass:  patPass,
		})
		if !patPass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("pattern %s = %.9f not positive", opt, v))
		}
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// RunSnapshot validates weight and pattern snapshots taken from a session.
func (h *EvalHarness) RunSnapshot(w, patterns map[string]float64) EvalResult {
	return h.Run(&weights.State{Weights: w, StoragePatterns: patterns})
}

// #endregion eval-harness
