package eval

// #region eval-config
// EvalConfig holds tolerances for weight-state validation.
type EvalConfig struct {
	SumTolerance float64 // allowed drift of sum(weights) from 1
	MinWeight    float64 // clamp-stage lower bound, checked informationally
	MaxWeight    float64 // clamp-stage upper bound, checked informationally
}

// DefaultEvalConfig returns the standard tolerances.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		SumTolerance: 1e-9,
		MinWeight:    0.1,
		MaxWeight:    0.9,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of weight-state validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
