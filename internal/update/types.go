package update

import "github.com/danielpatrickdp/storage-advisor/internal/scoring"

// #region feedback

// Feedback carries one feedback signal into the updater.
type Feedback struct {
	// Value is the feedback scalar in [0, 1].
	Value float64
	// ContextType selects the weight to adjust: business, technical, or personal.
	ContextType string
	// StorageChoice is the option the original interaction picked.
	StorageChoice scoring.Option
	// Success marks whether the choice worked out.
	Success bool
}

// #endregion

// #region metrics

// Metrics captures pre-renormalization telemetry from one apply cycle.
// Before/After pairs are taken at the clamp stage, before the weights are
// rescaled to sum to 1.
type Metrics struct {
	Adjustment        float64
	ContextBefore     float64
	ContextAfter      float64
	SuccessRateBefore float64
	SuccessRateAfter  float64
	PatternBefore     float64
	PatternAfter      float64
}

// #endregion

// #region apply-result

// ApplyResult bundles everything returned by Apply().
type ApplyResult struct {
	Metrics Metrics
	// Improved is true when the feedback pushed the context weight up.
	Improved bool
}

// #endregion
