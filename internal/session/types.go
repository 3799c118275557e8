package session

// #region imports
import (
	"github.com/danielpatrickdp/storage-advisor/internal/features"
	"github.com/danielpatrickdp/storage-advisor/internal/scoring"
	"github.com/danielpatrickdp/storage-advisor/internal/update"
)

// #endregion

// #region interaction-result

// InteractionResult bundles everything Process produced for one turn.
// ID is nil when the learning gate kept the interaction out of the log.
type InteractionResult struct {
	ID            *int64             `json:"id"`
	Features      features.Record    `json:"features"`
	StorageChoice scoring.Option     `json:"storage_choice"`
	StorageScore  float64            `json:"storage_score"`
	ShouldLearn   bool               `json:"should_learn"`
	GateReason    string             `json:"gate_reason"`
	Weights       map[string]float64 `json:"weights_snapshot"`
}

// #endregion

// #region feedback-result

// FeedbackResult reports the committed weight update for one feedback call.
type FeedbackResult struct {
	UpdatedWeights      map[string]float64 `json:"updated_weights"`
	LearningImprovement bool               `json:"learning_improvement"`
	Metrics             update.Metrics     `json:"-"`
}

// #endregion

// #region stats

// Stats is the session-scoped view returned by Engine.Stats.
type Stats struct {
	CurrentWeights  map[string]float64 `json:"current_weights"`
	BiasFactors     map[string]float64 `json:"bias_factors"`
	StoragePatterns map[string]float64 `json:"storage_patterns"`
	FeedbackCount   int                `json:"feedback_count"`
	AvgFeedback     float64            `json:"avg_feedback"`
}

// #endregion
