package gate

// #region imports
import (
	"fmt"

	"github.com/danielpatrickdp/storage-advisor/internal/features"
)

// #endregion

// #region gate

// Gate decides whether an interaction is novel or relevant enough to be
// logged for learning. Pure predicate over features and the storage score.
type Gate struct {
	config Config
}

// NewGate creates a gate with the given configuration.
func NewGate(config Config) *Gate {
	return &Gate{config: config}
}

// Evaluate passes an interaction when any rule fires: high storage score,
// strong user intent, or complex multi-dialect input.
func (g *Gate) Evaluate(f features.Record, storageScore float64) Decision {
	if storageScore >= g.config.MinScore {
		return Decision{
			Learn:  true,
			Reason: fmt.Sprintf("storage score %.4f at or above %.2f", storageScore, g.config.MinScore),
		}
	}
	if f.UserIntentStrength >= g.config.MinIntent {
		return Decision{
			Learn:  true,
			Reason: fmt.Sprintf("user intent %.2f at or above %.2f", f.UserIntentStrength, g.config.MinIntent),
		}
	}
	if f.Complexity >= g.config.MinComplexity && f.LanguageDiversity >= g.config.MinDiversity {
		return Decision{
			Learn:  true,
			Reason: fmt.Sprintf("complexity %.4f with diversity %.2f", f.Complexity, f.LanguageDiversity),
		}
	}
	return Decision{
		Learn:  false,
		Reason: fmt.Sprintf("below thresholds: score=%.4f intent=%.2f complexity=%.4f", storageScore, f.UserIntentStrength, f.Complexity),
	}
}

// ShouldLearn is the bare predicate form of Evaluate.
func (g *Gate) ShouldLearn(f features.Record, storageScore float64) bool {
	return g.Evaluate(f, storageScore).Learn
}

// #endregion
