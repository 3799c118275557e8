package scoring

// #region imports
import (
	"github.com/danielpatrickdp/storage-advisor/internal/features"
	"github.com/danielpatrickdp/storage-advisor/internal/weights"
)

// #endregion

// #region options

// Option names a storage bucket the scorer may choose. Opaque to the core,
// meaningful to the external caller.
type Option string

const (
	EnterpriseSQL     Option = "enterprise_sql"
	TechnicalNoSQL    Option = "technical_nosql"
	PersonalSecure    Option = "personal_secure"
	HybridIntelligent Option = "hybrid_intelligent"
)

// preferenceOrder breaks exact score ties. Earlier wins.
var preferenceOrder = []Option{
	HybridIntelligent, EnterpriseSQL, TechnicalNoSQL, PersonalSecure,
}

// Options lists all storage options in tie-break preference order.
func Options() []Option {
	return append([]Option(nil), preferenceOrder...)
}

// #endregion

// #region result

// Result bundles the winning option with the full per-option breakdown.
type Result struct {
	Choice Option
	Score  float64
	Scores map[Option]float64
}

// #endregion

// #region score-and-choose

// ScoreAndChoose combines features with the current weights into per-option
// scores and picks the winner. Deterministic for identical inputs; pure.
func ScoreAndChoose(f features.Record, w *weights.State) Result {
	base := 0.5 +
		f.BusinessIndicators*w.Weights["business"] +
		f.TechnicalIndicators*w.Weights["technical"] +
		f.PersonalIndicators*w.Weights["personal"] +
		f.Complexity*w.Weights["complexity"]

	scores := make(map[Option]float64, len(preferenceOrder))
	var winner Option
	var best float64

	// Iterate in preference order with a strict comparison so exact ties
	// resolve to the earlier option, never to map iteration order.
	for _, opt := range preferenceOrder {
		s := clamp(applyBoosts(opt, base*w.PatternFor(string(opt)), f))
		scores[opt] = s
		if winner == "" || s > best {
			winner = opt
			best = s
		}
	}

	return Result{Choice: winner, Score: best, Scores: scores}
}

// #endregion

// #region boosts

// applyBoosts multiplies in each option's boost conditions, in listed order,
// before the final clamp.
func applyBoosts(opt Option, s float64, f features.Record) float64 {
	switch opt {
	case EnterpriseSQL:
		if f.BusinessIndicators >= 0.9 {
			s *= 1.3
		}
		if f.StructureType == features.StructureSQL || f.StructureType == features.StructureTabular {
			s *= 1.2
		}
		if f.Complexity >= 0.7 {
			s *= 1.1
		}
	case TechnicalNoSQL:
		if f.TechnicalIndicators >= 0.8 {
			s *= 1.3
		}
		if f.StructureType == features.StructureJSON || f.StructureType == features.StructureCode {
			s *= 1.2
		}
		if f.Complexity >= 0.6 {
			s *= 1.1
		}
	case PersonalSecure:
		if f.PersonalIndicators >= 0.9 {
			s *= 1.3
		}
		if f.StructureType == features.StructureText {
			s *= 1.2
		}
		if f.Complexity >= 0.3 {
			s *= 1.1
		}
	case HybridIntelligent:
		if f.LanguageDiversity >= 0.5 {
			s *= 1.2
		}
		if f.Complexity >= 0.8 {
			s *= 1.1
		}
	}
	return s
}

// #endregion

// #region helpers

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion
