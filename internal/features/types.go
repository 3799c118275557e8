package features

// #region structure

// Structure classifies the shape of a data blob.
type Structure string

const (
	StructureJSON    Structure = "json"
	StructureSQL     Structure = "sql"
	StructureCode    Structure = "code"
	StructureTabular Structure = "tabular"
	StructureText    Structure = "text"
)

// #endregion

// #region record

// Record is the fixed feature vector extracted from one (blob, utterance) pair.
// All scalar fields are in [0, 1]. Immutable once produced.
type Record struct {
	LengthNorm          float64   `json:"length_norm"`
	Complexity          float64   `json:"complexity"`
	BusinessIndicators  float64   `json:"business_indicators"`
	TechnicalIndicators float64   `json:"technical_indicators"`
	PersonalIndicators  float64   `json:"personal_indicators"`
	LanguageDiversity   float64   `json:"language_diversity"`
	StructureType       Structure `json:"structure_type"`
	UserIntentStrength  float64   `json:"user_intent_strength"`
}

// #endregion

// #region dominant-context

// DominantContext returns the argmax category of the three indicator scores.
// Ties resolve in the order business, technical, personal.
func (r Record) DominantContext() string {
	best := "business"
	bestVal := r.BusinessIndicators
	if r.TechnicalIndicators > bestVal {
		best = "technical"
		bestVal = r.TechnicalIndicators
	}
	if r.PersonalIndicators > bestVal {
		best = "personal"
	}
	return best
}

// #endregion
