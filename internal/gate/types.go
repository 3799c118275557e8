package gate

// #region config

// Config holds thresholds for the learning gate.
type Config struct {
	MinScore      float64 // storage score that passes on its own
	MinIntent     float64 // user intent strength that passes on its own
	MinComplexity float64 // complexity floor for the combined rule
	MinDiversity  float64 // language diversity floor for the combined rule
}

// DefaultConfig returns the standard gate thresholds.
func DefaultConfig() Config {
	return Config{
		MinScore:      0.7,
		MinIntent:     0.8,
		MinComplexity: 0.7,
		MinDiversity:  0.4,
	}
}

// #endregion

// #region decision

// Decision is the output of the gate evaluation.
type Decision struct {
	Learn  bool
	Reason string
}

// #endregion
