package logging

import "time"

// #region decision-entry
// DecisionEntry is a single row in the decision_log table.
type DecisionEntry struct {
	InteractionID int64 // 0 when the gate rejected and no row was created
	SessionID     string
	TriggerType   string // "process" | "feedback" | "decay"
	Decision      string // storage choice, "learned", "skipped", ...
	Reason        string
	CreatedAt     time.Time
}

// #endregion decision-entry

// #region decision-record
// DecisionRecord captures the full classification context of one turn.
// Serialized as JSON into decision_log.reason for later inspection.
type DecisionRecord struct {
	StorageChoice string             `json:"storage_choice"`
	StorageScore  float64            `json:"storage_score"`
	Scores        map[string]float64 `json:"scores"`
	GateReason    string             `json:"gate_reason"`
	ShouldLearn   bool               `json:"should_learn"`
}

// #endregion decision-record
