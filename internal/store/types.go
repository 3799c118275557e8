package store

import (
	"time"

	"github.com/danielpatrickdp/storage-advisor/internal/features"
)

// #region interaction-record

// InteractionRecord is one row of the interactions table. UserFeedback and
// Success stay nil until feedback arrives; the row is never deleted.
type InteractionRecord struct {
	ID            int64
	SessionID     string
	CreatedAt     time.Time
	Utterance     string
	Features      features.Record
	StorageChoice string
	StorageScore  float64
	UserFeedback  *float64
	Success       *bool
}

// #endregion

// #region pattern-update

// PatternUpdate carries a learned pattern multiplier to persist alongside a
// feedback attachment, in the same transaction.
type PatternUpdate struct {
	Option     string
	Multiplier float64
}

// PatternTypeStorageOption is the pattern_type under which per-option
// multipliers are persisted.
const PatternTypeStorageOption = "storage_option"

// #endregion
