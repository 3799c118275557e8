package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/storage-advisor/internal/features"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
)

func tempDB(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLogDecision(t *testing.T) {
	st := tempDB(t)

	id, err := st.Record("sess-1", "store this", features.Record{StructureType: features.StructureText}, "personal_secure", 0.62)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	err = LogDecision(st.DB(), DecisionEntry{
		InteractionID: id,
		SessionID:     "sess-1",
		TriggerType:   "process",
		Decision:      "personal_secure",
		Reason:        `{"storage_choice":"personal_secure"}`,
	})
	if err != nil {
		t.Fatalf("LogDecision: %v", err)
	}

	var trigger, decision string
	var gotID int64
	row := st.DB().QueryRow(`SELECT interaction_id, trigger_type, decision FROM decision_log WHERE interaction_id = ?`, id)
	if err := row.Scan(&gotID, &trigger, &decision); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if gotID != id || trigger != "process" || decision != "personal_secure" {
		t.Fatalf("row = (%d, %s, %s)", gotID, trigger, decision)
	}
}

func TestLogDecisionWithoutInteraction(t *testing.T) {
	st := tempDB(t)

	// Decay entries have no backing interaction; the id column stays null.
	err := LogDecision(st.DB(), DecisionEntry{
		SessionID:   "sess-1",
		TriggerType: "decay",
		Decision:    "applied",
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("LogDecision: %v", err)
	}

	var n int
	err = st.DB().QueryRow(`SELECT COUNT(*) FROM decision_log WHERE interaction_id IS NULL AND trigger_type = 'decay'`).Scan(&n)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
