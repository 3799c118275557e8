package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/storage-advisor/internal/features"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleFeatures() features.Record {
	return features.Extract("SELECT revenue FROM reports", "store this business query")
}

func TestRecordAndLoad(t *testing.T) {
	s := tempDB(t)
	f := sampleFeatures()

	id, err := s.Record("sess-1", "store this business query", f, "enterprise_sql", 0.64)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	rec, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.SessionID != "sess-1" {
		t.Fatalf("session = %s, want sess-1", rec.SessionID)
	}
	if rec.StorageChoice != "enterprise_sql" || rec.StorageScore != 0.64 {
		t.Fatalf("choice/score = %s/%f", rec.StorageChoice, rec.StorageScore)
	}
	if rec.Features != f {
		t.Fatalf("features roundtrip mismatch: %+v vs %+v", rec.Features, f)
	}
	if rec.UserFeedback != nil || rec.Success != nil {
		t.Fatal("feedback fields must start null")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestIdsMonotonic(t *testing.T) {
	s := tempDB(t)
	f := sampleFeatures()

	var prev int64
	for i := 0; i < 5; i++ {
		id, err := s.Record("sess-1", "utterance", f, "technical_nosql", 0.5)
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
		if id <= prev {
			t.Fatalf("id %d not strictly greater than %d", id, prev)
		}
		prev = id
	}
}

func TestAttachFeedback(t *testing.T) {
	s := tempDB(t)
	id, err := s.Record("sess-1", "utterance", sampleFeatures(), "enterprise_sql", 0.7)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	err = s.AttachFeedback(id, 0.9, true, &PatternUpdate{Option: "enterprise_sql", Multiplier: 1.1})
	if err != nil {
		t.Fatalf("AttachFeedback: %v", err)
	}

	rec, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.UserFeedback == nil || *rec.UserFeedback != 0.9 {
		t.Fatalf("feedback = %v, want 0.9", rec.UserFeedback)
	}
	if rec.Success == nil || !*rec.Success {
		t.Fatalf("success = %v, want true", rec.Success)
	}

	patterns, err := s.LoadPatterns(PatternTypeStorageOption)
	if err != nil {
		t.Fatalf("LoadPatterns: %v", err)
	}
	if patterns["enterprise_sql"] != 1.1 {
		t.Fatalf("pattern = %f, want 1.1", patterns["enterprise_sql"])
	}
}

func TestAttachFeedbackUnknownID(t *testing.T) {
	s := tempDB(t)

	err := s.AttachFeedback(999, 0.5, true, nil)
	if !errors.Is(err, ErrUnknownInteraction) {
		t.Fatalf("expected ErrUnknownInteraction, got %v", err)
	}

	// The pattern upsert must not have happened either.
	patterns, err := s.LoadPatterns(PatternTypeStorageOption)
	if err != nil {
		t.Fatalf("LoadPatterns: %v", err)
	}
	if len(patterns) != 0 {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}

func TestLoadUnknownID(t *testing.T) {
	s := tempDB(t)

	_, err := s.Load(42)
	if !errors.Is(err, ErrUnknownInteraction) {
		t.Fatalf("expected ErrUnknownInteraction, got %v", err)
	}
}

func TestPatternUpsertIncrementsUsage(t *testing.T) {
	s := tempDB(t)
	f := sampleFeatures()

	for i := 0; i < 2; i++ {
		id, err := s.Record("sess-1", "utterance", f, "personal_secure", 0.7)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		mult := 1.1
		if i == 1 {
			mult = 1.21
		}
		if err := s.AttachFeedback(id, 0.9, true, &PatternUpdate{Option: "personal_secure", Multiplier: mult}); err != nil {
			t.Fatalf("AttachFeedback: %v", err)
		}
	}

	var usage int
	var score float64
	err := s.DB().QueryRow(
		`SELECT usage_count, effectiveness_score FROM learned_patterns WHERE pattern_id = ?`,
		PatternTypeStorageOption+":personal_secure",
	).Scan(&usage, &score)
	if err != nil {
		t.Fatalf("query pattern: %v", err)
	}
	if usage != 2 {
		t.Fatalf("usage_count = %d, want 2", usage)
	}
	if score != 1.21 {
		t.Fatalf("effectiveness_score = %f, want 1.21", score)
	}
}

func TestFeedbackSummary(t *testing.T) {
	s := tempDB(t)
	f := sampleFeatures()

	id1, _ := s.Record("sess-1", "a", f, "enterprise_sql", 0.7)
	id2, _ := s.Record("sess-1", "b", f, "enterprise_sql", 0.7)
	s.Record("sess-1", "c", f, "enterprise_sql", 0.7)

	if err := s.AttachFeedback(id1, 0.8, true, nil); err != nil {
		t.Fatalf("AttachFeedback: %v", err)
	}
	if err := s.AttachFeedback(id2, 0.4, false, nil); err != nil {
		t.Fatalf("AttachFeedback: %v", err)
	}

	count, avg, err := s.FeedbackSummary()
	if err != nil {
		t.Fatalf("FeedbackSummary: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if avg < 0.59 || avg > 0.61 {
		t.Fatalf("avg = %f, want 0.6", avg)
	}
}

func TestListRecentNewestFirst(t *testing.T) {
	s := tempDB(t)
	f := sampleFeatures()

	for i := 0; i < 4; i++ {
		if _, err := s.Record("sess-1", "utterance", f, "enterprise_sql", 0.5); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recs, err := s.ListRecent(3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].ID >= recs[i-1].ID {
			t.Fatalf("not newest first: %d then %d", recs[i-1].ID, recs[i].ID)
		}
	}
}
