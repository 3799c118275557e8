package store

// #region imports
import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/storage-advisor/internal/features"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS interactions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id     TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	utterance      TEXT NOT NULL,
	features_json  TEXT NOT NULL,
	storage_choice TEXT NOT NULL,
	storage_score  REAL NOT NULL,
	user_feedback  REAL,
	success        INTEGER
);

CREATE TABLE IF NOT EXISTS learned_patterns (
	pattern_id          TEXT PRIMARY KEY,
	pattern_type        TEXT NOT NULL,
	pattern_data        TEXT NOT NULL,
	effectiveness_score REAL NOT NULL,
	usage_count         INTEGER NOT NULL DEFAULT 0,
	last_updated        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS decision_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	interaction_id INTEGER,
	session_id     TEXT,
	trigger_type   TEXT NOT NULL,
	decision       TEXT NOT NULL,
	reason         TEXT,
	created_at     TEXT NOT NULL,
	FOREIGN KEY (interaction_id) REFERENCES interactions(id)
);
`

// #endregion schema

// #region store-struct
// Store is the interaction log: append-only interaction rows plus a single
// point-update per row when feedback arrives. Shared across sessions.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", unavailable(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", unavailable(err))
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", unavailable(err))
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", unavailable(err))
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region record
// Record appends an interaction and returns its freshly allocated id.
// Ids are monotonic per the AUTOINCREMENT column; the write is durable on return.
func (s *Store) Record(sessionID, utterance string, f features.Record, choice string, score float64) (int64, error) {
	featJSON, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("marshal features: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO interactions (session_id, created_at, utterance, features_json, storage_choice, storage_score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, time.Now().UTC().Format(time.RFC3339Nano), utterance, string(featJSON), choice, score,
	)
	if err != nil {
		return 0, fmt.Errorf("insert interaction: %w", unavailable(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("interaction id: %w", unavailable(err))
	}
	return id, nil
}

// #endregion record

// #region attach-feedback
// AttachFeedback sets the feedback columns on an interaction and, when a
// pattern update is supplied, upserts the learned pattern in the same
// transaction. Returns ErrUnknownInteraction when the id does not exist.
func (s *Store) AttachFeedback(id int64, feedback float64, success bool, pattern *PatternUpdate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", unavailable(err))
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE interactions SET user_feedback = ?, success = ? WHERE id = ?`,
		feedback, boolToInt(success), id,
	)
	if err != nil {
		return fmt.Errorf("update interaction %d: %w", id, unavailable(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", unavailable(err))
	}
	if affected == 0 {
		return fmt.Errorf("interaction %d: %w", id, ErrUnknownInteraction)
	}

	if pattern != nil {
		patternID := PatternTypeStorageOption + ":" + pattern.Option
		_, err = tx.Exec(
			`INSERT INTO learned_patterns (pattern_id, pattern_type, pattern_data, effectiveness_score, usage_count, last_updated)
			 VALUES (?, ?, ?, ?, 1, ?)
			 ON CONFLICT(pattern_id) DO UPDATE SET
				effectiveness_score = excluded.effectiveness_score,
				usage_count = usage_count + 1,
				last_updated = excluded.last_updated`,
			patternID, PatternTypeStorageOption, pattern.Option, pattern.Multiplier,
			time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("upsert pattern %s: %w", patternID, unavailable(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", unavailable(err))
	}
	return nil
}

// #endregion attach-feedback

// #region load
// Load retrieves a single interaction by id.
func (s *Store) Load(id int64) (InteractionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, created_at, utterance, features_json, storage_choice, storage_score, user_feedback, success
		 FROM interactions WHERE id = ?`, id,
	)
	rec, err := scanInteraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return InteractionRecord{}, fmt.Errorf("interaction %d: %w", id, ErrUnknownInteraction)
	}
	if err != nil {
		return InteractionRecord{}, fmt.Errorf("load interaction %d: %w", id, unavailable(err))
	}
	return rec, nil
}

// #endregion load

// #region list-recent
// ListRecent returns the most recent interactions, newest first.
func (s *Store) ListRecent(limit int) ([]InteractionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, created_at, utterance, features_json, storage_choice, storage_score, user_feedback, success
		 FROM interactions ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", unavailable(err))
	}
	defer rows.Close()

	var records []InteractionRecord
	for rows.Next() {
		rec, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-recent

// #region patterns
// LoadPatterns returns effectiveness scores keyed by pattern_data for one
// pattern type. Used to rehydrate pattern multipliers for a new session.
func (s *Store) LoadPatterns(patternType string) (map[string]float64, error) {
	rows, err := s.db.Query(
		`SELECT pattern_data, effectiveness_score FROM learned_patterns WHERE pattern_type = ?`,
		patternType,
	)
	if err != nil {
		return nil, fmt.Errorf("load patterns: %w", unavailable(err))
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var data string
		var score float64
		if err := rows.Scan(&data, &score); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		out[data] = score
	}
	return out, rows.Err()
}

// #endregion patterns

// #region feedback-summary
// FeedbackSummary aggregates the feedback stored across all sessions.
func (s *Store) FeedbackSummary() (count int64, avg float64, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(user_feedback), COALESCE(AVG(user_feedback), 0)
		 FROM interactions WHERE user_feedback IS NOT NULL`,
	).Scan(&count, &avg)
	if err != nil {
		return 0, 0, fmt.Errorf("feedback summary: %w", unavailable(err))
	}
	return count, avg, nil
}

// #endregion feedback-summary

// #region scan-helpers

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInteraction(r rowScanner) (InteractionRecord, error) {
	var rec InteractionRecord
	var createdStr string
	var featJSON string
	var feedback sql.NullFloat64
	var success sql.NullInt64

	err := r.Scan(&rec.ID, &rec.SessionID, &createdStr, &rec.Utterance, &featJSON,
		&rec.StorageChoice, &rec.StorageScore, &feedback, &success)
	if err != nil {
		return InteractionRecord{}, err
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if err := json.Unmarshal([]byte(featJSON), &rec.Features); err != nil {
		return InteractionRecord{}, fmt.Errorf("unmarshal features: %w", err)
	}
	if feedback.Valid {
		v := feedback.Float64
		rec.UserFeedback = &v
	}
	if success.Valid {
		b := success.Int64 != 0
		rec.Success = &b
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion scan-helpers
