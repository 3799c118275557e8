package session

// #region imports
import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/danielpatrickdp/storage-advisor/internal/features"
	"github.com/danielpatrickdp/storage-advisor/internal/gate"
	"github.com/danielpatrickdp/storage-advisor/internal/logging"
	"github.com/danielpatrickdp/storage-advisor/internal/scoring"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
	"github.com/danielpatrickdp/storage-advisor/internal/update"
	"github.com/danielpatrickdp/storage-advisor/internal/weights"
	"github.com/google/uuid"
)

// #endregion

// #region engine-struct

// Engine is the single entry point for one session: it composes the feature
// extractor, scorer, learning gate, interaction log, and feedback updater.
// Each engine owns its weight state; only the interaction log is shared.
type Engine struct {
	id      string
	store   *store.Store
	gate    *gate.Gate
	weights *weights.State

	mu        sync.Mutex
	corrupted bool
}

// #endregion

// #region constructor

// NewEngine creates a session engine over the shared interaction log and
// rehydrates persisted pattern multipliers into a fresh weight state.
func NewEngine(st *store.Store) (*Engine, error) {
	e := &Engine{
		id:      uuid.New().String(),
		store:   st,
		gate:    gate.NewGate(gate.DefaultConfig()),
		weights: weights.NewState(),
	}

	patterns, err := st.LoadPatterns(store.PatternTypeStorageOption)
	if err != nil {
		return nil, fmt.Errorf("rehydrate patterns: %w", err)
	}
	for opt, mult := range patterns {
		if mult > 0 {
			e.weights.StoragePatterns[opt] = mult
		}
	}

	return e, nil
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// #endregion

// #region process

// Process classifies one (blob, utterance) submission. When the learning gate
// passes, the interaction is persisted and the returned result carries its id.
// Blocking; no weight mutation happens here.
func (e *Engine) Process(blob, utterance string) (InteractionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guard(); err != nil {
		return InteractionResult{}, err
	}
	if err := validateInput(blob, utterance); err != nil {
		return InteractionResult{}, err
	}

	f := features.Extract(blob, utterance)
	scored := scoring.ScoreAndChoose(f, e.weights)
	decision := e.gate.Evaluate(f, scored.Score)

	result := InteractionResult{
		Features:      f,
		StorageChoice: scored.Choice,
		StorageScore:  scored.Score,
		ShouldLearn:   decision.Learn,
		GateReason:    decision.Reason,
		Weights:       e.weights.Snapshot(),
	}

	log.Printf("[SESSION] classify: choice=%s score=%.4f learn=%v",
		scored.Choice, scored.Score, decision.Learn)

	if !decision.Learn {
		return result, nil
	}

	id, err := e.store.Record(e.id, utterance, f, string(scored.Choice), scored.Score)
	if err != nil {
		return InteractionResult{}, fmt.Errorf("record interaction: %w", err)
	}
	result.ID = &id

	e.logDecision(id, "process", string(scored.Choice), logging.DecisionRecord{
		StorageChoice: string(scored.Choice),
		StorageScore:  scored.Score,
		Scores:        optionScores(scored.Scores),
		GateReason:    decision.Reason,
		ShouldLearn:   true,
	})

	return result, nil
}

// #endregion

// #region provide-feedback

// ProvideFeedback converts a 1..10 satisfaction rating into a feedback scalar
// and applies the bounded weight update for the referenced interaction.
// success may be nil, in which case it is inferred from the rating.
// The log write and the weight mutation commit together or not at all: the
// update runs on a clone that is only swapped in after the store commits.
func (e *Engine) ProvideFeedback(id int64, satisfaction int, success *bool) (FeedbackResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guard(); err != nil {
		return FeedbackResult{}, err
	}
	if err := validateSatisfaction(satisfaction); err != nil {
		return FeedbackResult{}, err
	}

	rec, err := e.store.Load(id)
	if err != nil {
		return FeedbackResult{}, err
	}

	f := float64(satisfaction) / 10.0
	succ := f >= 0.7
	if success != nil {
		succ = *success
	}

	next := e.weights.Clone()
	applied, err := update.Apply(next, update.Feedback{
		Value:         f,
		ContextType:   rec.Features.DominantContext(),
		StorageChoice: scoring.Option(rec.StorageChoice),
		Success:       succ,
	})
	if err != nil {
		return FeedbackResult{}, fmt.Errorf("apply feedback: %w", err)
	}

	if err := next.CheckInvariants(); err != nil {
		e.corrupted = true
		return FeedbackResult{}, fmt.Errorf("session %s torn down: %w", e.id, err)
	}

	err = e.store.AttachFeedback(id, f, succ, &store.PatternUpdate{
		Option:     rec.StorageChoice,
		Multiplier: next.PatternFor(rec.StorageChoice),
	})
	if err != nil {
		// Weight state untouched: the mutation lived on the clone.
		return FeedbackResult{}, err
	}
	e.weights = next

	log.Printf("[SESSION] feedback: id=%d f=%.2f success=%v context=%s improved=%v",
		id, f, succ, rec.Features.DominantContext(), applied.Improved)

	e.logDecision(id, "feedback", "learned", logging.DecisionRecord{
		StorageChoice: rec.StorageChoice,
		StorageScore:  rec.StorageScore,
		ShouldLearn:   true,
	})

	return FeedbackResult{
		UpdatedWeights:      e.weights.Snapshot(),
		LearningImprovement: applied.Improved,
		Metrics:             applied.Metrics,
	}, nil
}

// #endregion

// #region decay

// Decay applies one round of time decay to every weight except
// user_preference. Explicit external call; no timer triggers it.
func (e *Engine) Decay() (map[string]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guard(); err != nil {
		return nil, err
	}

	e.weights.ApplyTimeDecay()
	if err := e.weights.CheckInvariants(); err != nil {
		e.corrupted = true
		return nil, fmt.Errorf("session %s torn down: %w", e.id, err)
	}

	e.logDecision(0, "decay", "applied", logging.DecisionRecord{})
	return e.weights.Snapshot(), nil
}

// #endregion

// #region stats

// Stats returns the session-scoped weight view plus feedback aggregates.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	patterns := make(map[string]float64, len(e.weights.StoragePatterns))
	for k, v := range e.weights.StoragePatterns {
		patterns[k] = v
	}
	bias := make(map[string]float64, len(e.weights.BiasFactors))
	for k, v := range e.weights.BiasFactors {
		bias[k] = v
	}

	var avg float64
	if n := len(e.weights.FeedbackHistory); n > 0 {
		var sum float64
		for _, v := range e.weights.FeedbackHistory {
			sum += v
		}
		avg = sum / float64(n)
	}

	return Stats{
		CurrentWeights:  e.weights.Snapshot(),
		BiasFactors:     bias,
		StoragePatterns: patterns,
		FeedbackCount:   len(e.weights.FeedbackHistory),
		AvgFeedback:     avg,
	}
}

// #endregion

// #region helpers

// guard rejects calls on a torn-down session.
func (e *Engine) guard() error {
	if e.corrupted {
		return fmt.Errorf("session %s: %w: state corrupted", e.id, weights.ErrInternalInvariant)
	}
	return nil
}

// logDecision writes to the decision log. Best-effort: the decision log is
// diagnostic, so failures are logged and the call proceeds.
func (e *Engine) logDecision(interactionID int64, trigger, decision string, rec logging.DecisionRecord) {
	reason := ""
	if rec.StorageChoice != "" {
		if data, err := json.Marshal(rec); err == nil {
			reason = string(data)
		}
	}
	err := logging.LogDecision(e.store.DB(), logging.DecisionEntry{
		InteractionID: interactionID,
		SessionID:     e.id,
		TriggerType:   trigger,
		Decision:      decision,
		Reason:        reason,
	})
	if err != nil {
		log.Printf("[SESSION] decision log error: %v", err)
	}
}

// optionScores converts the per-option breakdown to string keys for JSON.
func optionScores(scores map[scoring.Option]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for opt, s := range scores {
		out[string(opt)] = s
	}
	return out
}

// #endregion
