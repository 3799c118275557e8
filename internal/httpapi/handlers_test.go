package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/storage-advisor/internal/session"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	eng, err := session.NewEngine(st)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	router := gin.New()
	SetupRoutes(router, eng)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProcessEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/process", gin.H{
		"utterance": "store this business query for quarterly analysis",
		"blob":      "SELECT revenue, profit FROM quarterly_reports WHERE year = 2024",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID            *int64  `json:"id"`
		StorageChoice string  `json:"storage_choice"`
		StorageScore  float64 `json:"storage_score"`
		ShouldLearn   bool    `json:"should_learn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StorageChoice != "enterprise_sql" {
		t.Fatalf("storage_choice = %s", resp.StorageChoice)
	}
	if !resp.ShouldLearn || resp.ID == nil {
		t.Fatalf("expected learned interaction with id, got %+v", resp)
	}
}

func TestProcessEndpointRejectsMissingUtterance(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/process", gin.H{"blob": "data"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestProcessEndpointRejectsBlockedContent(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/process", gin.H{
		"utterance": "store this",
		"blob":      "<script>alert(1)</script>",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestFeedbackEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/process", gin.H{
		"utterance": "store this business query for quarterly analysis",
		"blob":      "SELECT revenue, profit FROM quarterly_reports WHERE year = 2024",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("process status = %d", w.Code)
	}
	var processed struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &processed); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/v1/feedback", gin.H{
		"id":                  *processed.ID,
		"satisfaction_rating": 9,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("feedback status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		UpdatedWeights      map[string]float64 `json:"updated_weights"`
		LearningImprovement bool               `json:"learning_improvement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.LearningImprovement {
		t.Fatal("rating 9 must report improvement")
	}
	if len(resp.UpdatedWeights) != 7 {
		t.Fatalf("updated_weights has %d keys", len(resp.UpdatedWeights))
	}
}

func TestFeedbackEndpointUnknownID(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/feedback", gin.H{
		"id":                  999,
		"satisfaction_rating": 7,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestFeedbackEndpointRejectsBadRating(t *testing.T) {
	router := testRouter(t)

	for _, rating := range []int{0, 11} {
		w := doJSON(t, router, http.MethodPost, "/v1/feedback", gin.H{
			"id":                  1,
			"satisfaction_rating": rating,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("rating %d: status = %d, want 400", rating, w.Code)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		CurrentWeights map[string]float64 `json:"current_weights"`
		BiasFactors    map[string]float64 `json:"bias_factors"`
		FeedbackCount  int                `json:"feedback_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.CurrentWeights) != 7 {
		t.Fatalf("current_weights has %d keys", len(resp.CurrentWeights))
	}
	if resp.BiasFactors["interaction_boost"] != 1.2 {
		t.Fatalf("interaction_boost = %f", resp.BiasFactors["interaction_boost"])
	}
	if resp.FeedbackCount != 0 {
		t.Fatalf("feedback_count = %d", resp.FeedbackCount)
	}
}

func TestDecayEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/decay", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		CurrentWeights map[string]float64 `json:"current_weights"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var sum float64
	for _, v := range resp.CurrentWeights {
		sum += v
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Fatalf("decayed weights sum to %f", sum)
	}
}
