package httpapi

// #region imports
import (
	"errors"
	"net/http"

	"github.com/danielpatrickdp/storage-advisor/internal/session"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
	"github.com/danielpatrickdp/storage-advisor/internal/weights"
	"github.com/gin-gonic/gin"
)

// #endregion

// #region process

// HandleProcess classifies a (blob, utterance) submission.
func HandleProcess(eng *session.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req processRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		result, err := eng.Process(req.Blob, req.Utterance)
		if err != nil {
			c.JSON(statusFor(err), errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// #endregion

// #region feedback

// HandleFeedback attaches a satisfaction rating to a past interaction.
func HandleFeedback(eng *session.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		result, err := eng.ProvideFeedback(req.ID, req.SatisfactionRating, req.Success)
		if err != nil {
			c.JSON(statusFor(err), errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// #endregion

// #region stats

// HandleStats returns the session weight view and feedback aggregates.
func HandleStats(eng *session.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.Stats())
	}
}

// #endregion

// #region decay

// HandleDecay applies one explicit round of time decay.
func HandleDecay(eng *session.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := eng.Decay()
		if err != nil {
			c.JSON(statusFor(err), errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"current_weights": snapshot})
	}
}

// #endregion

// #region health

// HandleHealth is a liveness probe.
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// #endregion

// #region error-mapping

// statusFor maps core error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnknownInteraction):
		return http.StatusNotFound
	case errors.Is(err, store.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, weights.ErrInternalInvariant):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// #endregion
