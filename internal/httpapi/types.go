package httpapi

// #region requests

type processRequest struct {
	Utterance string `json:"utterance" binding:"required,max=10000"`
	Blob      string `json:"blob" binding:"max=10000"`
}

type feedbackRequest struct {
	ID                 int64 `json:"id" binding:"required,min=1"`
	SatisfactionRating int   `json:"satisfaction_rating" binding:"required,min=1,max=10"`
	Success            *bool `json:"success"`
}

// #endregion requests

// #region responses

type errorResponse struct {
	Error string `json:"error"`
}

// #endregion responses
