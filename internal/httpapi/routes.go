package httpapi

import (
	"github.com/danielpatrickdp/storage-advisor/internal/session"
	"github.com/gin-gonic/gin"
)

// #region routes

// SetupRoutes registers the advisor API on a gin router.
func SetupRoutes(router *gin.Engine, eng *session.Engine) {
	router.GET("/health", HandleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/process", HandleProcess(eng))
		v1.POST("/feedback", HandleFeedback(eng))
		v1.GET("/stats", HandleStats(eng))
		v1.POST("/decay", HandleDecay(eng))
	}
}

// #endregion
