package api

import (
	"github.com/gin-gonic/gin"

	"taskmentor/internal/config"
	"taskmentor/internal/proposal"
	"taskmentor/internal/store"
)

func SetupRouter(cfg *config.Config, pipeline *proposal.Pipeline, source store.Source, sessions *SessionManager) *gin.Engine {
	r := gin.Default()
	subpath := cfg.Server.Subpath // e.g. "/taskmentor" or any custom path, always starts with '/'

	// API routes
	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// One-shot proposal generation
		group.POST("/proposals", GenerateProposalHandler(pipeline, source))

		// Dialogue sessions
		group.POST("/dialogue", StartDialogueHandler(source, sessions))
		group.GET("/dialogue/:id", GetDialogueHandler(sessions))
		group.POST("/dialogue/:id/answers", SubmitAnswerHandler(sessions))
		group.POST("/dialogue/:id/suggestion", SelectSuggestionHandler(sessions))
		group.POST("/dialogue/:id/reset", ResetDialogueHandler(sessions))

		// --- Streaming WebSocket endpoint ---
		group.GET("/ws/dialogue", WSDialogueHandler(source, sessions))
	}
	return r
}
