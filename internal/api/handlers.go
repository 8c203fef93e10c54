package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmentor/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"embedding": gin.H{
				"model": cfg.Embedding.Model,
			},
			"taskstore": gin.H{
				"driver": cfg.TaskStore.Driver,
			},
			"retrieval": gin.H{
				"similarity_threshold": cfg.Retrieval.SimilarityThreshold,
			},
			"dialogue": gin.H{
				"session_ttl_minutes": cfg.Dialogue.SessionTTLMinutes,
			},
		})
	}
}
