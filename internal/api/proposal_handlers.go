package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmentor/internal/proposal"
	"taskmentor/internal/store"
	"taskmentor/internal/task"
)

// POST /proposals
// One-shot generation: takes a task description, returns the full
// proposal without opening a dialogue session.
func GenerateProposalHandler(pipeline *proposal.Pipeline, source store.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Text    string           `json:"text"`
			Profile task.UserProfile `json:"profile"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}

		corpus := loadCorpus(c, source)
		prop := pipeline.Generate(c.Request.Context(), req.Text, corpus, req.Profile)

		c.JSON(http.StatusOK, gin.H{"proposal": prop})
	}
}

// loadCorpus fetches the task history. A store failure degrades to an
// empty corpus so proposals still come back, just without history.
func loadCorpus(c *gin.Context, source store.Source) []task.Record {
	corpus, err := source.Snapshot(c.Request.Context())
	if err != nil {
		log.Printf("[API] WARNING: task store snapshot failed, proceeding without history: %v", err)
		return nil
	}
	return corpus
}
