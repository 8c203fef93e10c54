package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmentor/internal/dialogue"
	"taskmentor/internal/store"
)

// POST /dialogue
func StartDialogueHandler(source store.Source, sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title string `json:"title"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		corpus := loadCorpus(c, source)
		id, state := sessions.CreateSession(req.Title, corpus)

		c.JSON(http.StatusCreated, gin.H{
			"sessionId": id,
			"state":     state,
		})
	}
}

// GET /dialogue/:id
func GetDialogueHandler(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := sessions.State(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": state})
	}
}

// POST /dialogue/:id/answers
// Out-of-order or unknown answers are absorbed by the engine, so the
// response is always the current state for a live session.
func SubmitAnswerHandler(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			QuestionID string `json:"questionId"`
			OptionID   string `json:"optionId"`
			Text       string `json:"text"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if req.QuestionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "questionId is required"})
			return
		}

		// Option answers carry the option ID, free-text answers the text
		input := req.OptionID
		if input == "" {
			input = req.Text
		}

		state, ok := sessions.WithEngine(c.Param("id"), func(e *dialogue.Engine) {
			e.SubmitAnswer(req.QuestionID, input)
		})
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": state})
	}
}

// POST /dialogue/:id/suggestion
func SelectSuggestionHandler(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SuggestionID string `json:"suggestionId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if req.SuggestionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "suggestionId is required"})
			return
		}

		state, ok := sessions.WithEngine(c.Param("id"), func(e *dialogue.Engine) {
			e.SelectSuggestion(req.SuggestionID)
		})
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": state})
	}
}

// POST /dialogue/:id/reset
func ResetDialogueHandler(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := sessions.WithEngine(c.Param("id"), func(e *dialogue.Engine) {
			e.Reset()
		})
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": state})
	}
}
