package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"taskmentor/internal/dialogue"
	"taskmentor/internal/store"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadMessage() (int, []byte, error) {
	return s.conn.ReadMessage()
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

type wsDialogueRequest struct {
	Type         string `json:"type"` // "start", "answer", "suggestion", "reset"
	SessionID    string `json:"sessionId"`
	Title        string `json:"title"`
	QuestionID   string `json:"questionId"`
	OptionID     string `json:"optionId"`
	Text         string `json:"text"`
	SuggestionID string `json:"suggestionId"`
}

// GET /ws/dialogue
// Drives a dialogue over a single socket. A "start" message opens the
// session; later messages default to it unless they carry their own
// session ID. Every accepted message is answered with the full state.
func WSDialogueHandler(source store.Source, sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		sessionID := ""

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var req wsDialogueRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				conn.WriteJSON(map[string]string{"error": "invalid JSON"})
				continue
			}
			if req.SessionID != "" {
				sessionID = req.SessionID
			}

			switch req.Type {
			case "start":
				if strings.TrimSpace(req.Title) == "" {
					conn.WriteJSON(map[string]string{"error": "title is required"})
					continue
				}
				corpus := loadCorpus(c, source)
				id, state := sessions.CreateSession(req.Title, corpus)
				sessionID = id
				conn.WriteJSON(gin.H{"sessionId": id, "state": state})

			case "answer":
				input := req.OptionID
				if input == "" {
					input = req.Text
				}
				state, ok := sessions.WithEngine(sessionID, func(e *dialogue.Engine) {
					e.SubmitAnswer(req.QuestionID, input)
				})
				if !ok {
					conn.WriteJSON(map[string]string{"error": "session not found"})
					continue
				}
				conn.WriteJSON(gin.H{"sessionId": sessionID, "state": state})

			case "suggestion":
				state, ok := sessions.WithEngine(sessionID, func(e *dialogue.Engine) {
					e.SelectSuggestion(req.SuggestionID)
				})
				if !ok {
					conn.WriteJSON(map[string]string{"error": "session not found"})
					continue
				}
				conn.WriteJSON(gin.H{"sessionId": sessionID, "state": state})

			case "reset":
				state, ok := sessions.WithEngine(sessionID, func(e *dialogue.Engine) {
					e.Reset()
				})
				if !ok {
					conn.WriteJSON(map[string]string{"error": "session not found"})
					continue
				}
				conn.WriteJSON(gin.H{"sessionId": sessionID, "state": state})

			default:
				conn.WriteJSON(map[string]string{"error": "unknown message type"})
			}
		}
	}
}
