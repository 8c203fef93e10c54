// internal/api/session.go
package api

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmentor/internal/dialogue"
	"taskmentor/internal/task"
)

// SessionManager owns the live dialogue engines, keyed by session ID.
// Sessions idle past the TTL are evicted by the background sweep.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	stopChan chan struct{}
}

type session struct {
	engine     *dialogue.Engine
	lastActive time.Time
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
}

// CreateSession starts a dialogue for the given task title and returns
// the new session ID with the opening state.
func (m *SessionManager) CreateSession(title string, corpus []task.Record) (string, dialogue.State) {
	engine := dialogue.NewEngine()
	engine.StartInteraction(title, corpus)

	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = &session{engine: engine, lastActive: time.Now()}
	m.mu.Unlock()

	return id, engine.Snapshot()
}

// State returns the current snapshot. Reading a session keeps it alive.
func (m *SessionManager) State(id string) (dialogue.State, bool) {
	engine, ok := m.touch(id)
	if !ok {
		return dialogue.State{}, false
	}
	return engine.Snapshot(), true
}

// WithEngine runs fn against the session's engine and returns the
// snapshot after fn has applied.
func (m *SessionManager) WithEngine(id string, fn func(*dialogue.Engine)) (dialogue.State, bool) {
	engine, ok := m.touch(id)
	if !ok {
		return dialogue.State{}, false
	}
	fn(engine)
	return engine.Snapshot(), true
}

func (m *SessionManager) touch(id string) (*dialogue.Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastActive = time.Now()
	return s.engine, true
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start begins the eviction loop
func (m *SessionManager) Start() {
	log.Printf("[Sessions] Starting session sweep (TTL %s)", m.ttl)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.stopChan:
			log.Printf("[Sessions] Stopping session sweep")
			return
		}
	}
}

// Stop gracefully stops the sweep
func (m *SessionManager) Stop() {
	close(m.stopChan)
}

func (m *SessionManager) evictExpired() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.lastActive.Before(cutoff) {
			delete(m.sessions, id)
			log.Printf("[Sessions] Evicted idle dialogue session %s", id)
		}
	}
}
