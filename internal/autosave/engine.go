// Package autosave keeps one editing session per open resume draft and
// flushes changes to persistence on a debounce. Each session runs a single
// event loop goroutine, so state transitions never race; the actual save runs
// off-loop with at most one in flight per session.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/telemetry"
)

// Saver persists a draft wholesale. *resumes.Service satisfies it.
type Saver interface {
	Upsert(ctx context.Context, userID string, doc resumes.Document) (resumes.Resume, error)
}

var (
	// ErrSessionNotFound covers both unknown session ids and sessions
	// belonging to another user.
	ErrSessionNotFound = errors.New("editor session not found")
	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("editor session closed")
)

// DefaultDebounce is how long the engine waits after the last edit before
// persisting.
const DefaultDebounce = 1200 * time.Millisecond

// Engine owns the set of live editing sessions.
type Engine struct {
	saver    Saver
	debounce time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewEngine(saver Saver, debounce time.Duration) *Engine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Engine{
		saver:    saver,
		debounce: debounce,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session for a draft. The document may carry an id (editing a
// stored resume) or not (a brand new draft); either way the session starts
// clean: opening is not an edit.
func (e *Engine) Open(userID string, doc resumes.Document) *Session {
	s := newSession(uuid.NewString(), userID, doc, e.saver, e.debounce)

	e.mu.Lock()
	e.sessions[s.ID] = s
	e.mu.Unlock()

	telemetry.Info("editor session opened", map[string]any{
		"session_id": s.ID,
		"resume_id":  doc.ID,
	})
	return s
}

// Get returns the user's session by id.
func (e *Engine) Get(userID, sessionID string) (*Session, error) {
	e.mu.RLock()
	s, ok := e.sessions[sessionID]
	e.mu.RUnlock()
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close stops a session and forgets it. Unsaved edits are dropped; callers
// wanting a guard should check Status first.
func (e *Engine) Close(userID, sessionID string) error {
	e.mu.Lock()
	s, ok := e.sessions[sessionID]
	if ok && s.UserID == userID {
		delete(e.sessions, sessionID)
	}
	e.mu.Unlock()
	if !ok || s.UserID != userID {
		return ErrSessionNotFound
	}
	s.close()
	telemetry.Info("editor session closed", map[string]any{"session_id": sessionID})
	return nil
}

// Shutdown closes every live session.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	sessions := e.sessions
	e.sessions = make(map[string]*Session)
	e.mu.Unlock()
	for _, s := range sessions {
		s.close()
	}
}
