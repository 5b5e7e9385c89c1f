package autosave

import (
	"context"
	"sync"
	"time"

	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/telemetry"
)

// State is where a session sits in the save cycle.
type State string

const (
	// StateClean: the draft matches the last persisted snapshot.
	StateClean State = "clean"
	// StateDirty: edits are pending and the debounce window is open.
	StateDirty State = "dirty"
	// StateSaving: a persist is in flight.
	StateSaving State = "saving"
	// StateSaveFailed: the last persist failed; edits are retained and a
	// retry or further editing resumes the cycle.
	StateSaveFailed State = "saveFailed"
)

// Status is the session snapshot the editor polls, including the
// unsaved-changes flag backing the navigation guard.
type Status struct {
	SessionID      string     `json:"sessionId"`
	ResumeID       string     `json:"resumeId,omitempty"`
	State          State      `json:"state"`
	UnsavedChanges bool       `json:"unsavedChanges"`
	LastSavedAt    *time.Time `json:"lastSavedAt,omitempty"`
	Error          string     `json:"error,omitempty"`
}

const saveTimeout = 30 * time.Second

// Session is one open draft. All state below the channels is owned by the
// event loop goroutine; public methods run their work on that loop.
type Session struct {
	ID     string
	UserID string

	saver    Saver
	debounce time.Duration

	cmds      chan func()
	done      chan struct{}
	closeOnce sync.Once

	draft       resumes.Document
	lastSaved   resumes.Document
	state       State
	saveErr     string
	lastSavedAt time.Time
	timer       *time.Timer
	saving      bool
	queued      bool
}

func newSession(id, userID string, doc resumes.Document, saver Saver, debounce time.Duration) *Session {
	s := &Session{
		ID:        id,
		UserID:    userID,
		saver:     saver,
		debounce:  debounce,
		cmds:      make(chan func()),
		done:      make(chan struct{}),
		draft:     doc.Clone(),
		lastSaved: doc.Clone(),
		state:     StateClean,
	}
	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.done:
			if s.timer != nil {
				s.timer.Stop()
			}
			return
		}
	}
}

// do runs fn on the event loop and waits for it to finish.
func (s *Session) do(fn func()) error {
	ack := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(ack) }:
	case <-s.done:
		return ErrSessionClosed
	}
	select {
	case <-ack:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// UpdateDocument replaces the draft with the submitted document. The
// submitted photo follows its variant semantics: absent keeps the draft's
// current photo. An invalid document is rejected and the draft is unchanged.
func (s *Session) UpdateDocument(doc resumes.Document) (Status, error) {
	var status Status
	var opErr error
	err := s.do(func() {
		doc.ID = s.draft.ID
		if doc.Photo.State == resumes.PhotoUnset {
			doc.Photo = s.draft.Photo
		}
		if err := resumes.ValidateDocument(doc); err != nil {
			opErr = err
			return
		}
		s.draft = doc.Clone()
		s.afterEdit()
		status = s.status()
	})
	if err != nil {
		return Status{}, err
	}
	return status, opErr
}

// SetPhoto attaches a new pending photo blob to the draft.
func (s *Session) SetPhoto(blob resumes.PhotoBlob) (Status, error) {
	var status Status
	var opErr error
	err := s.do(func() {
		next := s.draft.Clone()
		next.Photo = resumes.PendingPhoto(blob)
		if err := resumes.ValidateDocument(next); err != nil {
			opErr = err
			return
		}
		s.draft = next
		s.afterEdit()
		status = s.status()
	})
	if err != nil {
		return Status{}, err
	}
	return status, opErr
}

// ClearPhoto marks the draft's photo for deletion.
func (s *Session) ClearPhoto() (Status, error) {
	var status Status
	err := s.do(func() {
		s.draft.Photo = resumes.ClearedPhoto()
		s.afterEdit()
		status = s.status()
	})
	return status, err
}

// Reorder moves one entry inside a child collection.
func (s *Session) Reorder(section string, from, to int) (Status, error) {
	var status Status
	var opErr error
	err := s.do(func() {
		moved, err := resumes.MoveSection(s.draft, section, from, to)
		if err != nil {
			opErr = err
			return
		}
		s.draft = moved
		s.afterEdit()
		status = s.status()
	})
	if err != nil {
		return Status{}, err
	}
	return status, opErr
}

// Retry starts an immediate save after a failure, skipping the debounce.
func (s *Session) Retry() (Status, error) {
	var status Status
	err := s.do(func() {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.startSave()
		status = s.status()
	})
	return status, err
}

// Status reports the current save-cycle state.
func (s *Session) Status() (Status, error) {
	var status Status
	err := s.do(func() { status = s.status() })
	return status, err
}

// Document returns a copy of the current draft.
func (s *Session) Document() (resumes.Document, error) {
	var doc resumes.Document
	err := s.do(func() { doc = s.draft.Clone() })
	return doc, err
}

// afterEdit re-evaluates dirtiness after the draft changed. Reverting the
// draft back to the saved snapshot cancels the pending save.
func (s *Session) afterEdit() {
	if s.draft.Equal(s.lastSaved) {
		if !s.saving {
			s.state = StateClean
			s.saveErr = ""
		}
		if s.timer != nil {
			s.timer.Stop()
		}
		return
	}
	if !s.saving {
		s.state = StateDirty
		s.saveErr = ""
	}
	s.resetTimer()
}

func (s *Session) resetTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.post(s.startSave)
	})
}

// post schedules fn on the loop without waiting; dropped if closed.
func (s *Session) post(fn func()) {
	select {
	case s.cmds <- fn:
	case <-s.done:
	}
}

// startSave begins a persist for the current draft. Only one save runs at a
// time; a trigger during an in-flight save is coalesced into one follow-up.
func (s *Session) startSave() {
	if s.saving {
		s.queued = true
		return
	}
	if s.draft.Equal(s.lastSaved) {
		s.state = StateClean
		return
	}

	s.saving = true
	s.state = StateSaving

	snapshot := s.draft.Clone()
	payload := snapshot.Clone()
	// An unchanged photo is withheld from the payload so the blob is never
	// re-uploaded for text-only edits.
	if payload.Photo.Equal(s.lastSaved.Photo) {
		payload.Photo = resumes.Photo{}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		res, err := s.saver.Upsert(ctx, s.UserID, payload)
		s.post(func() { s.finishSave(snapshot, res, err) })
	}()
}

func (s *Session) finishSave(snapshot resumes.Document, res resumes.Resume, err error) {
	s.saving = false

	if err != nil {
		s.queued = false
		s.state = StateSaveFailed
		s.saveErr = err.Error()
		telemetry.Error("autosave failed", map[string]any{
			"session_id": s.ID,
			"resume_id":  snapshot.ID,
			"error":      err.Error(),
		})
		return
	}

	photoBefore := snapshot.Photo
	snapshot.ID = res.ID
	snapshot.Photo = resumes.StoredPhoto(res.PhotoURL)
	s.lastSaved = snapshot
	s.lastSavedAt = time.Now().UTC()
	s.saveErr = ""

	// First save of a new draft assigns the id; an uploaded photo collapses
	// to its stored URL unless the user already picked another one.
	if s.draft.ID == "" {
		s.draft.ID = res.ID
	}
	if s.draft.Photo.Equal(photoBefore) {
		s.draft.Photo = resumes.StoredPhoto(res.PhotoURL)
	}

	// A queued trigger means the debounce already elapsed mid-flight; save
	// now. Any other divergence is a fresh edit and gets a full window.
	if s.queued {
		s.queued = false
		s.startSave()
		return
	}
	if !s.draft.Equal(s.lastSaved) {
		s.state = StateDirty
		s.resetTimer()
		return
	}
	s.state = StateClean
}

func (s *Session) status() Status {
	st := Status{
		SessionID:      s.ID,
		ResumeID:       s.draft.ID,
		State:          s.state,
		UnsavedChanges: s.state != StateClean,
		Error:          s.saveErr,
	}
	if !s.lastSavedAt.IsZero() {
		t := s.lastSavedAt
		st.LastSavedAt = &t
	}
	return st
}
