package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"smartcv-backend/internal/resumes"
)

const testDebounce = 20 * time.Millisecond

type fakeSaver struct {
	mu    sync.Mutex
	calls []resumes.Document
	fail  bool
}

func (f *fakeSaver) Upsert(_ context.Context, userID string, doc resumes.Document) (resumes.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return resumes.Resume{}, errors.New("database down")
	}
	f.calls = append(f.calls, doc)
	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}
	return resumes.Resume{ID: id, UserID: userID, Title: doc.Title, FirstName: doc.FirstName}, nil
}

func (f *fakeSaver) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeSaver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSaver) lastCall() resumes.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func waitForState(t *testing.T, s *Session, want State) Status {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status, err := s.Status()
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if status.State == want {
			return status
		}
		time.Sleep(5 * time.Millisecond)
	}
	status, _ := s.Status()
	t.Fatalf("state = %q, want %q", status.State, want)
	return Status{}
}

func TestSessionStartsClean(t *testing.T) {
	engine := NewEngine(&fakeSaver{}, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{ID: "r1", Title: "stored"})
	status, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.State != StateClean || status.UnsavedChanges {
		t.Fatalf("status = %+v, want clean", status)
	}
}

func TestDebounceCoalescesEdits(t *testing.T) {
	saver := &fakeSaver{}
	engine := NewEngine(saver, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{})

	if _, err := s.UpdateDocument(resumes.Document{Title: "first"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := s.UpdateDocument(resumes.Document{Title: "second"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	waitForState(t, s, StateClean)

	if saver.callCount() != 1 {
		t.Fatalf("saves = %d, want 1 coalesced write", saver.callCount())
	}
	if saver.lastCall().Title != "second" {
		t.Fatalf("persisted Title = %q, want final state", saver.lastCall().Title)
	}
}

// blockingSaver signals when an upsert enters and holds it until released,
// so tests can overlap edits with an in-flight save.
type blockingSaver struct {
	fakeSaver
	started chan struct{}
	release chan struct{}
}

func (b *blockingSaver) Upsert(ctx context.Context, userID string, doc resumes.Document) (resumes.Resume, error) {
	b.started <- struct{}{}
	<-b.release
	return b.fakeSaver.Upsert(ctx, userID, doc)
}

func TestEditDuringSaveRestartsDebounce(t *testing.T) {
	const debounce = 150 * time.Millisecond
	saver := &blockingSaver{started: make(chan struct{}), release: make(chan struct{})}
	engine := NewEngine(saver, debounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{})
	if _, err := s.UpdateDocument(resumes.Document{Title: "first"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	<-saver.started
	if _, err := s.UpdateDocument(resumes.Document{Title: "second"}); err != nil {
		t.Fatalf("update during save: %v", err)
	}
	saver.release <- struct{}{}
	firstDone := time.Now()

	// The mid-flight edit re-enters dirty with a fresh window; the follow-up
	// write must not fire the instant the first one resolves.
	select {
	case <-saver.started:
		t.Fatalf("second save issued %s after the first completed, before the debounce elapsed", time.Since(firstDone))
	case <-time.After(debounce / 2):
	}

	status, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.State != StateDirty {
		t.Fatalf("state = %q, want dirty while the follow-up window is open", status.State)
	}

	<-saver.started
	saver.release <- struct{}{}
	waitForState(t, s, StateClean)

	if saver.callCount() != 2 {
		t.Fatalf("saves = %d, want 2", saver.callCount())
	}
	if saver.lastCall().Title != "second" {
		t.Fatalf("persisted Title = %q, want final state", saver.lastCall().Title)
	}
}

func TestFirstSaveAssignsResumeID(t *testing.T) {
	saver := &fakeSaver{}
	engine := NewEngine(saver, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{})
	if _, err := s.UpdateDocument(resumes.Document{Title: "draft"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	status := waitForState(t, s, StateClean)
	if status.ResumeID == "" {
		t.Fatal("expected canonical resume id after first save")
	}

	// The next save carries the assigned id so no duplicate row is created.
	if _, err := s.UpdateDocument(resumes.Document{Title: "draft 2"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	waitForState(t, s, StateClean)
	if got := saver.lastCall().ID; got != status.ResumeID {
		t.Fatalf("second save id = %q, want %q", got, status.ResumeID)
	}
}

func TestRevertingEditCancelsSave(t *testing.T) {
	saver := &fakeSaver{}
	engine := NewEngine(saver, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{ID: "r1", Title: "stored"})
	if _, err := s.UpdateDocument(resumes.Document{Title: "edited"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	status, err := s.UpdateDocument(resumes.Document{Title: "stored"})
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if status.State != StateClean {
		t.Fatalf("state = %q, want clean after revert", status.State)
	}

	time.Sleep(4 * testDebounce)
	if saver.callCount() != 0 {
		t.Fatalf("saves = %d, want 0 after revert", saver.callCount())
	}
}

func TestSaveFailureAndRetry(t *testing.T) {
	saver := &fakeSaver{}
	saver.setFail(true)
	engine := NewEngine(saver, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{})
	if _, err := s.UpdateDocument(resumes.Document{Title: "draft"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	status := waitForState(t, s, StateSaveFailed)
	if status.Error == "" || !status.UnsavedChanges {
		t.Fatalf("status = %+v, want error and unsaved changes", status)
	}

	// Draft is retained; an explicit retry saves it once the backend is up.
	saver.setFail(false)
	if _, err := s.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	waitForState(t, s, StateClean)
	if saver.lastCall().Title != "draft" {
		t.Fatalf("persisted Title = %q, want retained draft", saver.lastCall().Title)
	}
}

func TestUnchangedPhotoOmittedFromPayload(t *testing.T) {
	saver := &fakeSaver{}
	engine := NewEngine(saver, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{})
	blob := resumes.PhotoBlob{Name: "me.png", Size: 2, MimeType: "image/png", LastModified: 1, Data: []byte{1, 2}}
	if _, err := s.SetPhoto(blob); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	waitForState(t, s, StateClean)
	if got := saver.lastCall().Photo.State; got != resumes.PhotoPending {
		t.Fatalf("first save photo state = %v, want pending", got)
	}

	// A text-only edit must not re-send the blob.
	if _, err := s.UpdateDocument(resumes.Document{Title: "text edit"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	waitForState(t, s, StateClean)
	if got := saver.lastCall().Photo.State; got != resumes.PhotoUnset {
		t.Fatalf("second save photo state = %v, want unset", got)
	}
}

func TestReorderArmsDebounce(t *testing.T) {
	saver := &fakeSaver{}
	engine := NewEngine(saver, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{
		ID: "r1",
		Skills: []resumes.SkillGroup{
			{Category: "Languages"},
			{Category: "Tools"},
		},
	})
	status, err := s.Reorder(resumes.SectionSkills, 1, 0)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if status.State != StateDirty {
		t.Fatalf("state = %q, want dirty after reorder", status.State)
	}

	waitForState(t, s, StateClean)
	if got := saver.lastCall().Skills[0].Category; got != "Tools" {
		t.Fatalf("persisted order starts with %q, want Tools", got)
	}
}

func TestSessionOwnership(t *testing.T) {
	engine := NewEngine(&fakeSaver{}, testDebounce)
	defer engine.Shutdown()

	s := engine.Open("guest:u1", resumes.Document{})
	if _, err := engine.Get("guest:u2", s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get err = %v, want ErrSessionNotFound", err)
	}
	if err := engine.Close("guest:u2", s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Close err = %v, want ErrSessionNotFound", err)
	}
	if err := engine.Close("guest:u1", s.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.Status(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Status after close err = %v, want ErrSessionClosed", err)
	}
}
