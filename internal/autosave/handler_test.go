package autosave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/bootstrap"
	"smartcv-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:             "0",
		CORSAllowOrigin:  []string{"http://localhost:3000"},
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		Env:              "dev",
		AutosaveDebounce: 10 * time.Millisecond,
		MaxPhotoBytes:    4 << 20,
	}
	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func request(t *testing.T, app *bootstrap.App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "editor-user")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

type sessionStatus struct {
	SessionID      string `json:"sessionId"`
	ResumeID       string `json:"resumeId"`
	State          string `json:"state"`
	UnsavedChanges bool   `json:"unsavedChanges"`
	Error          string `json:"error"`
}

func openSession(t *testing.T, app *bootstrap.App) string {
	t.Helper()
	resp := request(t, app, http.MethodPost, "/api/v1/editor/sessions", map[string]any{})
	if resp.Code != http.StatusCreated {
		t.Fatalf("open status = %d, body %s", resp.Code, resp.Body.String())
	}
	var opened struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if opened.SessionID == "" {
		t.Fatal("missing session id")
	}
	return opened.SessionID
}

func waitForStatus(t *testing.T, app *bootstrap.App, sid, want string) sessionStatus {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var status sessionStatus
	for time.Now().Before(deadline) {
		resp := request(t, app, http.MethodGet, "/api/v1/editor/sessions/"+sid+"/status", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("status endpoint = %d", resp.Code)
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if status.State == want {
			return status
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state = %q, want %q", status.State, want)
	return sessionStatus{}
}

func TestEditorSessionAutosaveFlow(t *testing.T) {
	app := newTestApp(t)
	sid := openSession(t, app)

	resp := request(t, app, http.MethodPut, "/api/v1/editor/sessions/"+sid+"/document", map[string]any{
		"title":     "Draft resume",
		"firstName": "Ada",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", resp.Code, resp.Body.String())
	}
	var st sessionStatus
	if err := json.Unmarshal(resp.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.State != "dirty" || !st.UnsavedChanges {
		t.Fatalf("status after edit = %+v, want dirty", st)
	}

	saved := waitForStatus(t, app, sid, "clean")
	if saved.ResumeID == "" {
		t.Fatal("expected canonical resume id after autosave")
	}

	// The autosaved resume is visible through the CRUD surface.
	resp = request(t, app, http.MethodGet, "/api/v1/resumes/"+saved.ResumeID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get saved resume = %d", resp.Code)
	}
	var res struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode resume: %v", err)
	}
	if res.Title != "Draft resume" {
		t.Fatalf("Title = %q", res.Title)
	}
}

func TestEditorSessionValidationRejected(t *testing.T) {
	app := newTestApp(t)
	sid := openSession(t, app)

	resp := request(t, app, http.MethodPut, "/api/v1/editor/sessions/"+sid+"/document", map[string]any{
		"projects": []map[string]any{{"startDate": "soon"}},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}

	// The rejected edit left the session clean.
	st := waitForStatus(t, app, sid, "clean")
	if st.UnsavedChanges {
		t.Fatalf("status = %+v, want no unsaved changes", st)
	}
}

func TestEditorSessionReorder(t *testing.T) {
	app := newTestApp(t)
	sid := openSession(t, app)

	resp := request(t, app, http.MethodPut, "/api/v1/editor/sessions/"+sid+"/document", map[string]any{
		"skills": []map[string]any{
			{"category": "Languages"},
			{"category": "Tools"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update status = %d", resp.Code)
	}
	waitForStatus(t, app, sid, "clean")

	resp = request(t, app, http.MethodPatch, "/api/v1/editor/sessions/"+sid+"/reorder", map[string]any{
		"section": "skills",
		"from":    1,
		"to":      0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("reorder status = %d, body %s", resp.Code, resp.Body.String())
	}
	var reordered struct {
		Document struct {
			Skills []struct {
				Category string `json:"category"`
			} `json:"skills"`
		} `json:"document"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &reordered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(reordered.Document.Skills) != 2 || reordered.Document.Skills[0].Category != "Tools" {
		t.Fatalf("skills = %+v, want Tools first", reordered.Document.Skills)
	}

	if resp := request(t, app, http.MethodPatch, "/api/v1/editor/sessions/"+sid+"/reorder", map[string]any{
		"section": "skills",
		"from":    5,
		"to":      0,
	}); resp.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range reorder status = %d, want 400", resp.Code)
	}
}

func TestEditorSessionPhotoUploadAndClear(t *testing.T) {
	app := newTestApp(t)
	sid := openSession(t, app)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="photo"; filename="me.png"`},
		"Content-Type":        {"image/png"},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte{0x89, 0x50, 0x4e, 0x47}); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/editor/sessions/"+sid+"/photo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "editor-user")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("photo upload status = %d, body %s", resp.Code, resp.Body.String())
	}

	status := waitForStatus(t, app, sid, "clean")

	// The saved resume carries a stored photo URL.
	getResp := request(t, app, http.MethodGet, "/api/v1/resumes/"+status.ResumeID, nil)
	if getResp.Code != http.StatusOK {
		t.Fatalf("get status = %d", getResp.Code)
	}
	var saved struct {
		PhotoURL string `json:"photoUrl"`
	}
	if err := json.Unmarshal(getResp.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.PhotoURL == "" {
		t.Fatal("expected stored photo url")
	}

	// Clearing deletes the blob reference on the next save.
	if resp := request(t, app, http.MethodDelete, "/api/v1/editor/sessions/"+sid+"/photo", nil); resp.Code != http.StatusOK {
		t.Fatalf("clear status = %d", resp.Code)
	}
	waitForStatus(t, app, sid, "clean")

	getResp = request(t, app, http.MethodGet, "/api/v1/resumes/"+status.ResumeID, nil)
	// photoUrl is omitempty on the wire; reset the field so an absent key is
	// not masked by the value left over from the previous decode.
	saved.PhotoURL = ""
	if err := json.Unmarshal(getResp.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.PhotoURL != "" {
		t.Fatalf("photoUrl = %q, want cleared", saved.PhotoURL)
	}
}

func TestEditorSessionRejectsNonImagePhoto(t *testing.T) {
	app := newTestApp(t)
	sid := openSession(t, app)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="photo"; filename="cv.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/editor/sessions/"+sid+"/photo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "editor-user")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestEditorSessionUnknownID(t *testing.T) {
	app := newTestApp(t)

	resp := request(t, app, http.MethodGet, "/api/v1/editor/sessions/nope/status", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}
