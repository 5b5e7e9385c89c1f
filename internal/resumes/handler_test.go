package resumes_test

import (
	"bytes"
	"context"
	"encoding/json"
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

func doJSON(t *testing.T, app *bootstrap.App, method, path, guestID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if guestID != "" {
		req.Header.Set("X-Guest-Id", guestID)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestResumeUpsertAndFetch(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/resumes", "u1", map[string]any{
		"title":     "Backend role",
		"firstName": "Ada",
		"skills":    []map[string]any{{"category": "Languages", "values": []string{"Go"}}},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		CreatedAt time.Time `json:"createdAt"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Title != "Backend role" {
		t.Fatalf("created = %+v", created)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+created.ID, "u1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d", resp.Code)
	}

	// Another identity must see a 404, not a 403.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+created.ID, "u2", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("cross-user get status = %d, want 404", resp.Code)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/resumes", "u1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d", resp.Code)
	}
	var list struct {
		Resumes []json.RawMessage `json:"resumes"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Resumes) != 1 {
		t.Fatalf("list length = %d, want 1", len(list.Resumes))
	}
}

func TestResumeUpsertValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/resumes", "u1", map[string]any{
		"educations": []map[string]any{{"startDate": "last spring"}},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation_failed" {
		t.Fatalf("code = %q", body.Error.Code)
	}
	if body.Error.Details.Field != "educations.0.startDate" {
		t.Fatalf("field = %q", body.Error.Details.Field)
	}
}

func TestResumeRequiresIdentity(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/resumes", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestResumeDelete(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/resumes", "u1", map[string]any{"title": "gone soon"})
	if resp.Code != http.StatusOK {
		t.Fatalf("upsert status = %d", resp.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp := doJSON(t, app, http.MethodDelete, "/api/v1/resumes/"+created.ID, "u2", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("cross-user delete status = %d, want 404", resp.Code)
	}
	if resp := doJSON(t, app, http.MethodDelete, "/api/v1/resumes/"+created.ID, "u1", nil); resp.Code != http.StatusOK {
		t.Fatalf("delete status = %d", resp.Code)
	}
	if resp := doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+created.ID, "u1", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", resp.Code)
	}
}
