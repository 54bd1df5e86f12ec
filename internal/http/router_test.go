package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/domain/user"
	httpx "github.com/geocoder89/userhub/internal/http"
	"github.com/geocoder89/userhub/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		Port:           0,
		AllowedOrigins: []string{"http://localhost:8084"},
		RateLimit:      1000,
		RateWindow:     time.Minute,
	}
}

func newTestRouter() *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return httpx.NewRouter(logger, testConfig(), memory.NewUsersRepo())
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request

	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestUserLifecycleThroughRouter(t *testing.T) {
	r := newTestRouter()

	// create
	w := doJSON(r, http.MethodPost, "/api/users", `{"name":"Test User","email":"test@example.com","role":"user"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("create got %d body=%s", w.Code, w.Body.String())
	}

	var created user.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal created user: %v", err)
	}

	if created.ID <= 0 || created.Role != "user" {
		t.Fatalf("unexpected created record: %+v", created)
	}

	// get returns the identical object
	w = doJSON(r, http.MethodGet, "/api/users/1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("get got %d body=%s", w.Code, w.Body.String())
	}

	var fetched user.User
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to unmarshal fetched user: %v", err)
	}

	if fetched != created {
		t.Fatalf("get returned a different record:\n got %+v\nwant %+v", fetched, created)
	}

	// update a single field
	w = doJSON(r, http.MethodPut, "/api/users/1", `{"name":"Renamed"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("update got %d body=%s", w.Code, w.Body.String())
	}

	var updated user.User
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to unmarshal updated user: %v", err)
	}

	if updated.Name != "Renamed" || updated.Email != created.Email || updated.Role != created.Role {
		t.Fatalf("partial update touched the wrong fields: %+v", updated)
	}

	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("immutable fields changed on update: %+v", updated)
	}

	// delete, then the id is gone
	w = doJSON(r, http.MethodDelete, "/api/users/1", "")

	if w.Code != http.StatusNoContent {
		t.Fatalf("delete got %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodDelete, "/api/users/1", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete got %d, want 404", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/users/1", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete got %d, want 404", w.Code)
	}
}

func TestListCountMatchesStats(t *testing.T) {
	r := newTestRouter()

	for _, body := range []string{
		`{"name":"A","email":"a@example.com"}`,
		`{"name":"B","email":"b@example.com"}`,
		`{"name":"C","email":"c@example.com"}`,
	} {
		if w := doJSON(r, http.MethodPost, "/api/users", body); w.Code != http.StatusCreated {
			t.Fatalf("create got %d body=%s", w.Code, w.Body.String())
		}
	}

	w := doJSON(r, http.MethodGet, "/api/users", "")

	var list struct {
		Users []user.User `json:"users"`
		Count int         `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to unmarshal list: %v", err)
	}

	w = doJSON(r, http.MethodGet, "/api/stats", "")

	var stats struct {
		TotalUsers int `json:"total_users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to unmarshal stats: %v", err)
	}

	if len(list.Users) != list.Count || list.Count != stats.TotalUsers {
		t.Fatalf("list length %d, count %d, stats.total_users %d should all match",
			len(list.Users), list.Count, stats.TotalUsers)
	}
}

func TestValidationErrorDoesNotMutateStore(t *testing.T) {
	r := newTestRouter()

	if w := doJSON(r, http.MethodPost, "/api/users", `{"name":"Only Name"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid create got %d, want 400", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/stats", "")

	var stats struct {
		TotalUsers int `json:"total_users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to unmarshal stats: %v", err)
	}

	if stats.TotalUsers != 0 {
		t.Fatalf("store mutated by invalid create: total_users=%d", stats.TotalUsers)
	}
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/nope", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("404 body is not JSON: %s", w.Body.String())
	}

	if resp.Error.Code != "not_found" {
		t.Fatalf("unexpected error code: %q", resp.Error.Code)
	}
}

func TestGetNeverIssuedIDReturns404(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/users/99999", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404, body=%s", w.Code, w.Body.String())
	}

	if !bytes.Contains(w.Body.Bytes(), []byte("error")) {
		t.Fatalf("expected an error body, got %s", w.Body.String())
	}
}

func TestWriteWithoutJSONContentTypeIsRejected(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString("name=A&email=a@example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got %d, want 415, body=%s", w.Code, w.Body.String())
	}
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("metrics got %d", w.Code)
	}

	if !bytes.Contains(w.Body.Bytes(), []byte("userhub_http_requests_total")) &&
		!bytes.Contains(w.Body.Bytes(), []byte("userhub_store_users")) {
		t.Fatalf("expected userhub metrics in scrape output")
	}
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
}
