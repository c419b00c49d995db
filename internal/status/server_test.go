package status

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	syncengine "github.com/PratikMahajan1993/worktracker/internal/sync"
)

func newTestServer(status *syncengine.Status) *Server {
	return New("127.0.0.1:0", status, log.New(io.Discard, "", 0))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&syncengine.Status{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status ok", body)
	}
}

func TestStatusEndpoint(t *testing.T) {
	status := &syncengine.Status{}
	srv := newTestServer(status)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap syncengine.StatusSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if snap.LastIncrementalSync != 0 || snap.PushFailures != 0 {
		t.Errorf("fresh status should be zeroed, got %+v", snap)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(&syncengine.Status{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
