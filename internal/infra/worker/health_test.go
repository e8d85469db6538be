package worker

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestHealthServer() *HealthServer {
	return NewHealthServer(":0", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) healthResponse {
	t.Helper()
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	return resp
}

func TestHealthServer_Liveness(t *testing.T) {
	h := newTestHealthServer()
	rec := httptest.NewRecorder()

	h.handleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("liveness status = %d, want 200", rec.Code)
	}
	if resp := decodeHealth(t, rec); resp.Status != "ok" {
		t.Errorf("liveness body = %+v", resp)
	}
}

func TestHealthServer_Readiness(t *testing.T) {
	t.Run("not ready before initialization", func(t *testing.T) {
		h := newTestHealthServer()
		rec := httptest.NewRecorder()

		h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("readiness status = %d, want 503", rec.Code)
		}
	})

	t.Run("ready after SetReady", func(t *testing.T) {
		h := newTestHealthServer()
		h.SetReady(true)
		rec := httptest.NewRecorder()

		h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("readiness status = %d, want 200", rec.Code)
		}
		if resp := decodeHealth(t, rec); resp.Status != "ready" {
			t.Errorf("readiness body = %+v", resp)
		}
	})

	t.Run("not ready again after SetReady(false)", func(t *testing.T) {
		h := newTestHealthServer()
		h.SetReady(true)
		h.SetReady(false)
		rec := httptest.NewRecorder()

		h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("readiness status = %d, want 503", rec.Code)
		}
	})
}
