package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ajeebtech/playerlens/internal/db"
	"github.com/ajeebtech/playerlens/internal/handlers"
	"github.com/ajeebtech/playerlens/internal/logging"
	"github.com/ajeebtech/playerlens/internal/ratelimit"
	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRouter(t *testing.T, limit int) http.Handler {
	t.Helper()

	logger := logging.Discard()
	handler := handlers.NewHandler(db.NewSynthetic(), nil, logger)
	cfg := routerConfig{
		CORSOrigins:    []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
		Logger:         logger,
	}

	if limit > 0 {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		cfg.Limiter = ratelimit.NewWindowLimiter(client, limit, time.Minute)
	}

	return newRouter(handler, cfg)
}

func TestRouter_MountsBothPrefixes(t *testing.T) {
	router := newTestRouter(t, 0)

	for _, path := range []string{
		"/health",
		"/api/search?term=Bumrah",
		"/api/v1/search?q=Bumrah",
		"/api/stats?name=Bumrah",
		"/api/v1/stats?id=42",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: expected JSON content type, got %q", path, ct)
		}
	}
}

func TestRouter_SearchRequiresTerm(t *testing.T) {
	router := newTestRouter(t, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/search", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if errResp.Code != http.StatusBadRequest {
		t.Errorf("expected code 400, got %d", errResp.Code)
	}
}

func TestRouter_RateLimitsAPI(t *testing.T) {
	router := newTestRouter(t, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/search?term=Pant", nil)
		req.RemoteAddr = "198.51.100.4:40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected [200 200 429], got %v", codes)
	}

	// Health is outside the limited group
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "198.51.100.4:40000"
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", w.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest("OPTIONS", "/api/search?term=ab", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin, got %q", got)
	}
}
