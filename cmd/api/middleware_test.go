package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(t)

	h := app.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
	assert.Contains(t, rr.Body.String(), "the server encountered a problem")
}

func TestMiddleware_PanicLoggedWithRequestID(t *testing.T) {
	app := newTestApplication(t)
	var buf bytes.Buffer
	app.logger = slog.New(slog.NewJSONHandler(&buf, nil))

	h := app.middleware(t.Context(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/book/v1", nil)
	req.Header.Set(requestIDHeader, id)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, id, rr.Header().Get(requestIDHeader))

	var logged map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		if line["msg"] == "boom" {
			logged = line
		}
	}
	require.NotNil(t, logged, "panic was not logged")
	assert.Equal(t, "ERROR", logged["level"])
	assert.Equal(t, id, logged["request_id"])
}

func TestRequestID(t *testing.T) {
	app := newTestApplication(t)

	var seen string
	h := app.requestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	rr := do(t, h, http.MethodGet, "/", "")
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(requestIDHeader))

	// A well-formed incoming id is reused, anything else is replaced.
	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, incoming)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, incoming, rr.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.NotEqual(t, "not-a-uuid", rr.Header().Get(requestIDHeader))
}

func TestRateLimit(t *testing.T) {
	app := newTestApplication(t, func(cfg *serverConfig) {
		cfg.limiter.enabled = true
		cfg.limiter.rps = 0.001
		cfg.limiter.burst = 2
	})
	routes := app.routes(t.Context())

	assert.Equal(t, http.StatusOK, do(t, routes, http.MethodGet, "/v1/healthcheck", "").Code)
	assert.Equal(t, http.StatusOK, do(t, routes, http.MethodGet, "/v1/healthcheck", "").Code)

	rr := do(t, routes, http.MethodGet, "/v1/healthcheck", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.Header.Set("X-Real-IP", "198.51.100.7")
	rr = httptest.NewRecorder()
	routes.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	app := newTestApplication(t)
	routes := app.routes(t.Context())

	for range 10 {
		require.Equal(t, http.StatusOK, do(t, routes, http.MethodGet, "/v1/healthcheck", "").Code)
	}
}

func TestIPLimiter_Sweep(t *testing.T) {
	l := newIPLimiter(1, 1)

	assert.True(t, l.allow("192.0.2.1"))
	assert.False(t, l.allow("192.0.2.1"))
	assert.True(t, l.allow("192.0.2.2"))

	l.clients["192.0.2.1"].lastSeen = time.Now().Add(-time.Hour)
	l.sweep(3 * time.Minute)

	assert.NotContains(t, l.clients, "192.0.2.1")
	assert.Contains(t, l.clients, "192.0.2.2")

	// A forgotten client starts again with a full bucket.
	assert.True(t, l.allow("192.0.2.1"))
}

func TestIPLimiter_RunStopsWhenContextDone(t *testing.T) {
	l := newIPLimiter(1, 1)
	l.allow("192.0.2.1")
	l.clients["192.0.2.1"].lastSeen = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.run(ctx, time.Millisecond, time.Minute)
		close(done)
	}()

	require.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.clients) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestEnableCORS(t *testing.T) {
	app := newTestApplication(t, func(cfg *serverConfig) {
		cfg.cors.trustedOrigins = []string{"https://app.example.com"}
	})
	routes := app.routes(t.Context())

	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	routes.ServeHTTP(rr, req)
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	routes.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnableCORS_NoOrigins(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	app.routes(t.Context()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
