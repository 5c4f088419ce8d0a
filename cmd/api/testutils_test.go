package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/people-books-api/internal/data"
)

const testBaseURL = "http://localhost:8080"

// newTestApplication returns an application backed by a fresh SQLite file.
// opts may adjust the configuration before the services are built.
func newTestApplication(t *testing.T, opts ...func(*serverConfig)) *applicationDependencies {
	t.Helper()

	cfg := serverConfig{environment: "testing", baseURL: testBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := data.Open(data.SQLite, data.DBConfig{DSN: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, data.Migrate(context.Background(), db, data.SQLite))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newApplication(cfg, log, data.NewModels(db, data.SQLite))
}

// do sends one request through the full middleware chain.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
