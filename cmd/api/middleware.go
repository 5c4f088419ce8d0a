// cmd/api/middleware.go
// This file contains HTTP middleware used to wrap the router.
// Middleware functions intercept every request before it reaches a handler.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type contextKey string

const requestIDKey contextKey = "request_id"

const requestIDHeader = "X-Request-Id"

// recoverPanic catches any runtime panic that occurs in a downstream handler
// and answers with a 500 Internal Server Error instead of dropping the
// connection.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Tell the HTTP server to close the connection after this response.
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with an id, reusing a well-formed incoming
// X-Request-Id header, and echoes it on the response.
func (app *applicationDependencies) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFromContext returns the id set by requestID, or "".
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// logRequest logs one line per request once the handler has finished.
func (app *applicationDependencies) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		app.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
			"request_id", requestIDFromContext(r.Context()),
		)
	})
}

// enableCORS allows cross-origin requests from the configured trusted
// origins. With no trusted origins it is a pass-through.
func (app *applicationDependencies) enableCORS(next http.Handler) http.Handler {
	if len(app.config.cors.trustedOrigins) == 0 {
		return next
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: app.config.cors.trustedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{"Location", "X-Total-Count", requestIDHeader},
		MaxAge:         300,
	})(next)
}

// client holds a per-IP rate limiter and the time it was last seen.
// lastSeen lets us evict old entries so the map does not grow forever.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// allow consumes one token from ip's bucket and reports whether one was
// available.
func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// sweep forgets clients not seen for longer than maxAge.
func (l *ipLimiter) sweep(maxAge time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, c := range l.clients {
		if time.Since(c.lastSeen) > maxAge {
			delete(l.clients, ip)
		}
	}
}

// run sweeps every interval until ctx is done.
func (l *ipLimiter) run(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(maxAge)
		}
	}
}

// rateLimit implements per-IP token-bucket rate limiting using the
// golang.org/x/time/rate package. Each unique IP gets its own limiter
// with the configured rate and burst. Entries idle for 3 minutes are
// swept once a minute until ctx is done.
func (app *applicationDependencies) rateLimit(ctx context.Context, next http.Handler) http.Handler {
	if !app.config.limiter.enabled {
		return next
	}

	limiter := newIPLimiter(app.config.limiter.rps, app.config.limiter.burst)
	go limiter.run(ctx, time.Minute, 3*time.Minute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RealIP may already have replaced RemoteAddr with a bare IP.
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.allow(ip) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
