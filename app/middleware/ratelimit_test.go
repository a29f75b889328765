package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commentsapi/app/models"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Now()
	rl.now = func() time.Time { return now }

	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(user string) int {
		req := httptest.NewRequest("GET", "/api/comments/x", nil)
		req = req.WithContext(WithUser(req.Context(), models.User{ID: user}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve("alice"))
	assert.Equal(t, http.StatusOK, serve("alice"))
	assert.Equal(t, http.StatusTooManyRequests, serve("alice"))
	assert.Equal(t, http.StatusOK, serve("bob"), "limits are per user")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve("alice"))
}

func TestRateLimiterFallsBackToIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req.RemoteAddr = "10.0.0.1:5678"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.allow("user:alice")
	now = now.Add(time.Minute)
	rl.allow("user:bob")

	now = now.Add(rl.idleTTL - 30*time.Second)
	rl.Cleanup()

	assert.NotContains(t, rl.limiters, "user:alice")
	assert.Contains(t, rl.limiters, "user:bob")
}
