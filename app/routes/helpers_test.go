package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"commentsapi/app/database"
	"commentsapi/app/middleware"

	"github.com/gorilla/mux"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("routes-test-secret")

func setupTestStore(t *testing.T) *database.Store {
	store, err := database.OpenBadger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })
	return store
}

func setupTestRouter(t *testing.T, store *database.Store, limiter *middleware.RateLimiter) (*mux.Router, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	router := SetupRoutes(store, Options{
		Secret:  testSecret,
		Limiter: limiter,
		Log:     logger,
	})
	return router, hook
}

func tokenFor(t *testing.T, userID string) string {
	token, err := middleware.IssueToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

// request sends method/path with body, authenticated with token when it is
// not empty.
func request(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
