package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/comments/{id}", "200"))

	RecordHTTPRequest("GET", "/api/comments/{id}", http.StatusOK, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/comments/{id}", "200"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesRegistry(t *testing.T) {
	CommentWrites.WithLabelValues("create").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "commentsapi_comments_writes_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
