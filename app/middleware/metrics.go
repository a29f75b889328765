package middleware

import (
	"net/http"
	"time"

	"commentsapi/app/metrics"

	"github.com/gorilla/mux"
)

// Metrics records request counts and latency per route template.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.HTTPInFlight.Inc()
		defer metrics.HTTPInFlight.Dec()

		rw := wrap(w)
		defer func() {
			// A panic is answered with 500 further out, by Recoverer.
			p := recover()
			status := rw.statusCode
			if p != nil {
				status = http.StatusInternalServerError
			}
			metrics.RecordHTTPRequest(r.Method, routePath(r), status, time.Since(start))
			if p != nil {
				panic(p)
			}
		}()
		next.ServeHTTP(rw, r)
	})
}

func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}
