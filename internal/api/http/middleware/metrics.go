package middleware

import (
	"net/http"
	"time"

	"github.com/dtroode/vidtube-server/internal/model"
)

// NewMetrics records request count and latency per chi route pattern.
func NewMetrics(recorder model.MetricsRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			recorder.RecordHTTPRequest(r.Method, routePattern(r), rec.statusCode, time.Since(start))
		})
	}
}
