package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

func TestStatusRecorder(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		rec := newStatusRecorder(httptest.NewRecorder())
		_, _ = rec.Write([]byte("ok"))
		assert.Equal(t, http.StatusOK, rec.statusCode)
	})

	t.Run("first status wins", func(t *testing.T) {
		rec := newStatusRecorder(httptest.NewRecorder())
		rec.WriteHeader(http.StatusTeapot)
		rec.WriteHeader(http.StatusInternalServerError)
		assert.Equal(t, http.StatusTeapot, rec.statusCode)
	})

	t.Run("reused when nested", func(t *testing.T) {
		outer := newStatusRecorder(httptest.NewRecorder())
		assert.Same(t, outer, newStatusRecorder(outer))
	})
}

func TestLogging_Handle(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"success", http.StatusOK, "level=INFO"},
		{"client error", http.StatusNotFound, "level=WARN"},
		{"server error", http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lg := logger.NewWithWriter(&buf, -4, "text")

			r := chi.NewRouter()
			r.Use(chimw.RequestID)
			r.Use(NewLogging(lg).Handle)
			r.Get("/c/{username}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/c/alice", nil))

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, "route=/c/{username}")
			assert.Contains(t, out, "path=/c/alice")
			assert.Contains(t, out, "request_id=")
		})
	}
}

func TestNewMetrics(t *testing.T) {
	recorder := &fakeRecorder{}

	r := chi.NewRouter()
	r.Use(NewMetrics(recorder))
	r.Post("/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, []recordedRequest{
		{method: http.MethodPost, route: "/login", status: http.StatusUnauthorized},
		{method: http.MethodGet, route: "unmatched", status: http.StatusNotFound},
	}, recorder.requests)
}

type recordedRequest struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, route: route, status: status})
}

var _ model.MetricsRecorder = (*fakeRecorder)(nil)

func (f *fakeRecorder) RecordAuthEvent(string)                    {}
func (f *fakeRecorder) RecordMediaUpload(model.MediaKind, string) {}
