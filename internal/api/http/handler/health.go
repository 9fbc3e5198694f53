package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/vidtube-server/internal/api/http/response"
	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

const healthTimeout = 2 * time.Second

// Health reports whether the backing store answers.
type Health struct {
	pinger model.Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

// Check pings the store.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		response.Error(w, r, h.logger, &apierrors.APIError{
			Kind:     apierrors.KindInternal,
			HTTPCode: http.StatusServiceUnavailable,
			Message:  "store unavailable",
			Err:      err,
		})
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
}
