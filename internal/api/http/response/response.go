// Package response writes the JSON envelopes returned by every endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
)

type success struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type failure struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// JSON writes a success envelope. A nil data is sent as an empty object.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	if data == nil {
		data = struct{}{}
	}
	write(w, status, success{StatusCode: status, Data: data, Message: message, Success: true})
}

// Error renders err as a failure envelope. Only *apierrors.APIError messages reach
// the client; the cause is logged.
func Error(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	apiErr, ok := apierrors.As(err)
	if !ok {
		apiErr = apierrors.NewErrInternalServerError(err)
	}

	if apiErr.HTTPCode >= http.StatusInternalServerError {
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", apiErr.HTTPCode,
			"error", err.Error())
	} else {
		log.Debug("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"status", apiErr.HTTPCode,
			"error", err.Error())
	}

	write(w, apiErr.HTTPCode, failure{StatusCode: apiErr.HTTPCode, Message: apiErr.Message})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
