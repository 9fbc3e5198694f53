package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *APIError
		kind     Kind
		httpCode int
	}{
		{"fields required", NewErrFieldsRequired(), KindValidation, http.StatusBadRequest},
		{"avatar required", NewErrAvatarRequired(), KindValidation, http.StatusBadRequest},
		{"user exists", NewErrUserExists(), KindConflict, http.StatusConflict},
		{"email taken", NewErrEmailTaken(), KindConflict, http.StatusConflict},
		{"user not found", NewErrUserNotFound(), KindNotFound, http.StatusNotFound},
		{"channel not found", NewErrChannelNotFound(), KindNotFound, http.StatusNotFound},
		{"invalid credentials", NewErrInvalidCredentials(), KindAuth, http.StatusUnauthorized},
		{"invalid old password", NewErrInvalidOldPassword(), KindAuth, http.StatusBadRequest},
		{"invalid refresh", NewErrInvalidRefreshToken(cause), KindAuth, http.StatusUnauthorized},
		{"unauthorized", NewErrUnauthorized(cause), KindUnauthorized, http.StatusUnauthorized},
		{"upload", NewErrUpload(cause), KindUpload, http.StatusBadRequest},
		{"config", NewErrConfig(cause), KindConfig, http.StatusInternalServerError},
		{"internal", NewErrInternalServerError(cause), KindInternal, http.StatusInternalServerError},
		{"too many requests", NewErrTooManyRequests(), KindValidation, http.StatusTooManyRequests},
		{"payload too large", NewErrPayloadTooLarge(), KindValidation, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.httpCode, tt.err.HTTPCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAPIError_UnwrapAndAs(t *testing.T) {
	cause := errors.New("bucket unreachable")
	wrapped := fmt.Errorf("register: %w", NewErrUpload(cause))

	apiErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindUpload, apiErr.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsKind(wrapped, KindUpload))
	assert.False(t, IsKind(wrapped, KindAuth))

	_, ok = As(cause)
	assert.False(t, ok)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "user does not exist", NewErrUserNotFound().Error())
	assert.Equal(t, "internal server error: boom", NewErrInternalServerError(errors.New("boom")).Error())
}
