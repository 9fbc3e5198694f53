// Package apierrors defines client-visible errors and their HTTP mapping.
package apierrors

import (
	"errors"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindAuth         Kind = "auth"
	KindUnauthorized Kind = "unauthorized"
	KindUpload       Kind = "upload"
	KindConfig       Kind = "config"
	KindInternal     Kind = "internal"
)

// APIError is an error that carries the HTTP status and the message shown to the client.
// Err holds the underlying cause, which is logged but never sent.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As returns the APIError in err's chain, if any.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

func NewErrValidation(message string) *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusBadRequest, Message: message}
}

func NewErrFieldsRequired() *APIError {
	return NewErrValidation("all fields are required")
}

func NewErrAvatarRequired() *APIError {
	return NewErrValidation("avatar file is required")
}

func NewErrUserExists() *APIError {
	return &APIError{Kind: KindConflict, HTTPCode: http.StatusConflict, Message: "user with email or username already exists"}
}

func NewErrEmailTaken() *APIError {
	return &APIError{Kind: KindConflict, HTTPCode: http.StatusConflict, Message: "email is already in use"}
}

func NewErrUserNotFound() *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: "user does not exist"}
}

func NewErrChannelNotFound() *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: "channel does not exist"}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusUnauthorized, Message: "invalid user credentials"}
}

// NewErrInvalidOldPassword is an auth failure reported as a bad request.
func NewErrInvalidOldPassword() *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusBadRequest, Message: "invalid old password"}
}

func NewErrInvalidRefreshToken(err error) *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusUnauthorized, Message: "invalid or expired refresh token", Err: err}
}

func NewErrUnauthorized(err error) *APIError {
	return &APIError{Kind: KindUnauthorized, HTTPCode: http.StatusUnauthorized, Message: "unauthorized request", Err: err}
}

func NewErrUpload(err error) *APIError {
	return &APIError{Kind: KindUpload, HTTPCode: http.StatusBadRequest, Message: "error while uploading file", Err: err}
}

func NewErrConfig(err error) *APIError {
	return &APIError{Kind: KindConfig, HTTPCode: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{Kind: KindInternal, HTTPCode: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

func NewErrTooManyRequests() *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusTooManyRequests, Message: "too many requests, try again later"}
}

func NewErrPayloadTooLarge() *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusRequestEntityTooLarge, Message: "request body too large"}
}
