package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/vidtube-server/internal/api/http/response"
	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// Authenticator resolves the user named by an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Authenticate verifies access tokens and attaches the user to the request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Required rejects requests without a valid access token.
func (m *Authenticate) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			response.Error(w, r, m.logger, apierrors.NewErrUnauthorized(nil))
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, model.ErrInvalidToken) {
				response.Error(w, r, m.logger, apierrors.NewErrUnauthorized(err))
				return
			}
			response.Error(w, r, m.logger, apierrors.NewErrInternalServerError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

// Optional attaches the user when a valid access token is present and
// otherwise lets the request through anonymously.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debug("Authenticate middleware: continuing anonymously",
				"path", r.URL.Path,
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

// ExtractToken returns the access token from the accessToken cookie or,
// failing that, from an "Authorization: Bearer" header.
func ExtractToken(r *http.Request) string {
	if c, err := r.Cookie(model.AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return BearerToken(r)
}

// BearerToken returns the token of an "Authorization: Bearer" header, if any.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
