package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/api/http/middleware"
	"github.com/dtroode/vidtube-server/internal/api/http/response"
	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// AuthService defines registration, login and session operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.PublicProfile, error)
	Login(ctx context.Context, params model.LoginParams) (model.Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, refreshToken string) (model.Session, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// Auth handles the session endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	stager         *FileStager
	cookies        *Cookies
	jsonLimit      int64
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	contextManager model.ContextManager,
	stager *FileStager,
	cookies *Cookies,
	jsonLimit int64,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		stager:         stager,
		cookies:        cookies,
		jsonLimit:      jsonLimit,
		logger:         logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type sessionResponse struct {
	User         model.PublicProfile `json:"user"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

// Register creates an account from a multipart form with avatar and optional cover image.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	form, err := h.stager.Stage(w, r, "avatar", "coverImage")
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	defer form.Release()

	profile, err := h.authService.Register(r.Context(), model.RegisterParams{
		Username:   form.Value("username"),
		Email:      form.Value("email"),
		FullName:   form.Value("fullname"),
		Password:   form.Value("password"),
		Avatar:     form.File("avatar"),
		CoverImage: form.File("coverImage"),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: user registered", "user_id", profile.ID)
	response.JSON(w, http.StatusCreated, profile, "user registered successfully")
}

// Login verifies credentials, sets the token cookies and returns the session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.jsonLimit, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	session, err := h.authService.Login(r.Context(), model.LoginParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	h.cookies.Set(w, session.Tokens)
	response.JSON(w, http.StatusOK, newSessionResponse(session), "user logged in successfully")
}

// Logout revokes the refresh token and clears the cookies.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.logger, apierrors.NewErrUnauthorized(nil))
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	h.cookies.Clear(w)
	response.JSON(w, http.StatusOK, nil, "user logged out")
}

// RefreshToken rotates the session. The token is read from the refreshToken
// cookie, then the JSON body, then the Authorization header.
func (h *Auth) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.refreshTokenFrom(w, r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	session, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	h.cookies.Set(w, session.Tokens)
	response.JSON(w, http.StatusOK, newSessionResponse(session), "access token refreshed")
}

// ChangePassword replaces the current user's password.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.logger, apierrors.NewErrUnauthorized(nil))
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, h.jsonLimit, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, nil, "password changed successfully")
}

func (h *Auth) refreshTokenFrom(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(model.RefreshTokenCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}

	// A malformed body still falls back to the header.
	var req refreshRequest
	err := decodeJSON(w, r, h.jsonLimit, &req)
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode == http.StatusRequestEntityTooLarge {
		return "", err
	}
	if err == nil && req.RefreshToken != "" {
		return req.RefreshToken, nil
	}

	return middleware.BearerToken(r), nil
}

func newSessionResponse(s model.Session) sessionResponse {
	return sessionResponse{
		User:         s.User,
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
	}
}
