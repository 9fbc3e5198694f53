package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/metrics"
	"github.com/dtroode/vidtube-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	hasher       *PasswordHasher
	tokenService *TokenService
	media        model.MediaUploader
	metrics      model.MetricsRecorder
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher *PasswordHasher,
	tokenService *TokenService,
	media model.MediaUploader,
	metrics model.MetricsRecorder,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		media:        media,
		metrics:      metrics,
		logger:       logger,
	}
}

// Register creates a user with an uploaded avatar and optional cover image.
// Staged files are always removed; uploaded objects are deleted if registration fails.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.PublicProfile, error) {
	defer releaseLocal(params.Avatar, params.CoverImage)

	username := normalize(params.Username)
	email := normalize(params.Email)
	fullName := strings.TrimSpace(params.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(params.Password) == "" {
		return model.PublicProfile{}, apierrors.NewErrFieldsRequired()
	}

	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	_, err := a.userStore.GetByUsernameOrEmail(ctx, username, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"username", username)
		return model.PublicProfile{}, apierrors.NewErrUserExists()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to look up user",
			"username", username,
			"error", err.Error())
		return model.PublicProfile{}, apierrors.NewErrInternalServerError(fmt.Errorf("failed to get user: %w", err))
	}

	if params.Avatar == nil {
		return model.PublicProfile{}, apierrors.NewErrAvatarRequired()
	}

	var uploaded []string
	discard := func() {
		for _, url := range uploaded {
			a.media.Discard(context.WithoutCancel(ctx), url)
		}
	}

	avatar, err := a.media.Upload(ctx, model.MediaKindAvatar, *params.Avatar)
	if err != nil {
		return model.PublicProfile{}, err
	}
	uploaded = append(uploaded, avatar.URL)

	var coverImage string
	if params.CoverImage != nil {
		cover, err := a.media.Upload(ctx, model.MediaKindCoverImage, *params.CoverImage)
		if err != nil {
			discard()
			return model.PublicProfile{}, err
		}
		coverImage = cover.URL
		uploaded = append(uploaded, cover.URL)
	}

	passwordHash, err := a.hasher.Hash(params.Password)
	if err != nil {
		discard()
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return model.PublicProfile{}, apierrors.NewErrInternalServerError(err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Avatar:       avatar.URL,
		CoverImage:   coverImage,
	})
	if err != nil {
		discard()
		if errors.Is(err, model.ErrConflict) {
			return model.PublicProfile{}, apierrors.NewErrUserExists()
		}
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.PublicProfile{}, apierrors.NewErrInternalServerError(fmt.Errorf("failed to create user: %w", err))
	}

	a.metrics.RecordAuthEvent(metrics.EventRegister)
	a.logger.Info("Auth service: user registered",
		"username", username,
		"user_id", user.ID.String())

	return user.Public(), nil
}

// Login verifies credentials and starts a new session, replacing any previous refresh token.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.Session, error) {
	username := normalize(params.Username)
	email := normalize(params.Email)

	if username == "" && email == "" {
		return model.Session{}, apierrors.NewErrValidation("username or email is required")
	}
	if params.Password == "" {
		return model.Session{}, apierrors.NewErrValidation("password is required")
	}

	user, err := a.userStore.GetByUsernameOrEmail(ctx, username, email)
	if errors.Is(err, model.ErrNotFound) {
		a.metrics.RecordAuthEvent(metrics.EventLoginFailure)
		return model.Session{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to look up user",
			"username", username,
			"email", email,
			"error", err.Error())
		return model.Session{}, apierrors.NewErrInternalServerError(fmt.Errorf("failed to get user: %w", err))
	}

	if !a.hasher.Verify(params.Password, user.PasswordHash) {
		a.metrics.RecordAuthEvent(metrics.EventLoginFailure)
		a.logger.Info("Auth service: invalid password",
			"user_id", user.ID.String())
		return model.Session{}, apierrors.NewErrInvalidCredentials()
	}

	rotated, pair, err := a.tokenService.Rotate(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID.String(),
			"error", err.Error())
		return model.Session{}, tokenError(err)
	}

	a.metrics.RecordAuthEvent(metrics.EventLoginSuccess)
	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID.String())

	return model.Session{User: rotated.Public(), Tokens: pair}, nil
}

// Logout revokes the user's refresh token.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.tokenService.Revoke(ctx, userID); err != nil {
		a.logger.Error("Auth service: failed to revoke refresh token",
			"user_id", userID.String(),
			"error", err.Error())
		return apierrors.NewErrInternalServerError(err)
	}

	a.metrics.RecordAuthEvent(metrics.EventLogout)
	a.logger.Info("Auth service: user logged out",
		"user_id", userID.String())

	return nil
}

// Refresh exchanges a current refresh token for a new pair.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.Session, error) {
	if refreshToken == "" {
		return model.Session{}, apierrors.NewErrUnauthorized(nil)
	}

	user, pair, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrInvalidToken) {
			a.metrics.RecordAuthEvent(metrics.EventRefreshRejected)
			a.logger.Info("Auth service: refresh token rejected",
				"error", err.Error())
			return model.Session{}, apierrors.NewErrInvalidRefreshToken(err)
		}
		a.logger.Error("Auth service: failed to refresh tokens",
			"error", err.Error())
		return model.Session{}, tokenError(err)
	}

	a.metrics.RecordAuthEvent(metrics.EventRefresh)

	return model.Session{User: user.Public(), Tokens: pair}, nil
}

// ChangePassword replaces the password after verifying the old one.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apierrors.NewErrValidation("old and new password are required")
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return apierrors.NewErrInternalServerError(fmt.Errorf("failed to get user: %w", err))
	}

	if !a.hasher.Verify(oldPassword, user.PasswordHash) {
		return apierrors.NewErrInvalidOldPassword()
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return apierrors.NewErrInternalServerError(err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, passwordHash); err != nil {
		a.logger.Error("Auth service: failed to update password",
			"user_id", userID.String(),
			"error", err.Error())
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrUserNotFound()
		}
		return apierrors.NewErrInternalServerError(fmt.Errorf("failed to update password: %w", err))
	}

	a.logger.Info("Auth service: password changed",
		"user_id", userID.String())

	return nil
}

// tokenError maps token service failures that are not token rejections.
func tokenError(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return apierrors.NewErrUserNotFound()
	case errors.Is(err, model.ErrConfig):
		return apierrors.NewErrConfig(err)
	default:
		return apierrors.NewErrInternalServerError(err)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
