package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// Account updates profile details and images of an authenticated user.
type Account struct {
	userStore model.UserStore
	media     model.MediaUploader
	logger    *logger.Logger
}

func NewAccount(userStore model.UserStore, media model.MediaUploader, logger *logger.Logger) *Account {
	return &Account{userStore: userStore, media: media, logger: logger}
}

// UpdateAccountDetails changes full name and/or email. At least one must be given.
func (s *Account) UpdateAccountDetails(ctx context.Context, userID uuid.UUID, fullName, email *string) (model.PublicProfile, error) {
	var params model.UpdateAccountParams
	if fullName != nil {
		if v := strings.TrimSpace(*fullName); v != "" {
			params.FullName = &v
		}
	}
	if email != nil {
		if v := normalize(*email); v != "" {
			params.Email = &v
		}
	}

	if params.FullName == nil && params.Email == nil {
		return model.PublicProfile{}, apierrors.NewErrValidation("fullname or email is required")
	}

	user, err := s.userStore.UpdateAccount(ctx, userID, params)
	switch {
	case errors.Is(err, model.ErrConflict):
		return model.PublicProfile{}, apierrors.NewErrEmailTaken()
	case errors.Is(err, model.ErrNotFound):
		return model.PublicProfile{}, apierrors.NewErrUserNotFound()
	case err != nil:
		s.logger.Error("Account service: failed to update account",
			"user_id", userID.String(),
			"error", err.Error())
		return model.PublicProfile{}, apierrors.NewErrInternalServerError(fmt.Errorf("failed to update account: %w", err))
	}

	return user.Public(), nil
}

// UpdateAvatar replaces the avatar with the staged file.
func (s *Account) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *model.LocalFile) (model.PublicProfile, error) {
	return s.replaceImage(ctx, userID, model.MediaKindAvatar, file, func(u model.User) string { return u.Avatar }, s.userStore.UpdateAvatar)
}

// UpdateCoverImage replaces the cover image with the staged file.
func (s *Account) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *model.LocalFile) (model.PublicProfile, error) {
	return s.replaceImage(ctx, userID, model.MediaKindCoverImage, file, func(u model.User) string { return u.CoverImage }, s.userStore.UpdateCoverImage)
}

type imageUpdater func(ctx context.Context, id uuid.UUID, url string) (model.User, error)

func (s *Account) replaceImage(
	ctx context.Context,
	userID uuid.UUID,
	kind model.MediaKind,
	file *model.LocalFile,
	current func(model.User) string,
	update imageUpdater,
) (model.PublicProfile, error) {
	defer releaseLocal(file)

	if file == nil {
		return model.PublicProfile{}, apierrors.NewErrValidation(fmt.Sprintf("%s file is missing", kind))
	}

	existing, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.PublicProfile{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.PublicProfile{}, apierrors.NewErrInternalServerError(fmt.Errorf("failed to get user: %w", err))
	}

	uploaded, err := s.media.Upload(ctx, kind, *file)
	if err != nil {
		return model.PublicProfile{}, err
	}

	user, err := update(ctx, userID, uploaded.URL)
	if err != nil {
		s.media.Discard(context.WithoutCancel(ctx), uploaded.URL)
		s.logger.Error("Account service: failed to save image",
			"user_id", userID.String(),
			"kind", string(kind),
			"error", err.Error())
		if errors.Is(err, model.ErrNotFound) {
			return model.PublicProfile{}, apierrors.NewErrUserNotFound()
		}
		return model.PublicProfile{}, apierrors.NewErrInternalServerError(fmt.Errorf("failed to update %s: %w", kind, err))
	}

	if previous := current(existing); previous != "" && previous != uploaded.URL {
		s.media.Discard(context.WithoutCancel(ctx), previous)
	}

	return user.Public(), nil
}
