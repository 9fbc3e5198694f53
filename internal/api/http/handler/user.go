package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/api/http/response"
	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// AccountService defines profile update operations.
type AccountService interface {
	UpdateAccountDetails(ctx context.Context, userID uuid.UUID, fullName, email *string) (model.PublicProfile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file *model.LocalFile) (model.PublicProfile, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *model.LocalFile) (model.PublicProfile, error)
}

// ProfileService defines channel and watch history queries.
type ProfileService interface {
	GetChannelProfile(ctx context.Context, viewerID *uuid.UUID, username string) (model.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]model.WatchHistoryEntry, error)
}

// User handles the profile endpoints.
type User struct {
	accountService AccountService
	profileService ProfileService
	contextManager model.ContextManager
	stager         *FileStager
	jsonLimit      int64
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(
	accountService AccountService,
	profileService ProfileService,
	contextManager model.ContextManager,
	stager *FileStager,
	jsonLimit int64,
	logger *logger.Logger,
) *User {
	return &User{
		accountService: accountService,
		profileService: profileService,
		contextManager: contextManager,
		stager:         stager,
		jsonLimit:      jsonLimit,
		logger:         logger,
	}
}

type updateAccountRequest struct {
	FullName *string `json:"fullname"`
	Email    *string `json:"email"`
}

// CurrentUser returns the authenticated user's public profile.
func (h *User) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	response.JSON(w, http.StatusOK, user.Public(), "current user fetched successfully")
}

// UpdateAccount changes full name and/or email.
func (h *User) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(w, r, h.jsonLimit, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	profile, err := h.accountService.UpdateAccountDetails(r.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, profile, "account details updated successfully")
}

// UpdateAvatar replaces the avatar from a multipart "avatar" file.
func (h *User) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.accountService.UpdateAvatar, "avatar updated successfully")
}

// UpdateCoverImage replaces the cover image from a multipart "coverImage" file.
func (h *User) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.accountService.UpdateCoverImage, "cover image updated successfully")
}

// ChannelProfile returns the public channel view of {username}. Viewer identity is optional.
func (h *User) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	var viewerID *uuid.UUID
	if viewer, ok := h.contextManager.GetUserFromContext(r.Context()); ok {
		viewerID = &viewer.ID
	}

	channel, err := h.profileService.GetChannelProfile(r.Context(), viewerID, chi.URLParam(r, "username"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, channel, "user channel fetched successfully")
}

// WatchHistory returns the current user's watch history in stored history order.
func (h *User) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	history, err := h.profileService.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, history, "watch history fetched successfully")
}

type imageUpdate func(ctx context.Context, userID uuid.UUID, file *model.LocalFile) (model.PublicProfile, error)

func (h *User) updateImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdate, message string) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	form, err := h.stager.Stage(w, r, field)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	defer form.Release()

	profile, err := update(r.Context(), user.ID, form.File(field))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, profile, message)
}

func (h *User) currentUser(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.logger, apierrors.NewErrUnauthorized(nil))
	}
	return user, ok
}
