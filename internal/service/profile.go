package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// Profile builds read models over users, subscriptions and videos.
type Profile struct {
	userStore         model.UserStore
	subscriptionStore model.SubscriptionStore
	videoStore        model.VideoStore
	logger            *logger.Logger
}

func NewProfile(
	userStore model.UserStore,
	subscriptionStore model.SubscriptionStore,
	videoStore model.VideoStore,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		userStore:         userStore,
		subscriptionStore: subscriptionStore,
		videoStore:        videoStore,
		logger:            logger,
	}
}

// GetChannelProfile returns the channel view of username. viewerID is nil for anonymous requests.
func (p *Profile) GetChannelProfile(ctx context.Context, viewerID *uuid.UUID, username string) (model.ChannelProfile, error) {
	username = normalize(username)
	if username == "" {
		return model.ChannelProfile{}, apierrors.NewErrValidation("username is missing")
	}

	channel, err := p.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.ChannelProfile{}, apierrors.NewErrChannelNotFound()
	}
	if err != nil {
		return model.ChannelProfile{}, p.internal("failed to get channel", err)
	}

	subscribers, err := p.subscriptionStore.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return model.ChannelProfile{}, p.internal("failed to count subscribers", err)
	}

	subscribedTo, err := p.subscriptionStore.CountSubscriptions(ctx, channel.ID)
	if err != nil {
		return model.ChannelProfile{}, p.internal("failed to count subscriptions", err)
	}

	var isSubscribed bool
	if viewerID != nil {
		isSubscribed, err = p.subscriptionStore.Exists(ctx, *viewerID, channel.ID)
		if err != nil {
			return model.ChannelProfile{}, p.internal("failed to check subscription", err)
		}
	}

	return model.ChannelProfile{
		FullName:                  channel.FullName,
		Username:                  channel.Username,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
		Avatar:                    channel.Avatar,
		CoverImage:                channel.CoverImage,
		Email:                     channel.Email,
	}, nil
}

// GetWatchHistory returns the user's watched videos in history order.
// Repeated ids yield repeated entries; videos that no longer exist are skipped.
func (p *Profile) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]model.WatchHistoryEntry, error) {
	user, err := p.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return nil, p.internal("failed to get user", err)
	}

	entries := make([]model.WatchHistoryEntry, 0, len(user.WatchHistory))
	if len(user.WatchHistory) == 0 {
		return entries, nil
	}

	videos, err := p.videoStore.GetByIDs(ctx, unique(user.WatchHistory))
	if err != nil {
		return nil, p.internal("failed to get videos", err)
	}

	videosByID := make(map[uuid.UUID]model.Video, len(videos))
	ownerIDs := make([]uuid.UUID, 0, len(videos))
	for _, v := range videos {
		videosByID[v.ID] = v
		ownerIDs = append(ownerIDs, v.OwnerID)
	}

	owners := make(map[uuid.UUID]*model.VideoOwner)
	if len(ownerIDs) > 0 {
		users, err := p.userStore.GetByIDs(ctx, unique(ownerIDs))
		if err != nil {
			return nil, p.internal("failed to get video owners", err)
		}
		for _, u := range users {
			owners[u.ID] = &model.VideoOwner{
				Username: u.Username,
				FullName: u.FullName,
				Avatar:   u.Avatar,
			}
		}
	}

	for _, id := range user.WatchHistory {
		v, ok := videosByID[id]
		if !ok {
			continue
		}
		entries = append(entries, model.WatchHistoryEntry{
			ID:          v.ID,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Title:       v.Title,
			Description: v.Description,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
			Owner:       owners[v.OwnerID],
			CreatedAt:   v.CreatedAt,
			UpdatedAt:   v.UpdatedAt,
		})
	}

	return entries, nil
}

func (p *Profile) internal(msg string, err error) error {
	p.logger.Error("Profile service: "+msg,
		"error", err.Error())
	return apierrors.NewErrInternalServerError(fmt.Errorf("%s: %w", msg, err))
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
