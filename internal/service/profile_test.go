package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/mocks"
	"github.com/dtroode/vidtube-server/internal/model"
	"github.com/dtroode/vidtube-server/internal/testutil"
)

type profileDeps struct {
	users  *mocks.UserStore
	subs   *mocks.SubscriptionStore
	videos *mocks.VideoStore
	svc    *Profile
}

func newProfileDeps(t *testing.T) profileDeps {
	users := mocks.NewUserStore(t)
	subs := mocks.NewSubscriptionStore(t)
	videos := mocks.NewVideoStore(t)
	return profileDeps{
		users:  users,
		subs:   subs,
		videos: videos,
		svc:    NewProfile(users, subs, videos, testutil.MakeNoopLogger()),
	}
}

func TestProfile_GetChannelProfile(t *testing.T) {
	ctx := context.Background()
	channel := model.User{
		ID:         uuid.New(),
		Username:   "bob",
		Email:      "bob@example.com",
		FullName:   "Bob B",
		Avatar:     "http://cdn/bob.png",
		CoverImage: "http://cdn/bob-cover.png",
	}
	viewer := uuid.New()

	t.Run("with viewer", func(t *testing.T) {
		d := newProfileDeps(t)
		d.users.On("GetByUsername", ctx, "bob").Return(channel, nil).Once()
		d.subs.On("CountSubscribers", ctx, channel.ID).Return(int64(2), nil).Once()
		d.subs.On("CountSubscriptions", ctx, channel.ID).Return(int64(0), nil).Once()
		d.subs.On("Exists", ctx, viewer, channel.ID).Return(true, nil).Once()

		got, err := d.svc.GetChannelProfile(ctx, &viewer, " Bob ")
		require.NoError(t, err)
		assert.Equal(t, model.ChannelProfile{
			FullName:                  "Bob B",
			Username:                  "bob",
			SubscribersCount:          2,
			ChannelsSubscribedToCount: 0,
			IsSubscribed:              true,
			Avatar:                    "http://cdn/bob.png",
			CoverImage:                "http://cdn/bob-cover.png",
			Email:                     "bob@example.com",
		}, got)
	})

	t.Run("anonymous", func(t *testing.T) {
		d := newProfileDeps(t)
		d.users.On("GetByUsername", ctx, "bob").Return(channel, nil).Once()
		d.subs.On("CountSubscribers", ctx, channel.ID).Return(int64(0), nil).Once()
		d.subs.On("CountSubscriptions", ctx, channel.ID).Return(int64(0), nil).Once()

		got, err := d.svc.GetChannelProfile(ctx, nil, "bob")
		require.NoError(t, err)
		assert.False(t, got.IsSubscribed)
		assert.Zero(t, got.SubscribersCount)
	})

	t.Run("empty username", func(t *testing.T) {
		d := newProfileDeps(t)
		_, err := d.svc.GetChannelProfile(ctx, nil, "  ")
		assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))
	})

	t.Run("unknown channel", func(t *testing.T) {
		d := newProfileDeps(t)
		d.users.On("GetByUsername", ctx, "ghost").Return(model.User{}, model.ErrNotFound).Once()

		_, err := d.svc.GetChannelProfile(ctx, nil, "ghost")
		assert.True(t, apierrors.IsKind(err, apierrors.KindNotFound))
	})

	t.Run("count failure", func(t *testing.T) {
		d := newProfileDeps(t)
		d.users.On("GetByUsername", ctx, "bob").Return(channel, nil).Once()
		d.subs.On("CountSubscribers", ctx, channel.ID).Return(int64(0), assert.AnError).Once()

		_, err := d.svc.GetChannelProfile(ctx, nil, "bob")
		assert.True(t, apierrors.IsKind(err, apierrors.KindInternal))
	})
}

func TestProfile_GetWatchHistory(t *testing.T) {
	ctx := context.Background()
	owner := model.User{ID: uuid.New(), Username: "carol", FullName: "Carol C", Avatar: "http://cdn/carol.png"}
	v1 := model.Video{ID: uuid.New(), Title: "one", OwnerID: owner.ID, IsPublished: true}
	v2 := model.Video{ID: uuid.New(), Title: "two", OwnerID: uuid.New()}
	dangling := uuid.New()
	user := model.User{ID: uuid.New(), WatchHistory: []uuid.UUID{v2.ID, dangling, v1.ID, v2.ID}}

	d := newProfileDeps(t)
	d.users.On("GetByID", ctx, user.ID).Return(user, nil).Once()
	d.videos.On("GetByIDs", ctx, []uuid.UUID{v2.ID, dangling, v1.ID}).Return([]model.Video{v1, v2}, nil).Once()
	d.users.On("GetByIDs", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return assert.ElementsMatch(t, []uuid.UUID{owner.ID, v2.OwnerID}, ids)
	})).Return([]model.User{owner}, nil).Once()

	entries, err := d.svc.GetWatchHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "two", entries[0].Title)
	assert.Nil(t, entries[0].Owner)
	assert.Equal(t, "one", entries[1].Title)
	assert.Equal(t, &model.VideoOwner{Username: "carol", FullName: "Carol C", Avatar: "http://cdn/carol.png"}, entries[1].Owner)
	assert.Equal(t, "two", entries[2].Title)
}

func TestProfile_GetWatchHistory_Empty(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d := newProfileDeps(t)
	d.users.On("GetByID", ctx, userID).Return(model.User{ID: userID}, nil).Once()

	entries, err := d.svc.GetWatchHistory(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestProfile_GetWatchHistory_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d := newProfileDeps(t)
	d.users.On("GetByID", ctx, userID).Return(model.User{}, model.ErrNotFound).Once()

	_, err := d.svc.GetWatchHistory(ctx, userID)
	assert.True(t, apierrors.IsKind(err, apierrors.KindNotFound))
}
