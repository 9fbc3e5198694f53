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

func strPtr(s string) *string { return &s }

func TestAccount_UpdateAccountDetails(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		fullName *string
		email    *string
		setup    func(users *mocks.UserStore)
		wantKind apierrors.Kind
	}{
		{
			name:     "both fields",
			fullName: strPtr(" Alice B "),
			email:    strPtr("New@Example.com"),
			setup: func(users *mocks.UserStore) {
				users.On("UpdateAccount", mock.Anything, userID, model.UpdateAccountParams{
					FullName: strPtr("Alice B"),
					Email:    strPtr("new@example.com"),
				}).Return(model.User{ID: userID, FullName: "Alice B", Email: "new@example.com"}, nil).Once()
			},
		},
		{
			name:     "fullname only",
			fullName: strPtr("Alice B"),
			setup: func(users *mocks.UserStore) {
				users.On("UpdateAccount", mock.Anything, userID, model.UpdateAccountParams{
					FullName: strPtr("Alice B"),
				}).Return(model.User{ID: userID, FullName: "Alice B"}, nil).Once()
			},
		},
		{
			name:     "nothing to update",
			fullName: strPtr("  "),
			setup:    func(users *mocks.UserStore) {},
			wantKind: apierrors.KindValidation,
		},
		{
			name:  "email taken",
			email: strPtr("bob@example.com"),
			setup: func(users *mocks.UserStore) {
				users.On("UpdateAccount", mock.Anything, userID, mock.Anything).Return(model.User{}, model.ErrConflict).Once()
			},
			wantKind: apierrors.KindConflict,
		},
		{
			name:  "user gone",
			email: strPtr("bob@example.com"),
			setup: func(users *mocks.UserStore) {
				users.On("UpdateAccount", mock.Anything, userID, mock.Anything).Return(model.User{}, model.ErrNotFound).Once()
			},
			wantKind: apierrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users := mocks.NewUserStore(t)
			tt.setup(users)
			svc := NewAccount(users, mocks.NewMediaUploader(t), testutil.MakeNoopLogger())

			profile, err := svc.UpdateAccountDetails(context.Background(), userID, tt.fullName, tt.email)
			if tt.wantKind != "" {
				assert.True(t, apierrors.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, profile.ID)
		})
	}
}

func TestAccount_UpdateAvatar(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	file := stagedFile(t, "avatar.png")

	users := mocks.NewUserStore(t)
	media := mocks.NewMediaUploader(t)

	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, Avatar: "http://cdn/old.png"}, nil).Once()
	media.On("Upload", ctx, model.MediaKindAvatar, *file).Return(model.UploadedMedia{URL: "http://cdn/new.png"}, nil).Once()
	users.On("UpdateAvatar", ctx, userID, "http://cdn/new.png").Return(model.User{ID: userID, Avatar: "http://cdn/new.png"}, nil).Once()
	media.On("Discard", mock.Anything, "http://cdn/old.png").Once()

	svc := NewAccount(users, media, testutil.MakeNoopLogger())

	profile, err := svc.UpdateAvatar(ctx, userID, file)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/new.png", profile.Avatar)
	assert.NoFileExists(t, file.Path)
}

func TestAccount_UpdateCoverImage_NoPrevious(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	file := stagedFile(t, "cover.png")

	users := mocks.NewUserStore(t)
	media := mocks.NewMediaUploader(t)

	users.On("GetByID", ctx, userID).Return(model.User{ID: userID}, nil).Once()
	media.On("Upload", ctx, model.MediaKindCoverImage, *file).Return(model.UploadedMedia{URL: "http://cdn/cover.png"}, nil).Once()
	users.On("UpdateCoverImage", ctx, userID, "http://cdn/cover.png").Return(model.User{ID: userID, CoverImage: "http://cdn/cover.png"}, nil).Once()

	svc := NewAccount(users, media, testutil.MakeNoopLogger())

	profile, err := svc.UpdateCoverImage(ctx, userID, file)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/cover.png", profile.CoverImage)
}

func TestAccount_UpdateAvatar_MissingFile(t *testing.T) {
	svc := NewAccount(mocks.NewUserStore(t), mocks.NewMediaUploader(t), testutil.MakeNoopLogger())

	_, err := svc.UpdateAvatar(context.Background(), uuid.New(), nil)
	assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))
}

func TestAccount_UpdateAvatar_UploadFails(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	file := stagedFile(t, "avatar.png")

	users := mocks.NewUserStore(t)
	media := mocks.NewMediaUploader(t)

	users.On("GetByID", ctx, userID).Return(model.User{ID: userID}, nil).Once()
	media.On("Upload", ctx, model.MediaKindAvatar, *file).Return(model.UploadedMedia{}, apierrors.NewErrUpload(assert.AnError)).Once()

	svc := NewAccount(users, media, testutil.MakeNoopLogger())

	_, err := svc.UpdateAvatar(ctx, userID, file)
	assert.True(t, apierrors.IsKind(err, apierrors.KindUpload))
	assert.NoFileExists(t, file.Path)
}

func TestAccount_UpdateAvatar_PersistFailsDiscardsUpload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	file := stagedFile(t, "avatar.png")

	users := mocks.NewUserStore(t)
	media := mocks.NewMediaUploader(t)

	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, Avatar: "http://cdn/old.png"}, nil).Once()
	media.On("Upload", ctx, model.MediaKindAvatar, *file).Return(model.UploadedMedia{URL: "http://cdn/new.png"}, nil).Once()
	users.On("UpdateAvatar", ctx, userID, "http://cdn/new.png").Return(model.User{}, assert.AnError).Once()
	media.On("Discard", mock.Anything, "http://cdn/new.png").Once()

	svc := NewAccount(users, media, testutil.MakeNoopLogger())

	_, err := svc.UpdateAvatar(ctx, userID, file)
	assert.True(t, apierrors.IsKind(err, apierrors.KindInternal))
}
