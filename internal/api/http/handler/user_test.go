package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/vidtube-server/internal/api/http/context"
	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/mocks"
	"github.com/dtroode/vidtube-server/internal/model"
	"github.com/dtroode/vidtube-server/internal/testutil"
)

func newUserHandler(t *testing.T) (*User, *mocks.AccountService, *mocks.ProfileService, string) {
	t.Helper()
	account := mocks.NewAccountService(t)
	profile := mocks.NewProfileService(t)
	dir := t.TempDir()
	h := NewUser(account, profile, httpctx.NewManager(), NewFileStager(dir, 1<<20), testJSONLimit, testutil.MakeNoopLogger())
	return h, account, profile, dir
}

func TestUser_CurrentUser(t *testing.T) {
	h, _, _, _ := newUserHandler(t)
	user := testUser()
	user.PasswordHash = "$2a$10$digest"
	user.RefreshTokenHash = []byte("digest")

	rec := httptest.NewRecorder()
	h.CurrentUser(rec, withUser(httptest.NewRequest(http.MethodGet, "/current-user", nil), user))

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.PublicProfile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, user.ID, got.ID)
	assert.NotContains(t, rec.Body.String(), "digest")

	rec = httptest.NewRecorder()
	h.CurrentUser(rec, httptest.NewRequest(http.MethodGet, "/current-user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUser_UpdateAccount(t *testing.T) {
	h, account, _, _ := newUserHandler(t)
	user := testUser()

	updated := user
	updated.Email = "new@example.com"
	account.On("UpdateAccountDetails", mock.Anything, user.ID, (*string)(nil), mock.MatchedBy(func(e *string) bool {
		return e != nil && *e == "new@example.com"
	})).Return(updated.Public(), nil)

	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPatch, "/update-account", map[string]string{"email": "new@example.com"})
	h.UpdateAccount(rec, withUser(req, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), "new@example.com")
}

func TestUser_UpdateAccount_Conflict(t *testing.T) {
	h, account, _, _ := newUserHandler(t)
	user := testUser()

	account.On("UpdateAccountDetails", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(model.PublicProfile{}, apierrors.NewErrEmailTaken())

	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPatch, "/update-account", map[string]string{"email": "taken@example.com"})
	h.UpdateAccount(rec, withUser(req, user))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUser_UpdateAvatar(t *testing.T) {
	h, account, _, dir := newUserHandler(t)
	user := testUser()

	account.On("UpdateAvatar", mock.Anything, user.ID, mock.MatchedBy(func(f *model.LocalFile) bool {
		return f != nil && f.OriginalName == "me.png"
	})).Return(user.Public(), nil)

	req := multipartRequest(t, http.MethodPatch, "/update-avatar", nil,
		upload{field: "avatar", name: "me.png", contentType: "image/png", body: []byte("png")})
	rec := httptest.NewRecorder()
	h.UpdateAvatar(rec, withUser(req, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "avatar updated successfully", decodeEnvelope(t, rec).Message)
	assert.Empty(t, listDir(t, dir))
}

func TestUser_UpdateCoverImage_MissingFile(t *testing.T) {
	h, account, _, _ := newUserHandler(t)
	user := testUser()

	account.On("UpdateCoverImage", mock.Anything, user.ID, (*model.LocalFile)(nil)).
		Return(model.PublicProfile{}, apierrors.NewErrValidation("cover image file is missing"))

	req := multipartRequest(t, http.MethodPatch, "/update-cover-image", map[string]string{"note": "no file"})
	rec := httptest.NewRecorder()
	h.UpdateCoverImage(rec, withUser(req, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUser_UpdateCoverImage_WrongField(t *testing.T) {
	h, _, _, _ := newUserHandler(t)

	req := multipartRequest(t, http.MethodPatch, "/update-cover-image", nil,
		upload{field: "avatar", name: "me.png", body: []byte("png")})
	rec := httptest.NewRecorder()
	h.UpdateCoverImage(rec, withUser(req, testUser()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUser_ChannelProfile(t *testing.T) {
	viewer := testUser()
	channel := model.ChannelProfile{Username: "bob", SubscribersCount: 3, IsSubscribed: true}

	route := func(h *User) http.Handler {
		r := chi.NewRouter()
		r.Get("/c/{username}", h.ChannelProfile)
		return r
	}

	t.Run("with viewer", func(t *testing.T) {
		h, _, profile, _ := newUserHandler(t)
		profile.On("GetChannelProfile", mock.Anything, &viewer.ID, "bob").Return(channel, nil)

		rec := httptest.NewRecorder()
		route(h).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/c/bob", nil), viewer))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"isSubscribed":true`)
	})

	t.Run("anonymous", func(t *testing.T) {
		h, _, profile, _ := newUserHandler(t)
		profile.On("GetChannelProfile", mock.Anything, (*uuid.UUID)(nil), "bob").Return(model.ChannelProfile{Username: "bob"}, nil)

		rec := httptest.NewRecorder()
		route(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/c/bob", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"isSubscribed":false`)
	})

	t.Run("not found", func(t *testing.T) {
		h, _, profile, _ := newUserHandler(t)
		profile.On("GetChannelProfile", mock.Anything, mock.Anything, "ghost").Return(model.ChannelProfile{}, apierrors.NewErrChannelNotFound())

		rec := httptest.NewRecorder()
		route(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/c/ghost", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "channel does not exist", decodeEnvelope(t, rec).Message)
	})
}

func TestUser_WatchHistory(t *testing.T) {
	h, _, profile, _ := newUserHandler(t)
	user := testUser()

	entries := []model.WatchHistoryEntry{
		{ID: uuid.New(), Title: "first", Owner: &model.VideoOwner{Username: "bob"}},
		{ID: uuid.New(), Title: "orphan"},
	}
	profile.On("GetWatchHistory", mock.Anything, user.ID).Return(entries, nil)

	rec := httptest.NewRecorder()
	h.WatchHistory(rec, withUser(httptest.NewRequest(http.MethodGet, "/watch-history", nil), user))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0]["title"])
	assert.Nil(t, got[1]["owner"])
}
