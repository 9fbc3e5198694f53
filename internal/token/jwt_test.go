package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/vidtube-server/internal/model"
)

func newTestJWT() *JWT {
	return NewJWT(Params{
		AccessSecret:  "access-secret",
		AccessTTL:     15 * time.Minute,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	})
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	identity := model.Identity{
		UserID:   uuid.New(),
		Email:    "alice@example.com",
		Username: "alice",
		FullName: "Alice A",
	}

	access, err := j.GenerateAccessToken(identity)
	require.NoError(t, err)

	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestJWT_AccessAndRefreshShareSubject(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(model.Identity{UserID: u})
	require.NoError(t, err)
	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	identity, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	refreshUser, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)

	assert.Equal(t, identity.UserID, refreshUser)
}

func TestJWT_RefreshTokensAreUnique(t *testing.T) {
	j := newTestJWT()
	fixed := time.Now()
	j.now = func() time.Time { return fixed }
	u := uuid.New()

	first, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	second, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT(Params{
		AccessSecret:  "same",
		AccessTTL:     time.Minute,
		RefreshSecret: "same",
		RefreshTTL:    time.Minute,
	})
	u := uuid.New()

	access, err := j.GenerateAccessToken(model.Identity{UserID: u})
	require.NoError(t, err)
	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(model.Identity{UserID: u})
	require.NoError(t, err)

	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := newTestJWT()
	issued := time.Now().Add(-2 * time.Hour)
	j.now = func() time.Time { return issued }

	access, err := j.GenerateAccessToken(model.Identity{UserID: uuid.New()})
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	j := newTestJWT()
	claims := Claims{UserID: uuid.New(), TokenType: typeAccess}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(tokenString)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_EmptySecret(t *testing.T) {
	tests := []struct {
		name string
		run  func(j *JWT) error
	}{
		{
			name: "generate access",
			run: func(j *JWT) error {
				_, err := j.GenerateAccessToken(model.Identity{UserID: uuid.New()})
				return err
			},
		},
		{
			name: "generate refresh",
			run: func(j *JWT) error {
				_, err := j.GenerateRefreshToken(uuid.New())
				return err
			},
		},
		{
			name: "parse access",
			run: func(j *JWT) error {
				_, err := j.ParseAccessToken("token")
				return err
			},
		},
		{
			name: "parse refresh",
			run: func(j *JWT) error {
				_, err := j.ParseRefreshToken("token")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			j := NewJWT(Params{AccessTTL: time.Minute, RefreshTTL: time.Minute})
			require.ErrorIs(t, tt.run(j), model.ErrConfig)
		})
	}
}

func TestJWT_Garbage(t *testing.T) {
	j := newTestJWT()

	_, err := j.ParseAccessToken("not-a-token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
