package model

import "github.com/google/uuid"

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(identity Identity) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (Identity, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}

// Identity is the user identity carried by an access token.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Username string
	FullName string
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the result of a successful login or refresh.
type Session struct {
	User   PublicProfile
	Tokens TokenPair
}

// Cookie names carrying the session tokens.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)
