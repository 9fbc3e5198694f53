package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/model"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Claims represents JWT claims with token type and user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"_id"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"fullname,omitempty"`
	TokenType string    `json:"typ"`
}

// Params configures the JWT token manager.
type Params struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// JWT implements TokenManager backed by symmetric HMAC with
// separate secrets for access and refresh tokens.
type JWT struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
	now           func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager.
func NewJWT(params Params) *JWT {
	return &JWT{
		accessSecret:  []byte(params.AccessSecret),
		accessTTL:     params.AccessTTL,
		refreshSecret: []byte(params.RefreshSecret),
		refreshTTL:    params.RefreshTTL,
		now:           time.Now,
	}
}

// GenerateAccessToken creates a short-lived access token carrying the user identity.
func (j *JWT) GenerateAccessToken(identity model.Identity) (string, error) {
	if len(j.accessSecret) == 0 {
		return "", fmt.Errorf("access token secret is empty: %w", model.ErrConfig)
	}

	claims := Claims{
		RegisteredClaims: j.registered(j.accessTTL),
		UserID:           identity.UserID,
		Email:            identity.Email,
		Username:         identity.Username,
		FullName:         identity.FullName,
		TokenType:        typeAccess,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token carrying only the user ID.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	if len(j.refreshSecret) == 0 {
		return "", fmt.Errorf("refresh token secret is empty: %w", model.ErrConfig)
	}

	claims := Claims{
		RegisteredClaims: j.registered(j.refreshTTL),
		UserID:           userID,
		TokenType:        typeRefresh,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and returns the identity it carries.
func (j *JWT) ParseAccessToken(tokenString string) (model.Identity, error) {
	claims, err := j.parse(tokenString, j.accessSecret, typeAccess)
	if err != nil {
		return model.Identity{}, err
	}

	return model.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		FullName: claims.FullName,
	}, nil
}

// ParseRefreshToken validates a refresh token and returns its user ID.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, j.refreshSecret, typeRefresh)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}

func (j *JWT) registered(ttl time.Duration) jwt.RegisteredClaims {
	now := j.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (j *JWT) parse(tokenString string, secret []byte, tokenType string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%s token secret is empty: %w", tokenType, model.ErrConfig)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, errors.Join(model.ErrInvalidToken, fmt.Errorf("failed to parse %s token: %w", tokenType, err))
	}
	if !token.Valid {
		return nil, fmt.Errorf("%s token is invalid: %w", tokenType, model.ErrInvalidToken)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token type mismatch %q: %w", claims.TokenType, model.ErrInvalidToken)
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%s token has no subject: %w", tokenType, model.ErrInvalidToken)
	}

	return claims, nil
}
