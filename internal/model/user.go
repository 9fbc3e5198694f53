package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (User, error)
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error
	SwapRefreshTokenHash(ctx context.Context, id uuid.UUID, oldHash, newHash []byte) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAccount(ctx context.Context, id uuid.UUID, params UpdateAccountParams) (User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (User, error)
	UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (User, error)
}

// User represents a stored user with authentication material.
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	FullName         string
	PasswordHash     string
	Avatar           string
	CoverImage       string
	RefreshTokenHash []byte
	WatchHistory     []uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UpdateAccountParams holds the optional account fields to change.
// Nil fields are left untouched.
type UpdateAccountParams struct {
	FullName *string
	Email    *string
}

// RegisterParams holds the registration form. Files are staged on local disk.
type RegisterParams struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *LocalFile
	CoverImage *LocalFile
}

// LoginParams holds login credentials. Either Username or Email identifies the user.
type LoginParams struct {
	Username string
	Email    string
	Password string
}

// PublicProfile is the user projection safe to return to clients.
type PublicProfile struct {
	ID           uuid.UUID   `json:"_id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"fullname"`
	Avatar       string      `json:"avatar"`
	CoverImage   string      `json:"coverImage"`
	WatchHistory []uuid.UUID `json:"watchHistory"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Public strips password and refresh token material from the user.
func (u User) Public() PublicProfile {
	history := u.WatchHistory
	if history == nil {
		history = []uuid.UUID{}
	}

	return PublicProfile{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		WatchHistory: history,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Identity returns the claims carried by an access token for this user.
func (u User) Identity() Identity {
	return Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
	}
}
