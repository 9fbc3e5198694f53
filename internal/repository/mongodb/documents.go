package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/model"
)

// Identifiers are stored as canonical UUID strings.

type userDocument struct {
	ID               string    `bson:"_id"`
	Username         string    `bson:"username"`
	Email            string    `bson:"email"`
	FullName         string    `bson:"fullname"`
	Password         string    `bson:"password"`
	Avatar           string    `bson:"avatar"`
	CoverImage       string    `bson:"coverImage"`
	RefreshTokenHash []byte    `bson:"refreshTokenHash,omitempty"`
	WatchHistory     []string  `bson:"watchHistory"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

type videoDocument struct {
	ID          string    `bson:"_id"`
	VideoFile   string    `bson:"videoFile"`
	Thumbnail   string    `bson:"thumbnail"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Duration    float64   `bson:"duration"`
	Views       int64     `bson:"views"`
	IsPublished bool      `bson:"isPublished"`
	Owner       string    `bson:"owner"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newUserDocument(u model.User) userDocument {
	return userDocument{
		ID:               u.ID.String(),
		Username:         u.Username,
		Email:            u.Email,
		FullName:         u.FullName,
		Password:         u.PasswordHash,
		Avatar:           u.Avatar,
		CoverImage:       u.CoverImage,
		RefreshTokenHash: u.RefreshTokenHash,
		WatchHistory:     idStrings(u.WatchHistory),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d userDocument) toModel() (model.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("invalid user id %q: %w", d.ID, err)
	}

	history, err := parseIDs(d.WatchHistory)
	if err != nil {
		return model.User{}, fmt.Errorf("invalid watch history of user %s: %w", d.ID, err)
	}

	return model.User{
		ID:               id,
		Username:         d.Username,
		Email:            d.Email,
		FullName:         d.FullName,
		PasswordHash:     d.Password,
		Avatar:           d.Avatar,
		CoverImage:       d.CoverImage,
		RefreshTokenHash: d.RefreshTokenHash,
		WatchHistory:     history,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

func (d videoDocument) toModel() (model.Video, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.Video{}, fmt.Errorf("invalid video id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return model.Video{}, fmt.Errorf("invalid owner of video %s: %w", d.ID, err)
	}

	return model.Video{
		ID:          id,
		VideoFile:   d.VideoFile,
		Thumbnail:   d.Thumbnail,
		Title:       d.Title,
		Description: d.Description,
		Duration:    d.Duration,
		Views:       d.Views,
		IsPublished: d.IsPublished,
		OwnerID:     owner,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func parseIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
