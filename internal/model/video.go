package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VideoStore defines read operations for videos.
type VideoStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Video, error)
}

// Video represents an uploaded video.
type Video struct {
	ID          uuid.UUID
	VideoFile   string
	Thumbnail   string
	Title       string
	Description string
	Duration    float64
	Views       int64
	IsPublished bool
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VideoOwner is the minimal owner projection attached to watch history entries.
type VideoOwner struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// WatchHistoryEntry is a watched video with its owner resolved.
type WatchHistoryEntry struct {
	ID          uuid.UUID   `json:"_id"`
	VideoFile   string      `json:"videoFile"`
	Thumbnail   string      `json:"thumbnail"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    float64     `json:"duration"`
	Views       int64       `json:"views"`
	IsPublished bool        `json:"isPublished"`
	Owner       *VideoOwner `json:"owner"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
