package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/model"
)

var _ model.VideoStore = (*VideoRepository)(nil)

type VideoRepository struct {
	db *Connection
}

func NewVideoRepository(db *Connection) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Video, error) {
	if len(ids) == 0 {
		return []model.Video{}, nil
	}

	query := `SELECT id, video_file, thumbnail, title, description, duration, views, is_published,
				owner_id, created_at, updated_at
			  FROM videos WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos by ids: %w", err)
	}
	defer rows.Close()

	videos := make([]model.Video, 0, len(ids))
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(
			&v.ID, &v.VideoFile, &v.Thumbnail, &v.Title, &v.Description, &v.Duration, &v.Views,
			&v.IsPublished, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, nil
}
