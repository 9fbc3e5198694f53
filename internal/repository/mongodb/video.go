package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dtroode/vidtube-server/internal/model"
)

var _ model.VideoStore = (*VideoRepository)(nil)

type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(conn *Connection) *VideoRepository {
	return &VideoRepository{col: conn.collection(videosCollection)}
}

func (r *VideoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Video, error) {
	if len(ids) == 0 {
		return []model.Video{}, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
	if err != nil {
		return nil, fmt.Errorf("failed to get videos by ids: %w", err)
	}

	var docs []videoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode videos: %w", err)
	}

	videos := make([]model.Video, 0, len(docs))
	for _, d := range docs {
		v, err := d.toModel()
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}

	return videos, nil
}
