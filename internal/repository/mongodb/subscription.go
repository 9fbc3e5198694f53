package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/vidtube-server/internal/model"
)

var _ model.SubscriptionStore = (*SubscriptionRepository)(nil)

type SubscriptionRepository struct {
	col *mongo.Collection
}

func NewSubscriptionRepository(conn *Connection) *SubscriptionRepository {
	return &SubscriptionRepository{col: conn.collection(subscriptionsCollection)}
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"channel": channelID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) CountSubscriptions(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"subscriber": subscriberID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	filter := bson.M{"subscriber": subscriberID.String(), "channel": channelID.String()}
	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}
