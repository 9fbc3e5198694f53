package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/model"
)

var _ model.SubscriptionStore = (*SubscriptionRepository)(nil)

type SubscriptionRepository struct {
	db *Connection
}

func NewSubscriptionRepository(db *Connection) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`
	if err := r.db.QueryRow(ctx, query, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) CountSubscriptions(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`
	if err := r.db.QueryRow(ctx, query, subscriberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)`
	if err := r.db.QueryRow(ctx, query, subscriberID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return exists, nil
}
