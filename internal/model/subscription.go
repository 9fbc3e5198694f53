package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStore defines read operations over subscription edges.
type SubscriptionStore interface {
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

// Subscription is a directed edge from subscriber to channel.
type Subscription struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}

// ChannelProfile is a user viewed as a subscribable channel.
type ChannelProfile struct {
	FullName                  string `json:"fullname"`
	Username                  string `json:"username"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	Email                     string `json:"email"`
}
