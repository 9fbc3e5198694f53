// Package mongodb implements the stores on top of MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dtroode/vidtube-server/internal/model"
)

const (
	usersCollection         = "users"
	videosCollection        = "videos"
	subscriptionsCollection = "subscriptions"

	disconnectTimeout = 5 * time.Second
)

type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ model.Pinger = (*Connection)(nil)

// NewConnection connects to uri, checks the primary is reachable and
// creates the indexes the stores rely on.
func NewConnection(ctx context.Context, uri, dbName string) (*Connection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	conn := &Connection{client: client, db: client.Database(dbName)}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	if err := conn.ensureIndexes(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return conn, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Connection) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *Connection) collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Connection) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		subscriptionsCollection: {
			{Keys: bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "channel", Value: 1}}},
		},
		videosCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := c.collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}

	return nil
}
