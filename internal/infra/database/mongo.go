package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CharactersCollection holds characters and stones alike.
const CharactersCollection = "characters"

func NewMongo(uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10).
		SetMinPoolSize(1)
	return mongo.Connect(opts)
}

// ConnectMongo connects to uri and pings the primary under policy.
func ConnectMongo(ctx context.Context, uri string, policy RetryPolicy) (*mongo.Client, error) {
	return withRetry(ctx, "mongodb", policy, func() (*mongo.Client, error) {
		client, err := NewMongo(uri)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
		return client, nil
	})
}

// MigrateMongo creates the indexes the listings and the steal selection rely
// on. CreateMany is idempotent for identical index specs.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CharactersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "current_dimension", Value: 1}}},
	})
	return err
}
