package repos

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patharwalay/internal/config"
)

const connectAttempts = 3

// Open connects to MongoDB with a bounded retry (exponential backoff:
// 500ms, 1s, 2s) and ensures the catalog indexes exist.
func Open(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is not set")
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(cfg.MongoPoolSize)).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(45 * time.Second)

	var client *mongo.Client
	var err error
	backoff := 500 * time.Millisecond
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, nil)
			if err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}
		log.Printf("[mongo] connect attempt %d failed: %v", attempt, err)
		if attempt == connectAttempts {
			return nil, err
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}

	db := client.Database(cfg.MongoDB)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}
