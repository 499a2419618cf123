package store

import (
	"context"
	"fmt"
	"time"

	"talk-corpus/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds the connection settings for the Mongo mirror
type MongoConfig struct {
	URI               string
	Database          string
	TalksCollection   string
	SkippedCollection string
}

// MongoStore mirrors accepted and skipped talks into MongoDB, keyed by talk_id
type MongoStore struct {
	mongoClient *mongo.Client
	talks       *mongo.Collection
	skipped     *mongo.Collection
}

// NewMongoStore connects and verifies the connection
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo URI is required")
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	database := mongoClient.Database(cfg.Database)
	return &MongoStore{
		mongoClient: mongoClient,
		talks:       database.Collection(cfg.TalksCollection),
		skipped:     database.Collection(cfg.SkippedCollection),
	}, nil
}

// Close closes the MongoDB connection
func (s *MongoStore) Close(ctx context.Context) error {
	if s.mongoClient == nil {
		return nil
	}
	return s.mongoClient.Disconnect(ctx)
}

// SaveTalk upserts an accepted talk
func (s *MongoStore) SaveTalk(ctx context.Context, talk *domain.TalkRecord) error {
	return upsertByTalkID(ctx, s.talks, talk.TalkID, talk)
}

// SaveSkipped upserts a skipped talk
func (s *MongoStore) SaveSkipped(ctx context.Context, skipped *domain.SkippedTalk) error {
	return upsertByTalkID(ctx, s.skipped, skipped.TalkID, skipped)
}

func upsertByTalkID(ctx context.Context, collection *mongo.Collection, talkID string, doc any) error {
	if collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{"talk_id": talkID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert talk %s: %w", talkID, err)
	}
	return nil
}
