package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig contains connection settings for the MongoDB score store.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // e.g. skyblob
	Collection string // e.g. scores
}

// MongoScoreStore implements ScoreStore on MongoDB backend.
// One document per key: {_id: key, value, updated_at}.
type MongoScoreStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type scoreDoc struct {
	Key       string    `bson:"_id"`
	Value     int64     `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoScoreStore establishes connection and returns the store.
func NewMongoScoreStore(ctx context.Context, cfg MongoConfig) (*MongoScoreStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "skyblob"
	}
	if cfg.Collection == "" {
		cfg.Collection = "scores"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoScoreStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get implements ScoreStore.
func (m *MongoScoreStore) Get(ctx context.Context, key string) (int64, bool, error) {
	var doc scoreDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return doc.Value, true, nil
}

// Set implements ScoreStore.
func (m *MongoScoreStore) Set(ctx context.Context, key string, value int64) error {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}}
	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

// Delete implements ScoreStore.
func (m *MongoScoreStore) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoScoreStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
