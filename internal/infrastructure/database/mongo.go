package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	IdentitiesCollection  = "identities"
	ProfilesCollection    = "profiles"
	CoursesCollection     = "courses"
	EnrollmentsCollection = "enrollments"
	TokensCollection      = "tokens"
)

type MongoDBClient struct {
	Client *mongo.Client
}

// NewMongoDBClient connects and pings the primary.
func NewMongoDBClient(uri string) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &MongoDBClient{Client: client}, nil
}

func (m *MongoDBClient) Disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the repositories rely on for idempotent inserts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		IdentitiesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		TokensCollection: {
			{Keys: bson.D{{Key: "verifier", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"verifier": bson.M{"$gt": ""}})},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "token_type", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		EnrollmentsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "course_id", Value: 1}}},
		},
		CoursesCollection: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "state", Value: 1}}},
			{Keys: bson.D{{Key: "state", Value: 1}, {Key: "published_at", Value: -1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
