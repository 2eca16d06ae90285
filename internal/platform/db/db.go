package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"staffbook/internal/platform/config"
)

// Connect opens the shared client and verifies the deployment is reachable.
// The client is owned by the process entry point and injected into every
// store that needs it.
func Connect(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Employees returns the single collection the service works against.
func Employees(client *mongo.Client, cfg config.Config) *mongo.Collection {
	return client.Database(cfg.MongoDatabase).Collection("employees")
}
