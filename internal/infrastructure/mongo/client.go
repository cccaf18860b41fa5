// Package mongo constructs the MongoDB client from the environment.
package mongo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DatabaseName is the document database holding all monitor collections.
const DatabaseName = "trading_monitor"

// NewMongoClient connects to the MongoDB deployment named by MONGODB_URI and
// verifies the connection with a ping.
func NewMongoClient() (*mongo.Client, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		slog.Error("MongoDB connection failed", "error", err)
		return nil, err
	}

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("MongoDB ping failed", "error", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("MongoDB connection successful")
	return client, nil
}
