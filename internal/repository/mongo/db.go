package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connect can succeed against an unresponsive server.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// IndexBuilders returns, per collection, the function that creates its
// indexes. main runs them concurrently at startup.
func IndexBuilders(db *mongo.Database) map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		userCollectionName: func(ctx context.Context) error { return EnsureUserIndexes(ctx, db.Collection(userCollectionName)) },
		planCollectionName: func(ctx context.Context) error { return EnsurePlanIndexes(ctx, db.Collection(planCollectionName)) },
		chatCollectionName: func(ctx context.Context) error { return EnsureChatIndexes(ctx, db.Collection(chatCollectionName)) },
	}
}
