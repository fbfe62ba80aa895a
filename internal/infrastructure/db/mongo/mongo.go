package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// appName identifies this service in MongoDB server logs and currentOp.
	appName = "household-api"

	connectTimeout  = 10 * time.Second
	defaultDatabase = "household"
)

// Config holds the connection settings for the accounts database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// clientOptions builds the driver options for this service's connection.
func clientOptions(cfg Config, timeout time.Duration) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
}

// Connect dials MongoDB, verifies connectivity with a ping, and returns the
// client together with the accounts database. The database name falls back to
// defaultDatabase so a bare URI is enough for local development.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, clientOptions(cfg, timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongodb ping: %w", err)
	}

	name := cfg.Database
	if name == "" {
		name = defaultDatabase
	}
	return client, client.Database(name), nil
}
