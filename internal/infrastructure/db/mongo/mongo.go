package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

// Config captures the settings for the Mongo-backed snapshot store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Open connects, pings, ensures indexes and returns the snapshot store over
// cfg.Database. The caller disconnects the returned client.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*SnapshotStore, *mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	store := NewSnapshotStore(client.Database(cfg.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo index creation failed")
	}

	log.Info().Str("database", cfg.Database).Msg("mongo snapshot store ready")
	return store, client, nil
}
