package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	pingTimeout = 5 * time.Second
	// The snapshot is a single value read and rewritten whole; slow links
	// need more than go-redis' 3s default.
	ioTimeout = 10 * time.Second
)

// Config selects the Redis database and key holding the snapshot.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// Open returns a snapshot store backed by the Redis at cfg.Addr. It fails
// fast when the server does not answer a ping. The caller closes the client.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*SnapshotStore, *redis.Client, error) {
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.Addr, err)
	}

	store := NewSnapshotStore(client, cfg.Key, log)
	log.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Str("key", store.key).
		Msg("redis snapshot store ready")
	return store, client, nil
}
