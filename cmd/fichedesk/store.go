package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fichedesk/dashboard/internal/core/ports"
	"github.com/fichedesk/dashboard/internal/infrastructure/db/file"
	mongostore "github.com/fichedesk/dashboard/internal/infrastructure/db/mongo"
	redisstore "github.com/fichedesk/dashboard/internal/infrastructure/db/redis"
	"github.com/fichedesk/dashboard/internal/pkg/config"
)

// openedStore is a store plus what the process must release on exit.
type openedStore struct {
	store  ports.Store
	probes map[string]ports.Pinger
	close  func(ctx context.Context) error
}

const storeCloseTimeout = 10 * time.Second

// release closes the store's connections, logging instead of failing since it
// runs on the way out.
func (o *openedStore) release(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
	defer cancel()
	if err := o.close(ctx); err != nil {
		log.Warn().Err(err).Msg("store close failed")
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*openedStore, error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		store, client, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		}, log.With().Str("component", "redis").Logger())
		if err != nil {
			return nil, err
		}
		return &openedStore{
			store:  store,
			probes: map[string]ports.Pinger{"redis": store},
			close:  func(context.Context) error { return client.Close() },
		}, nil

	case config.StoreMongo:
		store, client, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		}, log.With().Str("component", "mongo").Logger())
		if err != nil {
			return nil, err
		}
		return &openedStore{
			store:  store,
			probes: map[string]ports.Pinger{"mongodb": store},
			close:  client.Disconnect,
		}, nil

	case config.StoreFile:
		return &openedStore{
			store:  file.NewStore(cfg.Store.DataFile, log.With().Str("component", "file_store").Logger()),
			probes: map[string]ports.Pinger{},
			close:  func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
