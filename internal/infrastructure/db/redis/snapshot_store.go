package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

const (
	DefaultKey       = "fichedesk:snapshot"
	maxUpdateRetries = 10
)

// ErrConflict is returned when Update keeps losing the optimistic lock.
var ErrConflict = errors.New("snapshot changed concurrently, retries exhausted")

// SnapshotStore keeps the whole snapshot as one JSON value under a single key.
// Update uses WATCH/MULTI so read-modify-write cycles from several processes
// never overwrite each other.
type SnapshotStore struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

func NewSnapshotStore(client *redis.Client, key string, log zerolog.Logger) *SnapshotStore {
	if key == "" {
		key = DefaultKey
	}
	return &SnapshotStore{client: client, key: key, log: log}
}

// Load returns the stored snapshot, or an empty one if the key does not exist.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	return s.read(ctx, s.client)
}

// Save overwrites the stored snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap.Clone())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Update retries fn until its write commits without the key having changed
// in between. Errors from fn abort without writing.
func (s *SnapshotStore) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	txf := func(tx *redis.Tx) error {
		snap, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(snap); err != nil {
			return err
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			s.log.Debug().Int("attempt", attempt+1).Msg("snapshot changed during update, retrying")
			continue
		}
		return err
	}
	return ErrConflict
}

// Ping reports whether Redis is reachable.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *SnapshotStore) read(ctx context.Context, c getter) (*domain.Snapshot, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return (*domain.Snapshot)(nil).Clone(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap.Clone(), nil
}
