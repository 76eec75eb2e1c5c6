package mongo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// SnapshotStore maps the snapshot onto the users and fiches collections.
// Update is serialized within this process only; two processes sharing a
// database can still overwrite each other.
type SnapshotStore struct {
	db     *mongo.Database
	users  *UserRepository
	fiches *FicheRepository

	mu sync.Mutex
}

func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{
		db:     db,
		users:  NewUserRepository(db),
		fiches: NewFicheRepository(db),
	}
}

// EnsureIndexes creates the indexes of both collections.
func (s *SnapshotStore) EnsureIndexes(ctx context.Context) error {
	if err := s.users.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.fiches.EnsureIndexes(ctx)
}

func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	fiches, err := s.fiches.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{Users: users, Fiches: fiches}, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, snap)
}

func (s *SnapshotStore) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.save(ctx, snap)
}

// Ping reports whether the database answers.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *SnapshotStore) save(ctx context.Context, snap *domain.Snapshot) error {
	if err := s.users.ReplaceAll(ctx, snap.Users); err != nil {
		return err
	}
	return s.fiches.ReplaceAll(ctx, snap.Fiches)
}
