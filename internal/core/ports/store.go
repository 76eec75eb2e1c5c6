package ports

import (
	"context"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// Store persists the whole snapshot of users and fiches.
//
// Load returns a deep copy: mutating it has no effect until it is passed to
// Save or returned from an Update callback. Save replaces the stored state
// wholesale, so two callers doing Load/modify/Save concurrently lose one of
// the writes. Update runs fn on a fresh copy and persists the result while
// holding the store's write lock, which removes that race for callers that
// use it.
type Store interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
	Update(ctx context.Context, fn func(snap *domain.Snapshot) error) error
}

// Pinger is implemented by stores backed by a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
