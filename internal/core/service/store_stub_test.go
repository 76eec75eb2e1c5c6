package service

import (
	"context"
	"sync"
	"time"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// memStore is an in-memory ports.Store with the same copy semantics as the
// real backends.
type memStore struct {
	mu      sync.Mutex
	snap    *domain.Snapshot
	loadErr error
	saves   int
}

func newMemStore(users []domain.User, fiches []domain.Fiche) *memStore {
	return &memStore{snap: (&domain.Snapshot{Users: users, Fiches: fiches}).Clone()}
}

func (m *memStore) Load(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snap.Clone(), nil
}

func (m *memStore) Save(_ context.Context, snap *domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	m.saves++
	return nil
}

func (m *memStore) Update(_ context.Context, fn func(*domain.Snapshot) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return m.loadErr
	}
	snap := m.snap.Clone()
	if err := fn(snap); err != nil {
		return err
	}
	m.snap = snap
	m.saves++
	return nil
}

func (m *memStore) fiche(id string) (domain.Fiche, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.snap.FicheIndex(id)
	if idx < 0 {
		return domain.Fiche{}, false
	}
	return m.snap.Fiches[idx].Clone(), true
}

func strPtr(s string) *string { return &s }

var (
	testAdmin    = domain.User{ID: "u1", Name: "Claire Admin", Email: "admin@fichedesk.local", Role: domain.RoleAdmin}
	testSophie   = domain.User{ID: "u2", Name: "Sophie Martin", Email: "sophie@fichedesk.local", Role: domain.RoleAdvisor}
	testLucas    = domain.User{ID: "u3", Name: "Lucas Bernard", Email: "lucas@fichedesk.local", Role: domain.RoleAdvisor}
	testUsers    = []domain.User{testAdmin, testSophie, testLucas}
	testBaseTime = time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
)

func newFiche(id, client string, advisor *string, status domain.FicheStatus, product domain.Product, created time.Time) domain.Fiche {
	return domain.Fiche{
		ID:         id,
		ClientName: client,
		Product:    product,
		Status:     status,
		AdvisorID:  advisor,
		Type:       "Standard",
		Garanties:  []string{"Base"},
		Prime:      300,
		CreatedAt:  created,
	}
}
