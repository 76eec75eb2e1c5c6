package service

import (
	"context"
	"fmt"

	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

type UserService struct {
	store ports.Store
}

func NewUserService(store ports.Store) *UserService {
	return &UserService{store: store}
}

// ListAdvisors returns the users a fiche can be assigned to.
func (s *UserService) ListAdvisors(ctx context.Context) ([]domain.User, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list advisors: %w", err)
	}

	advisors := make([]domain.User, 0, len(snap.Users))
	for _, u := range snap.Users {
		if u.IsAdvisor() {
			advisors = append(advisors, u.Sanitized())
		}
	}
	return advisors, nil
}
