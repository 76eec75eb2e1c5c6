package ports

import (
	"context"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// UserService exposes the user directory.
type UserService interface {
	// ListAdvisors returns sanitized users with the ADVISOR role, in store order.
	ListAdvisors(ctx context.Context) ([]domain.User, error)
}
