package ports

import (
	"context"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

type AuthService interface {
	// Login returns a signed session token and the session it encodes.
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	// ParseSession returns nil for a missing, malformed or expired token.
	ParseSession(token string) *domain.Session
}
