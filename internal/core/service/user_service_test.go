package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

func TestUserService_ListAdvisors(t *testing.T) {
	users := append([]domain.User(nil), testUsers...)
	users[1].PasswordHash = "$2a$04$hash"
	svc := NewUserService(newMemStore(users, nil))

	got, err := svc.ListAdvisors(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u2", got[0].ID)
	assert.Equal(t, "u3", got[1].ID)
	for _, u := range got {
		assert.Equal(t, domain.RoleAdvisor, u.Role)
		assert.Empty(t, u.PasswordHash)
	}
}
