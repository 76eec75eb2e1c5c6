package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fichedesk/dashboard/internal/core/ports"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Liveness(t *testing.T) {
	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/health", "", nil)

	require.NoError(t, NewHealthHandler(nil).Liveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("no dependencies", func(t *testing.T) {
		c, rec := newContext(newEcho(), http.MethodGet, "/health/ready", "", nil)
		require.NoError(t, NewHealthHandler(nil).Readiness(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("all up", func(t *testing.T) {
		c, rec := newContext(newEcho(), http.MethodGet, "/health/ready", "", nil)
		require.NoError(t, NewHealthHandler(map[string]ports.Pinger{"redis": ok}).Readiness(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","dependencies":[{"name":"redis","status":"ok"}]}`, rec.Body.String())
	})

	t.Run("one down", func(t *testing.T) {
		c, rec := newContext(newEcho(), http.MethodGet, "/health/ready", "", nil)
		require.NoError(t, NewHealthHandler(map[string]ports.Pinger{"redis": ok, "mongodb": down}).Readiness(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"degraded","dependencies":[
			{"name":"mongodb","status":"unhealthy","error":"connection refused"},
			{"name":"redis","status":"ok"}
		]}`, rec.Body.String())
	})
}
