package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)

	for _, name := range []string{"database", "notifications", "search"} {
		require.Contains(t, env.Data.Components, name)
		assert.Equal(t, "healthy", env.Data.Components[name].Status, name)
	}
}

func TestHealthCheck_DegradedWithoutBackends(t *testing.T) {
	ts := setupTestServer(t)
	ts.backends = Backends{}

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "degraded", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["database"].Status)
	assert.Equal(t, "degraded", env.Data.Components["search"].Status)
}
