package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeTransformer(t *testing.T) {
	coded := &APIError{
		Code:    "VALIDATION",
		Message: "content is required",
		Details: []string{"content"},
	}

	tests := []struct {
		name    string
		status  string
		input   any
		success bool
		wantErr string
		code    string
	}{
		{name: "quote payload", status: "200", input: map[string]string{"id": "qt_1"}, success: true},
		{name: "created", status: "201", input: map[string]int{"likes_count": 0}, success: true},
		{name: "empty body", status: "204", input: nil, success: true},
		{name: "plain error", status: "500", input: errors.New("disk full"), wantErr: "disk full"},
		{name: "coded error", status: "400", input: coded, wantErr: "content is required", code: "VALIDATION"},
		{name: "wrapped coded error", status: "400", input: fmt.Errorf("create quote: %w", coded), wantErr: "content is required", code: "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			raw, err := json.Marshal(result)
			require.NoError(t, err)

			var env map[string]any
			require.NoError(t, json.Unmarshal(raw, &env))

			assert.InDelta(t, EnvelopeVersion, env["v"], 0)
			assert.Equal(t, tt.success, env["success"])
			if tt.success {
				assert.NotContains(t, env, "error")
				return
			}
			assert.Equal(t, tt.wantErr, env["error"])
			if tt.code != "" {
				assert.Equal(t, tt.code, env["code"])
				assert.Equal(t, tt.wantErr, env["message"])
				assert.Equal(t, []any{"content"}, env["details"])
			} else {
				assert.NotContains(t, env, "code")
			}
		})
	}
}

func TestEnvelope_HandlerSuccessAndError(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	ok := decode[CategoryListResponse](t, resp.Body.Bytes())
	assert.Equal(t, EnvelopeVersion, ok.V)
	assert.True(t, ok.Success)
	assert.NotNil(t, ok.Data.Categories)

	resp = ts.api.Get("/api/v1/quotes/missing")
	require.Equal(t, http.StatusNotFound, resp.Code)

	failed := decode[any](t, resp.Body.Bytes())
	assert.Equal(t, EnvelopeVersion, failed.V)
	assert.False(t, failed.Success)
	assert.Equal(t, "NOT_FOUND", failed.Code)
	assert.NotEmpty(t, failed.Message)
}

func TestEnvelope_UnauthenticatedIsCoded(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/me")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
	assert.Equal(t, "Authentication required", env.Message)
}
