package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("disk full")
	err := store.ErrNotFound.WithCause(cause)

	assert.Contains(t, err.Error(), "record not found")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("quote q1: %w", store.ErrNotFound.WithMessage("quote not found"))

	assert.True(t, errors.Is(wrapped, store.ErrNotFound))
	assert.False(t, errors.Is(wrapped, store.ErrAlreadyExists))
}

func TestError_HTTPCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, store.ErrNotFound.HTTPCode())
	assert.Equal(t, http.StatusConflict, store.ErrAlreadyExists.HTTPCode())
	assert.Equal(t, http.StatusBadRequest, store.ErrInvalidInput.HTTPCode())
}
