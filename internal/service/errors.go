package service

import (
	"errors"
	"fmt"

	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

// mapStoreError translates storage sentinels into domain errors.
// entity names the record for the not-found message, e.g. "quote".
func mapStoreError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		msg := storeErr.Message
		if msg == store.ErrNotFound.Message {
			msg = entity + " not found"
		}
		return domainerrors.NotFound(msg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		msg := storeErr.Message
		if msg == store.ErrAlreadyExists.Message {
			msg = entity + " already exists"
		}
		return domainerrors.Conflict(msg).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation(storeErr.Message).WithCause(err)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}
