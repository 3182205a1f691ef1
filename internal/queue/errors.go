package queue

import (
	"errors"
	"fmt"

	"careplus/internal/storage"
)

var (
	ErrClinicNotFound   = errors.New("clinic not found")
	ErrAlreadyQueued    = errors.New("patient already in queue")
	ErrEntryNotFound    = errors.New("queue entry not found")
	ErrInvalidState     = errors.New("invalid entry state")
	ErrNotFound         = errors.New("no active queue entry")
	ErrStoreUnavailable = errors.New("queue store unavailable")
)

func invalidState(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// storeError пропускает доменные ошибки, всё остальное (включая отмену
// контекста) оборачивает в ErrStoreUnavailable.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrClinicNotFound),
		errors.Is(err, ErrAlreadyQueued),
		errors.Is(err, ErrEntryNotFound),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func isMissing(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
