package ops

import (
	"errors"
	"fmt"

	"db-bridge/internal/pool"
)

// Error taxonomy. Every operation resolves into one of these categories (or
// pool.ErrClosed) before crossing the transport boundary.
var (
	// ErrValidation marks missing or malformed arguments; the operation was
	// not attempted.
	ErrValidation = errors.New("validation failed")
	// ErrUnsafeQuery marks a rejected free-form query or a confirmation
	// phrase mismatch; the operation was not attempted.
	ErrUnsafeQuery = errors.New("unsafe operation rejected")
	// ErrNotFound marks an absent table or column where the caller expected
	// one to exist.
	ErrNotFound = errors.New("not found")
)

func validationErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// execErr surfaces a driver failure as message text only; the driver's error
// value itself never crosses the boundary.
func execErr(err error) error {
	if errors.Is(err, pool.ErrClosed) {
		return err
	}
	return fmt.Errorf("execution failed: %s", err.Error())
}
