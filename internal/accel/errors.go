package accel

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBackend is returned when no solver backend is registered.
	ErrNoBackend = errors.New("accel: no backend registered")

	// ErrPoolClosed is returned by Borrow after the handle pool shut down.
	ErrPoolClosed = errors.New("accel: handle pool closed")

	// ErrPoolExhausted is returned when the pool reached its handle cap and
	// every handle is checked out.
	ErrPoolExhausted = errors.New("accel: handle pool exhausted")
)

// CallError reports a vendor solver call that returned a non-success status.
// It carries the failing entry point's name so the caller can tell which of
// the size-query or parameter-object calls went wrong. Never retried.
type CallError struct {
	Call   string
	Status Status
}

func (e *CallError) Error() string {
	return fmt.Sprintf("accel: %s failed: %s (%d)", e.Call, e.Status, int32(e.Status))
}

// IsCallError reports whether err wraps a CallError.
func IsCallError(err error) bool {
	var ce *CallError
	return errors.As(err, &ce)
}
