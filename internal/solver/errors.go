package solver

import "errors"

var (
	// ErrNotSupported is returned when a builder's operation does not exist
	// on the active backend (sparse QR and Jacobi SVD are single-vendor).
	ErrNotSupported = errors.New("solver: operation not supported by active backend")

	// ErrNoExecutor is returned by a kernel when no execution layer has
	// been installed via SetExecutor.
	ErrNoExecutor = errors.New("solver: no executor installed")

	// ErrWorkspaceTooSmall is returned by a kernel whose caller supplied a
	// scratch buffer smaller than the descriptor requires.
	ErrWorkspaceTooSmall = errors.New("solver: workspace buffer too small")
)
