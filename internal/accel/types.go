// Package accel is the binding layer for the vendor GPU solver library.
// It exposes the size-query surface of the library behind the Library
// interface, the two vendor personalities behind Backend, and a process-wide
// pool of solver session handles.
package accel

// PointerSize is the width of a device pointer in bytes. The batched
// Cholesky path on the pointer-array back-end sizes its workspace as an
// array of per-matrix device pointers.
const PointerSize = 8

// Handle is an opaque solver session object. Handles are created by a
// Library, pooled by HandlePool, and borrowed transiently for the duration
// of a size query. A Handle is never embedded into a descriptor.
type Handle interface {
	// ID identifies the handle within its library, for logging.
	ID() uint64
}

// SyevjParams is an opaque algorithm-parameter object for the Jacobi
// eigendecomposition entry points. Scoped to a single builder call.
type SyevjParams interface{ syevjParams() }

// GesvdjParams is an opaque algorithm-parameter object for the Jacobi SVD
// entry points. Scoped to a single builder call.
type GesvdjParams interface{ gesvdjParams() }

// FillMode selects which triangle of a symmetric/Hermitian matrix is stored.
type FillMode int32

const (
	FillModeLower FillMode = iota
	FillModeUpper
)

func (f FillMode) String() string {
	switch f {
	case FillModeLower:
		return "lower"
	case FillModeUpper:
		return "upper"
	default:
		return "unknown"
	}
}

// EigMode selects whether eigenvectors (or singular vectors, for the Jacobi
// SVD) are computed alongside the values.
type EigMode int32

const (
	EigModeNoVector EigMode = iota
	EigModeVector
)

func (e EigMode) String() string {
	switch e {
	case EigModeNoVector:
		return "novector"
	case EigModeVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Status is a vendor solver status code. StatusSuccess is zero; the nonzero
// values mirror the vendor numbering for the cases this layer can surface.
type Status int32

const (
	StatusSuccess        Status = 0
	StatusNotInitialized Status = 1
	StatusAllocFailed    Status = 3
	StatusInvalidValue   Status = 7
	StatusInternalError  Status = 11
	StatusNotSupported   Status = 16
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotInitialized:
		return "not_initialized"
	case StatusAllocFailed:
		return "alloc_failed"
	case StatusInvalidValue:
		return "invalid_value"
	case StatusInternalError:
		return "internal_error"
	case StatusNotSupported:
		return "not_supported"
	default:
		return "unknown"
	}
}
