package accel

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Capabilities describes what the active vendor personality can do. The two
// supported back-ends diverge on exactly these points.
type Capabilities struct {
	// NativeBatchedPotrf means the library has a batched Cholesky size
	// query. Without it, the batched Cholesky workspace is a pointer array
	// of length batch and the library sizes its own scratch internally.
	NativeBatchedPotrf bool

	// SparseQR means the sparse QR linear solve is available.
	SparseQR bool

	// JacobiSVD means the Jacobi SVD entry points are available.
	JacobiSVD bool
}

// Backend pairs a Library with the capability set of the vendor personality
// it represents, plus the process-wide handle pool drawing from it.
type Backend struct {
	Name string
	Lib  Library
	Caps Capabilities

	Pool *HandlePool
}

var (
	backendMu sync.RWMutex
	backend   *Backend
)

// Use installs b as the active backend, creating its handle pool if the
// caller did not. Passing nil clears the backend (used by tests).
func Use(b *Backend) {
	if b != nil && b.Pool == nil {
		b.Pool = NewHandlePool(b.Lib, 0)
	}
	backendMu.Lock()
	prev := backend
	backend = b
	backendMu.Unlock()
	if prev != nil && prev.Pool != nil {
		prev.Pool.Shutdown()
	}
	if b != nil {
		log.Debug().Str("backend", b.Name).Str("library", b.Lib.Name()).Msg("Solver backend installed")
	}
}

// Current returns the active backend, installing the build-configured
// default on first use.
func Current() *Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	if b != nil {
		return b
	}
	backendMu.Lock()
	if backend == nil {
		backend = defaultBackend()
		backend.Pool = NewHandlePool(backend.Lib, 0)
		log.Debug().Str("backend", backend.Name).Msg("Default solver backend installed")
	}
	b = backend
	backendMu.Unlock()
	return b
}

// Shutdown releases the active backend's pooled handles and clears it.
func Shutdown() {
	backendMu.Lock()
	b := backend
	backend = nil
	backendMu.Unlock()
	if b != nil && b.Pool != nil {
		b.Pool.Shutdown()
	}
}
