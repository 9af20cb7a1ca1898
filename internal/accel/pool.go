package accel

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// HandlePool is a process-wide pool of solver session handles. Handles are
// created on demand through the pool's Library, handed out exclusively, and
// returned to a free list on release. Borrow and Release are safe for
// concurrent use; each borrow yields a distinct handle, so a goroutine that
// already holds one can borrow again without deadlocking.
type HandlePool struct {
	mu      sync.Mutex
	lib     Library
	free    []Handle
	created int
	max     int // 0 means unbounded
	inUse   int
	closed  bool
}

// NewHandlePool returns a pool drawing handles from lib. max caps the total
// number of live handles; zero means no cap.
func NewHandlePool(lib Library, max int) *HandlePool {
	return &HandlePool{lib: lib, max: max}
}

// A BorrowedHandle is an exclusively held solver handle. Release must be
// called on every exit path; it is idempotent.
type BorrowedHandle struct {
	h    Handle
	pool *HandlePool
	once sync.Once
}

// Handle returns the underlying session handle.
func (b *BorrowedHandle) Handle() Handle { return b.h }

// Release returns the handle to its pool. Safe to call more than once.
func (b *BorrowedHandle) Release() {
	b.once.Do(func() {
		b.pool.put(b.h)
	})
}

// Borrow checks a handle out of the pool, creating one if the free list is
// empty and the cap allows. Failure to supply a handle is not retried.
func (p *HandlePool) Borrow() (*BorrowedHandle, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		poolBorrowFailures.Inc()
		return nil, ErrPoolClosed
	}
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		p.inUse++
		p.mu.Unlock()
		poolBorrows.Inc()
		poolHandlesInUse.Inc()
		return &BorrowedHandle{h: h, pool: p}, nil
	}
	if p.max > 0 && p.created >= p.max {
		p.mu.Unlock()
		poolBorrowFailures.Inc()
		return nil, ErrPoolExhausted
	}
	p.created++
	p.inUse++
	p.mu.Unlock()

	h, err := p.lib.CreateHandle()
	if err != nil {
		p.mu.Lock()
		p.created--
		p.inUse--
		p.mu.Unlock()
		poolBorrowFailures.Inc()
		return nil, err
	}
	poolBorrows.Inc()
	poolHandlesCreated.Inc()
	poolHandlesInUse.Inc()
	return &BorrowedHandle{h: h, pool: p}, nil
}

func (p *HandlePool) put(h Handle) {
	p.mu.Lock()
	p.inUse--
	if p.closed {
		p.mu.Unlock()
		if err := p.lib.DestroyHandle(h); err != nil {
			log.Warn().Err(err).Msg("Failed to destroy handle returned to closed pool")
		}
		poolHandlesInUse.Dec()
		return
	}
	p.free = append(p.free, h)
	p.mu.Unlock()
	poolHandlesInUse.Dec()
}

// Available reports the number of idle handles in the pool.
func (p *HandlePool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// InUse reports the number of handles currently checked out.
func (p *HandlePool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// Shutdown destroys idle handles and marks the pool closed. Handles still
// checked out are destroyed as they are released.
func (p *HandlePool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	free := p.free
	p.free = nil
	p.mu.Unlock()

	for _, h := range free {
		if err := p.lib.DestroyHandle(h); err != nil {
			log.Warn().Err(err).Msg("Failed to destroy pooled handle during shutdown")
		}
	}
	log.Debug().Int("destroyed", len(free)).Msg("Handle pool shut down")
}
