package accel

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMetricValue(m prometheus.Metric) float64 {
	var metric dto.Metric
	m.Write(&metric)
	if metric.Counter != nil {
		return *metric.Counter.Value
	}
	if metric.Gauge != nil {
		return *metric.Gauge.Value
	}
	return 0
}

func TestHandlePool_BorrowRelease(t *testing.T) {
	lib := NewSimLibrary()
	pool := NewHandlePool(lib, 0)

	startBorrows := getMetricValue(poolBorrows)

	bh, err := pool.Borrow()
	require.NoError(t, err)
	require.NotNil(t, bh.Handle())
	assert.Equal(t, 1, pool.InUse())
	assert.Equal(t, 0, pool.Available())

	bh.Release()
	assert.Equal(t, 0, pool.InUse())
	assert.Equal(t, 1, pool.Available())

	// Release is idempotent
	bh.Release()
	assert.Equal(t, 0, pool.InUse())
	assert.Equal(t, 1, pool.Available())

	assert.Equal(t, float64(1), getMetricValue(poolBorrows)-startBorrows)

	// Borrowing again reuses the pooled handle
	bh2, err := pool.Borrow()
	require.NoError(t, err)
	bh2.Release()
	assert.Equal(t, int64(1), lib.LiveHandles())

	pool.Shutdown()
	assert.Equal(t, int64(0), lib.LiveHandles())
}

func TestHandlePool_Exhaustion(t *testing.T) {
	lib := NewSimLibrary()
	pool := NewHandlePool(lib, 1)
	defer pool.Shutdown()

	bh, err := pool.Borrow()
	require.NoError(t, err)

	_, err = pool.Borrow()
	require.ErrorIs(t, err, ErrPoolExhausted)

	bh.Release()
	bh2, err := pool.Borrow()
	require.NoError(t, err)
	bh2.Release()
}

func TestHandlePool_Closed(t *testing.T) {
	lib := NewSimLibrary()
	pool := NewHandlePool(lib, 0)

	bh, err := pool.Borrow()
	require.NoError(t, err)

	pool.Shutdown()
	_, err = pool.Borrow()
	require.ErrorIs(t, err, ErrPoolClosed)

	// A handle released after shutdown is destroyed, not pooled
	bh.Release()
	assert.Equal(t, 0, pool.Available())
	assert.Equal(t, int64(0), lib.LiveHandles())
}

func TestHandlePool_ConcurrentBorrowsAreExclusive(t *testing.T) {
	lib := NewSimLibrary()
	pool := NewHandlePool(lib, 0)
	defer pool.Shutdown()

	const workers = 16
	var mu sync.Mutex
	seen := make(map[uint64]int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				bh, err := pool.Borrow()
				if err != nil {
					t.Error(err)
					return
				}
				id := bh.Handle().ID()
				mu.Lock()
				seen[id]++
				if seen[id] > 1 {
					mu.Unlock()
					t.Errorf("handle %d borrowed concurrently", id)
					bh.Release()
					return
				}
				mu.Unlock()

				mu.Lock()
				seen[id]--
				mu.Unlock()
				bh.Release()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, pool.InUse())
}

func TestHandlePool_ReentrantBorrow(t *testing.T) {
	lib := NewSimLibrary()
	pool := NewHandlePool(lib, 0)
	defer pool.Shutdown()

	// A caller already holding a handle can borrow a second one without
	// deadlock; the two are distinct.
	a, err := pool.Borrow()
	require.NoError(t, err)
	b, err := pool.Borrow()
	require.NoError(t, err)
	assert.NotEqual(t, a.Handle().ID(), b.Handle().ID())
	b.Release()
	a.Release()
}
