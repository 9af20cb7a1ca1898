package solver

import "sync"

// Builders are deterministic per (operation, dtype, shape, flags), so their
// results can be cached process-wide. The cache is optional; install one
// with SetCache to short-circuit repeat builds for hot shapes.

// BuildResult is a cached (workspace size, packed descriptor) pair.
type BuildResult struct {
	WorkspaceSize int64
	Descriptor    []byte
}

// BuildCache caches descriptor build results by key.
type BuildCache interface {
	Get(key string) (BuildResult, bool)
	Put(key string, r BuildResult)
	Size() int
}

// MapCache is a simple in-memory implementation of BuildCache.
type MapCache struct {
	data map[string]BuildResult
	mu   sync.RWMutex
}

func NewMapCache() *MapCache {
	return &MapCache{
		data: make(map[string]BuildResult),
	}
}

func (c *MapCache) Get(key string) (BuildResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Return a copy so callers cannot mutate the cached blob
	if r, ok := c.data[key]; ok {
		dst := make([]byte, len(r.Descriptor))
		copy(dst, r.Descriptor)
		return BuildResult{WorkspaceSize: r.WorkspaceSize, Descriptor: dst}, true
	}
	return BuildResult{}, false
}

func (c *MapCache) Put(key string, r BuildResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dst := make([]byte, len(r.Descriptor))
	copy(dst, r.Descriptor)
	c.data[key] = BuildResult{WorkspaceSize: r.WorkspaceSize, Descriptor: dst}
}

func (c *MapCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

var (
	cacheMu    sync.RWMutex
	buildCache BuildCache
)

// SetCache installs cache as the process-wide build cache. Passing nil
// disables caching.
func SetCache(cache BuildCache) {
	cacheMu.Lock()
	buildCache = cache
	cacheMu.Unlock()
}

func cacheGet(key string) (BuildResult, bool) {
	cacheMu.RLock()
	c := buildCache
	cacheMu.RUnlock()
	if c == nil {
		return BuildResult{}, false
	}
	r, ok := c.Get(key)
	if ok {
		cacheHits.Inc()
	} else {
		cacheMisses.Inc()
	}
	return r, ok
}

func cachePut(key string, size int64, descriptor []byte) {
	cacheMu.RLock()
	c := buildCache
	cacheMu.RUnlock()
	if c == nil {
		return
	}
	c.Put(key, BuildResult{WorkspaceSize: size, Descriptor: descriptor})
}
