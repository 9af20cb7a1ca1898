package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

func TestMapCache_ReturnsCopies(t *testing.T) {
	c := NewMapCache()
	c.Put("k", BuildResult{WorkspaceSize: 42, Descriptor: []byte{1, 2, 3}})

	got, ok := c.Get("k")
	require.True(t, ok)
	got.Descriptor[0] = 99

	again, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again.Descriptor)
	assert.Equal(t, 1, c.Size())
}

func TestBuildCacheShortCircuitsRepeatBuilds(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)
	cache := NewMapCache()
	SetCache(cache)

	s1, b1, err := BuildPotrfDescriptor(f64, true, 1, 128)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Size())

	s2, b2, err := BuildPotrfDescriptor(f64, true, 1, 128)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, 1, cache.Size())

	// Distinct shapes get distinct entries
	_, _, err = BuildPotrfDescriptor(f64, true, 1, 256)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Size())
}
