package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

func TestDescriptorRoundTrip(t *testing.T) {
	t.Run("potrf", func(t *testing.T) {
		d := PotrfDescriptor{Kind: F64, Uplo: accel.FillModeLower, Batch: 1, N: 128, Lwork: 8192}
		got, err := UnpackDescriptor[PotrfDescriptor](pack(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("gesvd carries job characters", func(t *testing.T) {
		d := GesvdDescriptor{Kind: C128, Batch: 4, M: 64, N: 32, Lwork: 900, JobU: 'S', JobVT: 'S'}
		got, err := UnpackDescriptor[GesvdDescriptor](pack(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("csrlsvqr carries tolerance", func(t *testing.T) {
		d := CsrlsvqrDescriptor{Kind: F32, N: 1000, Nnz: 4200, Reorder: 2, Tol: 1e-10}
		got, err := UnpackDescriptor[CsrlsvqrDescriptor](pack(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("sytrd records the order twice", func(t *testing.T) {
		d := SytrdDescriptor{Kind: C64, Uplo: accel.FillModeUpper, Batch: 2, N: 48, Lda: 48, Lwork: 96}
		got, err := UnpackDescriptor[SytrdDescriptor](pack(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
		assert.Equal(t, got.N, got.Lda)
	})
}

func TestPackIsDeterministic(t *testing.T) {
	d := SyevjDescriptor{Kind: F32, Uplo: accel.FillModeLower, Batch: 16, N: 32, Lwork: 4096}
	assert.Equal(t, pack(d), pack(d))
}

func TestUnpackRejectsGarbage(t *testing.T) {
	_, err := UnpackDescriptor[PotrfDescriptor]([]byte{0xff, 0x00, 0x13})
	require.Error(t, err)
}
