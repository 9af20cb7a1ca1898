package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

var (
	cudaCaps = accel.Capabilities{SparseQR: true, JacobiSVD: true}
	rocmCaps = accel.Capabilities{NativeBatchedPotrf: true}
)

// useTestBackend installs a fresh simulated backend for the duration of the
// test and disables any build cache left over from other tests.
func useTestBackend(t *testing.T, lib accel.Library, caps accel.Capabilities) *accel.Backend {
	t.Helper()
	SetCache(nil)
	be := &accel.Backend{Name: "test", Lib: lib, Caps: caps}
	accel.Use(be)
	t.Cleanup(func() {
		accel.Shutdown()
		SetCache(nil)
	})
	return be
}

var f64 = DType{Kind: 'f', Size: 8}

func TestBuildPotrfDescriptor_Single(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	size, blob, err := BuildPotrfDescriptor(f64, true, 1, 128)
	require.NoError(t, err)
	assert.Positive(t, size)

	d, err := UnpackDescriptor[PotrfDescriptor](blob)
	require.NoError(t, err)
	assert.Equal(t, F64, d.Kind)
	assert.Equal(t, accel.FillModeLower, d.Uplo)
	assert.Equal(t, int32(1), d.Batch)
	assert.Equal(t, int32(128), d.N)
	assert.Equal(t, size, int64(d.Lwork)*d.Kind.Size())
}

func TestBuildPotrfDescriptor_BatchedPointerArray(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	// Without a native batched query the workspace is exactly the pointer
	// array, regardless of matrix order.
	for _, n := range []int{8, 512, 4096} {
		size, blob, err := BuildPotrfDescriptor(f64, false, 7, n)
		require.NoError(t, err)
		assert.Equal(t, int64(7)*accel.PointerSize, size, "n=%d", n)

		d, err := UnpackDescriptor[PotrfDescriptor](blob)
		require.NoError(t, err)
		assert.Equal(t, int32(0), d.Lwork)
		assert.Equal(t, accel.FillModeUpper, d.Uplo)
	}
}

func TestBuildPotrfDescriptor_BatchedNativeQuery(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), rocmCaps)

	size, blob, err := BuildPotrfDescriptor(f64, true, 7, 64)
	require.NoError(t, err)

	d, err := UnpackDescriptor[PotrfDescriptor](blob)
	require.NoError(t, err)
	assert.Positive(t, d.Lwork)
	assert.Equal(t, int64(d.Lwork)*d.Kind.Size()+7*accel.PointerSize, size)
}

func TestBuildGetrfDescriptor(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	size, blob, err := BuildGetrfDescriptor(DType{'c', 8}, 4, 64, 32)
	require.NoError(t, err)
	assert.Positive(t, size)

	d, err := UnpackDescriptor[GetrfDescriptor](blob)
	require.NoError(t, err)
	assert.Equal(t, C64, d.Kind)
	assert.Equal(t, int32(4), d.Batch)
	assert.Equal(t, int32(64), d.M)
	assert.Equal(t, int32(32), d.N)
}

func TestBuildGetrfDescriptor_BatchNotSizeRelevant(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	one, _, err := BuildGetrfDescriptor(f64, 1, 64, 64)
	require.NoError(t, err)
	many, _, err := BuildGetrfDescriptor(f64, 32, 64, 64)
	require.NoError(t, err)
	assert.Equal(t, one, many)
}

func TestBuildersAreDeterministic(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	s1, b1, err := BuildGeqrfDescriptor(f64, 2, 96, 48)
	require.NoError(t, err)
	s2, b2, err := BuildGeqrfDescriptor(f64, 2, 96, 48)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)
}

func TestWorkspaceMonotoneInOrder(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	builders := map[string]func(n int) (int64, []byte, error){
		"potrf": func(n int) (int64, []byte, error) { return BuildPotrfDescriptor(f64, true, 1, n) },
		"geqrf": func(n int) (int64, []byte, error) { return BuildGeqrfDescriptor(f64, 1, n, n) },
		"syevd": func(n int) (int64, []byte, error) { return BuildSyevdDescriptor(f64, true, 1, n) },
		"sytrd": func(n int) (int64, []byte, error) { return BuildSytrdDescriptor(f64, true, 1, n) },
		"gesvd": func(n int) (int64, []byte, error) {
			return BuildGesvdDescriptor(f64, 1, n, n, true, false)
		},
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			var prev int64
			for _, n := range []int{4, 16, 64, 256} {
				size, _, err := build(n)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, size, prev, "n=%d", n)
				prev = size
			}
		})
	}
}

func TestBuildOrgqrDescriptor(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	for _, dt := range []DType{{'f', 4}, {'c', 16}} {
		size, blob, err := BuildOrgqrDescriptor(dt, 1, 64, 32, 32)
		require.NoError(t, err, "dtype %s", dt)
		assert.Positive(t, size)

		d, err := UnpackDescriptor[OrgqrDescriptor](blob)
		require.NoError(t, err)
		assert.Equal(t, int32(32), d.K)
	}
}

func TestBuildSyevjDescriptor_ReleasesParams(t *testing.T) {
	lib := accel.NewSimLibrary()
	useTestBackend(t, lib, cudaCaps)

	t.Run("single", func(t *testing.T) {
		size, blob, err := BuildSyevjDescriptor(f64, true, 1, 16)
		require.NoError(t, err)
		assert.Positive(t, size)
		d, err := UnpackDescriptor[SyevjDescriptor](blob)
		require.NoError(t, err)
		assert.Equal(t, int32(1), d.Batch)
	})

	t.Run("batched", func(t *testing.T) {
		size, blob, err := BuildSyevjDescriptor(f64, true, 16, 16)
		require.NoError(t, err)
		assert.Positive(t, size)
		d, err := UnpackDescriptor[SyevjDescriptor](blob)
		require.NoError(t, err)
		assert.Equal(t, int32(16), d.Batch)
	})

	assert.Equal(t, int64(0), lib.LiveSyevjParams())
}

func TestBuildGesvdDescriptor_JobFlags(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	cases := []struct {
		name         string
		computeUV    bool
		fullMatrices bool
		want         byte
	}{
		{"values only", false, false, 'N'},
		{"economy", true, false, 'S'},
		{"full", true, true, 'A'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			size, blob, err := BuildGesvdDescriptor(f64, 1, 64, 32, tc.computeUV, tc.fullMatrices)
			require.NoError(t, err)
			assert.Positive(t, size, "singular-value-only computation still needs scratch")

			d, err := UnpackDescriptor[GesvdDescriptor](blob)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.JobU)
			assert.Equal(t, tc.want, d.JobVT)
		})
	}
}

func TestBuildGesvdjDescriptor(t *testing.T) {
	lib := accel.NewSimLibrary()
	useTestBackend(t, lib, cudaCaps)

	size, blob, err := BuildGesvdjDescriptor(f64, 8, 24, 24, true, 1)
	require.NoError(t, err)
	assert.Positive(t, size)

	d, err := UnpackDescriptor[GesvdjDescriptor](blob)
	require.NoError(t, err)
	assert.Equal(t, accel.EigModeVector, d.Jobz)
	assert.Equal(t, int32(8), d.Batch)
	assert.Equal(t, int64(0), lib.LiveGesvdjParams())
}

func TestBuildGesvdjDescriptor_NotSupported(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), rocmCaps)

	_, _, err := BuildGesvdjDescriptor(f64, 1, 16, 16, true, 1)
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestBuildCsrlsvqrDescriptor(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	blob, err := BuildCsrlsvqrDescriptor(f64, 1000, 4200, 2, 1e-10)
	require.NoError(t, err)

	d, err := UnpackDescriptor[CsrlsvqrDescriptor](blob)
	require.NoError(t, err)
	assert.Equal(t, int32(1000), d.N)
	assert.Equal(t, int32(4200), d.Nnz)
	assert.Equal(t, int32(2), d.Reorder)
	assert.Equal(t, 1e-10, d.Tol)
}

func TestBuildCsrlsvqrDescriptor_NotSupported(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), rocmCaps)

	_, err := BuildCsrlsvqrDescriptor(f64, 100, 500, 0, 1e-12)
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestBuildSytrdDescriptor_RecordsOrderTwice(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	_, blob, err := BuildSytrdDescriptor(DType{'c', 16}, false, 3, 40)
	require.NoError(t, err)

	d, err := UnpackDescriptor[SytrdDescriptor](blob)
	require.NoError(t, err)
	assert.Equal(t, C128, d.Kind)
	assert.Equal(t, int32(40), d.N)
	assert.Equal(t, int32(40), d.Lda)
}

func TestBuilders_UnsupportedDType(t *testing.T) {
	useTestBackend(t, accel.NewSimLibrary(), cudaCaps)

	bad := DType{Kind: 'i', Size: 4}
	_, _, err := BuildPotrfDescriptor(bad, true, 1, 8)
	var ue *UnsupportedDTypeError
	require.ErrorAs(t, err, &ue)

	_, _, err = BuildGesvdDescriptor(bad, 1, 8, 8, true, false)
	require.ErrorAs(t, err, &ue)
}
