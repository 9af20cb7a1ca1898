package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// svdJobChars derives the U and VT job characters from the caller's flags:
// full matrices -> 'A', economy -> 'S', values only -> 'N'. Both sides
// always get the same character.
func svdJobChars(computeUV, fullMatrices bool) (jobU, jobVT byte) {
	switch {
	case !computeUV:
		return 'N', 'N'
	case fullMatrices:
		return 'A', 'A'
	default:
		return 'S', 'S'
	}
}

// BuildGesvdDescriptor returns the workspace byte size and the packed
// descriptor for a direct singular value decomposition of b matrices of
// shape m x n.
func BuildGesvdDescriptor(dt DType, b, m, n int, computeUV, fullMatrices bool) (int64, []byte, error) {
	const op = "gesvd"
	key := fmt.Sprintf("%s/%s/b=%d/m=%d/n=%d/uv=%v/full=%v", op, dt, b, m, n, computeUV, fullMatrices)
	if r, ok := cacheGet(key); ok {
		return r.WorkspaceSize, r.Descriptor, nil
	}

	kind, err := ResolveElementKind(dt)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}
	be := accel.Current()
	bh, err := be.Pool.Borrow()
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}
	defer bh.Release()

	jobU, jobVT := svdJobChars(computeUV, fullMatrices)
	lwork, err := gesvdQueries[kind](be.Lib, bh.Handle(), jobU, jobVT, m, n)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(GesvdDescriptor{
		Kind:  kind,
		Batch: int32(b),
		M:     int32(m),
		N:     int32(n),
		Lwork: int32(lwork),
		JobU:  jobU,
		JobVT: jobVT,
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
