package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildGetrfDescriptor returns the workspace byte size and the packed
// descriptor for an LU factorization of b matrices of shape m x n. The
// batch count does not affect the scratch requirement; the query sees only
// the per-matrix shape.
func BuildGetrfDescriptor(dt DType, b, m, n int) (int64, []byte, error) {
	const op = "getrf"
	key := fmt.Sprintf("%s/%s/b=%d/m=%d/n=%d", op, dt, b, m, n)
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

	lwork, err := getrfQueries[kind](be.Lib, bh.Handle(), m, n, m)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(GetrfDescriptor{
		Kind:  kind,
		Batch: int32(b),
		M:     int32(m),
		N:     int32(n),
		Lwork: int32(lwork),
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
