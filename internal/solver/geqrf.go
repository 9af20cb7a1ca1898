package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildGeqrfDescriptor returns the workspace byte size and the packed
// descriptor for a QR factorization of b matrices of shape m x n.
func BuildGeqrfDescriptor(dt DType, b, m, n int) (int64, []byte, error) {
	const op = "geqrf"
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

	lwork, err := geqrfQueries[kind](be.Lib, bh.Handle(), m, n, m)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(GeqrfDescriptor{
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
