package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildSyevdDescriptor returns the workspace byte size and the packed
// descriptor for a direct symmetric (Hermitian, for the complex kinds)
// eigendecomposition of order n. Eigenvectors are always computed.
func BuildSyevdDescriptor(dt DType, lower bool, b, n int) (int64, []byte, error) {
	const op = "syevd"
	key := fmt.Sprintf("%s/%s/lower=%v/b=%d/n=%d", op, dt, lower, b, n)
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

	uplo := fillMode(lower)
	lwork, err := syevdQueries[kind](be.Lib, bh.Handle(), accel.EigModeVector, uplo, n, n)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(SyevdDescriptor{
		Kind:  kind,
		Uplo:  uplo,
		Batch: int32(b),
		N:     int32(n),
		Lwork: int32(lwork),
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
