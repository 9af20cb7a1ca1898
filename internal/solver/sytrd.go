package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildSytrdDescriptor returns the workspace byte size and the packed
// descriptor for reducing b symmetric (Hermitian) matrices of order n to
// tridiagonal form.
func BuildSytrdDescriptor(dt DType, lower bool, b, n int) (int64, []byte, error) {
	const op = "sytrd"
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
	lwork, err := sytrdQueries[kind](be.Lib, bh.Handle(), uplo, n, n)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(SytrdDescriptor{
		Kind:  kind,
		Uplo:  uplo,
		Batch: int32(b),
		N:     int32(n),
		Lda:   int32(n),
		Lwork: int32(lwork),
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
