package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// The two vendor back-ends disagree on batched Cholesky sizing, so the
// batched path goes through a small sizer interface with one implementation
// per back-end, selected from the capability set rather than by
// conditionals in the builder.
type batchedCholeskySizer interface {
	workspace(lib accel.Library, h accel.Handle, kind ElementKind, uplo accel.FillMode, n, b int) (size int64, lwork int, err error)
}

// pointerArraySizer serves the back-end with no batched size query: the
// batched call allocates its factorization scratch internally and the
// caller-visible workspace is only the array of per-matrix device pointers.
type pointerArraySizer struct{}

func (pointerArraySizer) workspace(_ accel.Library, _ accel.Handle, _ ElementKind, _ accel.FillMode, _, b int) (int64, int, error) {
	return int64(b) * accel.PointerSize, 0, nil
}

// queriedBatchSizer serves the back-end with a native batched query; the
// pointer-array copy still has to be added on top of the queried scratch.
type queriedBatchSizer struct{}

func (queriedBatchSizer) workspace(lib accel.Library, h accel.Handle, kind ElementKind, uplo accel.FillMode, n, b int) (int64, int, error) {
	lwork, err := potrfBatchedQueries[kind](lib, h, uplo, n, n, b)
	if err != nil {
		return 0, 0, err
	}
	return int64(lwork)*kind.Size() + int64(b)*accel.PointerSize, lwork, nil
}

func batchedCholeskySizerFor(caps accel.Capabilities) batchedCholeskySizer {
	if caps.NativeBatchedPotrf {
		return queriedBatchSizer{}
	}
	return pointerArraySizer{}
}

// BuildPotrfDescriptor returns the workspace byte size and the packed
// descriptor for a Cholesky factorization of b matrices of order n.
func BuildPotrfDescriptor(dt DType, lower bool, b, n int) (int64, []byte, error) {
	const op = "potrf"
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
	var (
		size  int64
		lwork int
	)
	if b == 1 {
		lwork, err = potrfQueries[kind](be.Lib, bh.Handle(), uplo, n, n)
		if err != nil {
			return 0, nil, buildFailed(op, err)
		}
		size = int64(lwork) * kind.Size()
	} else {
		size, lwork, err = batchedCholeskySizerFor(be.Caps).workspace(be.Lib, bh.Handle(), kind, uplo, n, b)
		if err != nil {
			return 0, nil, buildFailed(op, err)
		}
	}

	blob := pack(PotrfDescriptor{
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
