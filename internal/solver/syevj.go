package solver

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildSyevjDescriptor returns the workspace byte size and the packed
// descriptor for a Jacobi symmetric (Hermitian) eigendecomposition.
// The batched entry points support matrices of order at most 32.
//
// The query needs a vendor algorithm-parameter object scoped to this call;
// it is destroyed on every exit path, error paths included.
func BuildSyevjDescriptor(dt DType, lower bool, batch, n int) (int64, []byte, error) {
	const op = "syevj"
	key := fmt.Sprintf("%s/%s/lower=%v/b=%d/n=%d", op, dt, lower, batch, n)
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

	params, err := be.Lib.CreateSyevjParams()
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}
	defer func() {
		if derr := be.Lib.DestroySyevjParams(params); derr != nil {
			log.Warn().Err(derr).Msg("Failed to destroy syevj parameter object")
		}
	}()

	uplo := fillMode(lower)
	var lwork int
	if batch == 1 {
		lwork, err = syevjQueries[kind](be.Lib, bh.Handle(), accel.EigModeVector, uplo, n, n, params)
	} else {
		lwork, err = syevjBatchedQueries[kind](be.Lib, bh.Handle(), accel.EigModeVector, uplo, n, n, params, batch)
	}
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(SyevjDescriptor{
		Kind:  kind,
		Uplo:  uplo,
		Batch: int32(batch),
		N:     int32(n),
		Lwork: int32(lwork),
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
