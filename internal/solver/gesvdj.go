package solver

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildGesvdjDescriptor returns the workspace byte size and the packed
// descriptor for a Jacobi singular value decomposition. Only the Jacobi-
// capable back-end supports it. econ selects economy-size factors; the
// batched entry point has no economy parameter, so econ only reaches the
// single-matrix query.
//
// Like syevj, the query needs a scoped algorithm-parameter object destroyed
// on every exit path.
func BuildGesvdjDescriptor(dt DType, batch, m, n int, computeUV bool, econ int) (int64, []byte, error) {
	const op = "gesvdj"
	if !accel.Current().Caps.JacobiSVD {
		return 0, nil, buildFailed(op, ErrNotSupported)
	}
	key := fmt.Sprintf("%s/%s/b=%d/m=%d/n=%d/uv=%v/econ=%d", op, dt, batch, m, n, computeUV, econ)
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

	params, err := be.Lib.CreateGesvdjParams()
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}
	defer func() {
		if derr := be.Lib.DestroyGesvdjParams(params); derr != nil {
			log.Warn().Err(derr).Msg("Failed to destroy gesvdj parameter object")
		}
	}()

	jobz := accel.EigModeNoVector
	if computeUV {
		jobz = accel.EigModeVector
	}
	var lwork int
	if batch == 1 {
		lwork, err = gesvdjQueries[kind](be.Lib, bh.Handle(), jobz, econ, m, n, m, m, n, params)
	} else {
		lwork, err = gesvdjBatchedQueries[kind](be.Lib, bh.Handle(), jobz, m, n, m, m, n, params, batch)
	}
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(GesvdjDescriptor{
		Kind:  kind,
		Batch: int32(batch),
		M:     int32(m),
		N:     int32(n),
		Lwork: int32(lwork),
		Jobz:  jobz,
		Econ:  int32(econ),
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
