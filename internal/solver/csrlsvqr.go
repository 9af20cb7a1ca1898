package solver

import (
	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildCsrlsvqrDescriptor returns the packed descriptor for a sparse QR
// linear solve of an order-n system with nnz structural nonzeros. The
// sparse solver sizes its own workspace at execution time, so there is no
// size query and no handle borrow; the descriptor is pure parameter
// capture. Only the sparse-capable back-end supports this operation.
func BuildCsrlsvqrDescriptor(dt DType, n, nnz, reorder int, tol float64) ([]byte, error) {
	const op = "csrlsvqr"
	if !accel.Current().Caps.SparseQR {
		return nil, buildFailed(op, ErrNotSupported)
	}
	kind, err := ResolveElementKind(dt)
	if err != nil {
		return nil, buildFailed(op, err)
	}
	blob := pack(CsrlsvqrDescriptor{
		Kind:    kind,
		N:       int32(n),
		Nnz:     int32(nnz),
		Reorder: int32(reorder),
		Tol:     tol,
	})
	buildOK(op)
	return blob, nil
}
