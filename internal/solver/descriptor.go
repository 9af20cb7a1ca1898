package solver

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// Descriptors are immutable parameter records handed to the execution
// kernels alongside the raw buffers. Each is packed once by its builder and
// unpacked by the matching kernel; the packed form is an internal contract
// between the two, not a portable format. Dimensions and lwork use the
// vendor's 32-bit integers.

// PotrfDescriptor parameterizes a Cholesky factorization kernel.
type PotrfDescriptor struct {
	Kind  ElementKind
	Uplo  accel.FillMode
	Batch int32
	N     int32
	Lwork int32
}

// GetrfDescriptor parameterizes an LU factorization kernel.
type GetrfDescriptor struct {
	Kind  ElementKind
	Batch int32
	M     int32
	N     int32
	Lwork int32
}

// GeqrfDescriptor parameterizes a QR factorization kernel.
type GeqrfDescriptor struct {
	Kind  ElementKind
	Batch int32
	M     int32
	N     int32
	Lwork int32
}

// CsrlsvqrDescriptor parameterizes a sparse QR linear solve kernel. Pure
// parameter capture: the sparse solver sizes its own workspace at run time.
type CsrlsvqrDescriptor struct {
	Kind    ElementKind
	N       int32
	Nnz     int32
	Reorder int32
	Tol     float64
}

// OrgqrDescriptor parameterizes a Householder reconstruction kernel.
type OrgqrDescriptor struct {
	Kind  ElementKind
	Batch int32
	M     int32
	N     int32
	K     int32
	Lwork int32
}

// SyevdDescriptor parameterizes a direct symmetric/Hermitian
// eigendecomposition kernel.
type SyevdDescriptor struct {
	Kind  ElementKind
	Uplo  accel.FillMode
	Batch int32
	N     int32
	Lwork int32
}

// SyevjDescriptor parameterizes a Jacobi symmetric/Hermitian
// eigendecomposition kernel.
type SyevjDescriptor struct {
	Kind  ElementKind
	Uplo  accel.FillMode
	Batch int32
	N     int32
	Lwork int32
}

// GesvdDescriptor parameterizes a direct SVD kernel. JobU and JobVT are the
// LAPACK job characters 'A', 'S' or 'N'.
type GesvdDescriptor struct {
	Kind  ElementKind
	Batch int32
	M     int32
	N     int32
	Lwork int32
	JobU  byte
	JobVT byte
}

// GesvdjDescriptor parameterizes a Jacobi SVD kernel.
type GesvdjDescriptor struct {
	Kind  ElementKind
	Batch int32
	M     int32
	N     int32
	Lwork int32
	Jobz  accel.EigMode
	Econ  int32
}

// SytrdDescriptor parameterizes a tridiagonal reduction kernel. The order
// is recorded twice, as both the dimension and the leading dimension.
type SytrdDescriptor struct {
	Kind  ElementKind
	Uplo  accel.FillMode
	Batch int32
	N     int32
	Lda   int32
	Lwork int32
}

// Deterministic encoding: identical records always pack to identical bytes,
// which the build cache and the determinism guarantees rely on.
var (
	descEncMode cbor.EncMode
	descDecMode cbor.DecMode
)

func init() {
	var err error
	descEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("solver: cbor encode mode: %v", err))
	}
	descDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("solver: cbor decode mode: %v", err))
	}
}

// pack serializes a descriptor record. It is total over the descriptor
// types above; an encoding failure is a programming error, not a runtime
// condition, hence the panic.
func pack(v any) []byte {
	b, err := descEncMode.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("solver: pack %T: %v", v, err))
	}
	return b
}

// UnpackDescriptor is the exact inverse of the builders' packing. It is
// called by the execution kernels to recover the parameter record from the
// opaque blob.
func UnpackDescriptor[T any](opaque []byte) (T, error) {
	var d T
	if err := descDecMode.Unmarshal(opaque, &d); err != nil {
		return d, fmt.Errorf("solver: unpack %T: %w", d, err)
	}
	return d, nil
}
