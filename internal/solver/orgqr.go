package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// BuildOrgqrDescriptor returns the workspace byte size and the packed
// descriptor for reconstructing the orthogonal (or unitary, for the complex
// kinds) factor from k elementary Householder reflectors.
func BuildOrgqrDescriptor(dt DType, b, m, n, k int) (int64, []byte, error) {
	const op = "orgqr"
	key := fmt.Sprintf("%s/%s/b=%d/m=%d/n=%d/k=%d", op, dt, b, m, n, k)
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

	lwork, err := orgqrQueries[kind](be.Lib, bh.Handle(), m, n, k, m)
	if err != nil {
		return 0, nil, buildFailed(op, err)
	}

	size := int64(lwork) * kind.Size()
	blob := pack(OrgqrDescriptor{
		Kind:  kind,
		Batch: int32(b),
		M:     int32(m),
		N:     int32(n),
		K:     int32(k),
		Lwork: int32(lwork),
	})
	cachePut(key, size, blob)
	buildOK(op)
	return size, blob, nil
}
