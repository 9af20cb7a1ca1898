package solver

import (
	"fmt"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// The vendor library exposes a distinct size-query entry point per element
// kind. Rather than repeating a four-way switch in every builder, each
// operation owns a table keyed by ElementKind, built once at package init
// and checked for exhaustiveness over the closed four-kind set.

type (
	potrfQuery  func(l accel.Library, h accel.Handle, uplo accel.FillMode, n, lda int) (int, error)
	potrfBQuery func(l accel.Library, h accel.Handle, uplo accel.FillMode, n, lda, batch int) (int, error)
	lworkQuery  func(l accel.Library, h accel.Handle, m, n, lda int) (int, error)
	orgqrQuery  func(l accel.Library, h accel.Handle, m, n, k, lda int) (int, error)
	syevdQuery  func(l accel.Library, h accel.Handle, jobz accel.EigMode, uplo accel.FillMode, n, lda int) (int, error)
	syevjQuery  func(l accel.Library, h accel.Handle, jobz accel.EigMode, uplo accel.FillMode, n, lda int, p accel.SyevjParams) (int, error)
	syevjBQuery func(l accel.Library, h accel.Handle, jobz accel.EigMode, uplo accel.FillMode, n, lda int, p accel.SyevjParams, batch int) (int, error)
	gesvdQuery  func(l accel.Library, h accel.Handle, jobU, jobVT byte, m, n int) (int, error)
	gesvdjQuery func(l accel.Library, h accel.Handle, jobz accel.EigMode, econ, m, n, lda, ldu, ldv int, p accel.GesvdjParams) (int, error)
	gesvdjBQry  func(l accel.Library, h accel.Handle, jobz accel.EigMode, m, n, lda, ldu, ldv int, p accel.GesvdjParams, batch int) (int, error)
	sytrdQuery  func(l accel.Library, h accel.Handle, uplo accel.FillMode, n, lda int) (int, error)
)

var potrfQueries = map[ElementKind]potrfQuery{
	F32:  accel.Library.SpotrfBufferSize,
	F64:  accel.Library.DpotrfBufferSize,
	C64:  accel.Library.CpotrfBufferSize,
	C128: accel.Library.ZpotrfBufferSize,
}

var potrfBatchedQueries = map[ElementKind]potrfBQuery{
	F32:  accel.Library.SpotrfBatchedBufferSize,
	F64:  accel.Library.DpotrfBatchedBufferSize,
	C64:  accel.Library.CpotrfBatchedBufferSize,
	C128: accel.Library.ZpotrfBatchedBufferSize,
}

var getrfQueries = map[ElementKind]lworkQuery{
	F32:  accel.Library.SgetrfBufferSize,
	F64:  accel.Library.DgetrfBufferSize,
	C64:  accel.Library.CgetrfBufferSize,
	C128: accel.Library.ZgetrfBufferSize,
}

var geqrfQueries = map[ElementKind]lworkQuery{
	F32:  accel.Library.SgeqrfBufferSize,
	F64:  accel.Library.DgeqrfBufferSize,
	C64:  accel.Library.CgeqrfBufferSize,
	C128: accel.Library.ZgeqrfBufferSize,
}

// Real kinds reconstruct an orthogonal factor (orgqr), complex kinds a
// unitary one (ungqr).
var orgqrQueries = map[ElementKind]orgqrQuery{
	F32:  accel.Library.SorgqrBufferSize,
	F64:  accel.Library.DorgqrBufferSize,
	C64:  accel.Library.CungqrBufferSize,
	C128: accel.Library.ZungqrBufferSize,
}

var syevdQueries = map[ElementKind]syevdQuery{
	F32:  accel.Library.SsyevdBufferSize,
	F64:  accel.Library.DsyevdBufferSize,
	C64:  accel.Library.CheevdBufferSize,
	C128: accel.Library.ZheevdBufferSize,
}

var syevjQueries = map[ElementKind]syevjQuery{
	F32:  accel.Library.SsyevjBufferSize,
	F64:  accel.Library.DsyevjBufferSize,
	C64:  accel.Library.CheevjBufferSize,
	C128: accel.Library.ZheevjBufferSize,
}

var syevjBatchedQueries = map[ElementKind]syevjBQuery{
	F32:  accel.Library.SsyevjBatchedBufferSize,
	F64:  accel.Library.DsyevjBatchedBufferSize,
	C64:  accel.Library.CheevjBatchedBufferSize,
	C128: accel.Library.ZheevjBatchedBufferSize,
}

var gesvdQueries = map[ElementKind]gesvdQuery{
	F32:  accel.Library.SgesvdBufferSize,
	F64:  accel.Library.DgesvdBufferSize,
	C64:  accel.Library.CgesvdBufferSize,
	C128: accel.Library.ZgesvdBufferSize,
}

var gesvdjQueries = map[ElementKind]gesvdjQuery{
	F32:  accel.Library.SgesvdjBufferSize,
	F64:  accel.Library.DgesvdjBufferSize,
	C64:  accel.Library.CgesvdjBufferSize,
	C128: accel.Library.ZgesvdjBufferSize,
}

var gesvdjBatchedQueries = map[ElementKind]gesvdjBQry{
	F32:  accel.Library.SgesvdjBatchedBufferSize,
	F64:  accel.Library.DgesvdjBatchedBufferSize,
	C64:  accel.Library.CgesvdjBatchedBufferSize,
	C128: accel.Library.ZgesvdjBatchedBufferSize,
}

var sytrdQueries = map[ElementKind]sytrdQuery{
	F32:  accel.Library.SsytrdBufferSize,
	F64:  accel.Library.DsytrdBufferSize,
	C64:  accel.Library.ChetrdBufferSize,
	C128: accel.Library.ZhetrdBufferSize,
}

var allElementKinds = [...]ElementKind{F32, F64, C64, C128}

func init() {
	// Every table must cover the full closed kind set.
	for _, k := range allElementKinds {
		for name, ok := range map[string]bool{
			"potrf":          potrfQueries[k] != nil,
			"potrf_batched":  potrfBatchedQueries[k] != nil,
			"getrf":          getrfQueries[k] != nil,
			"geqrf":          geqrfQueries[k] != nil,
			"orgqr":          orgqrQueries[k] != nil,
			"syevd":          syevdQueries[k] != nil,
			"syevj":          syevjQueries[k] != nil,
			"syevj_batched":  syevjBatchedQueries[k] != nil,
			"gesvd":          gesvdQueries[k] != nil,
			"gesvdj":         gesvdjQueries[k] != nil,
			"gesvdj_batched": gesvdjBatchedQueries[k] != nil,
			"sytrd":          sytrdQueries[k] != nil,
		} {
			if !ok {
				panic(fmt.Sprintf("solver: %s dispatch table missing kind %s", name, k))
			}
		}
	}
}
