package accel

import (
	"sync/atomic"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack"
	lapackimpl "gonum.org/v1/gonum/lapack/gonum"
)

// SimLibrary is a host-side emulation of the vendor solver library's size
// queries. Where LAPACK defines a workspace query for the operation, the
// float64 path delegates to gonum's LAPACK implementation (lwork == -1
// convention) and the other element kinds reuse the returned element count;
// entry points the vendor invented (potrf, getrf, the Jacobi variants) use
// blocked-size formulas that are monotone in the matrix dimensions. Shape
// validation mirrors the vendor's invalid-value status so error paths behave
// like the real library.
//
// It also tracks live handles and live algorithm-parameter objects so tests
// can assert that nothing leaks on failure paths.
type SimLibrary struct {
	nextID      atomic.Uint64
	liveHandles atomic.Int64
	liveSyevj   atomic.Int64
	liveGesvdj  atomic.Int64

	impl lapackimpl.Implementation
}

// simBlock is the block size the emulated blocked formulas assume.
const simBlock = 64

// NewSimLibrary returns a fresh emulated solver library.
func NewSimLibrary() *SimLibrary { return &SimLibrary{} }

func (l *SimLibrary) Name() string { return "sim" }

// LiveHandles reports the number of handles created but not yet destroyed.
func (l *SimLibrary) LiveHandles() int64 { return l.liveHandles.Load() }

// LiveSyevjParams reports live Jacobi eigendecomposition parameter objects.
func (l *SimLibrary) LiveSyevjParams() int64 { return l.liveSyevj.Load() }

// LiveGesvdjParams reports live Jacobi SVD parameter objects.
func (l *SimLibrary) LiveGesvdjParams() int64 { return l.liveGesvdj.Load() }

type simHandle struct{ id uint64 }

func (h *simHandle) ID() uint64 { return h.id }

type simSyevjParams struct{ id uint64 }

func (*simSyevjParams) syevjParams() {}

type simGesvdjParams struct{ id uint64 }

func (*simGesvdjParams) gesvdjParams() {}

func (l *SimLibrary) CreateHandle() (Handle, error) {
	l.liveHandles.Add(1)
	return &simHandle{id: l.nextID.Add(1)}, nil
}

func (l *SimLibrary) DestroyHandle(h Handle) error {
	if _, ok := h.(*simHandle); !ok {
		return &CallError{Call: "DestroyHandle", Status: StatusInvalidValue}
	}
	l.liveHandles.Add(-1)
	return nil
}

func (l *SimLibrary) CreateSyevjParams() (SyevjParams, error) {
	l.liveSyevj.Add(1)
	return &simSyevjParams{id: l.nextID.Add(1)}, nil
}

func (l *SimLibrary) DestroySyevjParams(p SyevjParams) error {
	if _, ok := p.(*simSyevjParams); !ok {
		return &CallError{Call: "DestroySyevjParams", Status: StatusInvalidValue}
	}
	l.liveSyevj.Add(-1)
	return nil
}

func (l *SimLibrary) CreateGesvdjParams() (GesvdjParams, error) {
	l.liveGesvdj.Add(1)
	return &simGesvdjParams{id: l.nextID.Add(1)}, nil
}

func (l *SimLibrary) DestroyGesvdjParams(p GesvdjParams) error {
	if _, ok := p.(*simGesvdjParams); !ok {
		return &CallError{Call: "DestroyGesvdjParams", Status: StatusInvalidValue}
	}
	l.liveGesvdj.Add(-1)
	return nil
}

func invalid(call string) error {
	return &CallError{Call: call, Status: StatusInvalidValue}
}

func checkHandle(call string, h Handle) error {
	if h == nil {
		return &CallError{Call: call, Status: StatusNotInitialized}
	}
	return nil
}

func uploOf(f FillMode) blas.Uplo {
	if f == FillModeUpper {
		return blas.Upper
	}
	return blas.Lower
}

// potrfSize emulates the vendor Cholesky workspace: one blocked panel.
func (l *SimLibrary) potrfSize(call string, h Handle, n, lda int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if n < 1 || lda < n {
		return 0, invalid(call)
	}
	return n * simBlock, nil
}

func (l *SimLibrary) SpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.potrfSize("SpotrfBufferSize", h, n, lda)
}

func (l *SimLibrary) DpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.potrfSize("DpotrfBufferSize", h, n, lda)
}

func (l *SimLibrary) CpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.potrfSize("CpotrfBufferSize", h, n, lda)
}

func (l *SimLibrary) ZpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.potrfSize("ZpotrfBufferSize", h, n, lda)
}

func (l *SimLibrary) potrfBatchedSize(call string, h Handle, n, lda, batch int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if n < 1 || lda < n || batch < 1 {
		return 0, invalid(call)
	}
	return n * simBlock * batch, nil
}

func (l *SimLibrary) SpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error) {
	return l.potrfBatchedSize("SpotrfBatchedBufferSize", h, n, lda, batch)
}

func (l *SimLibrary) DpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error) {
	return l.potrfBatchedSize("DpotrfBatchedBufferSize", h, n, lda, batch)
}

func (l *SimLibrary) CpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error) {
	return l.potrfBatchedSize("CpotrfBatchedBufferSize", h, n, lda, batch)
}

func (l *SimLibrary) ZpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error) {
	return l.potrfBatchedSize("ZpotrfBatchedBufferSize", h, n, lda, batch)
}

// getrfSize emulates the vendor LU workspace. LAPACK getrf takes no work
// array, so this mirrors the blocked panel the vendor allocates.
func (l *SimLibrary) getrfSize(call string, h Handle, m, n, lda int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if m < 1 || n < 1 || lda < m {
		return 0, invalid(call)
	}
	return min(m, n) * simBlock, nil
}

func (l *SimLibrary) SgetrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.getrfSize("SgetrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) DgetrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.getrfSize("DgetrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) CgetrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.getrfSize("CgetrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) ZgetrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.getrfSize("ZgetrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) geqrfSize(call string, h Handle, m, n, lda int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if m < 1 || n < 1 || lda < m {
		return 0, invalid(call)
	}
	a := make([]float64, m*n)
	tau := make([]float64, min(m, n))
	work := make([]float64, 1)
	l.impl.Dgeqrf(m, n, a, max(1, n), tau, work, -1)
	return int(work[0]), nil
}

func (l *SimLibrary) SgeqrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.geqrfSize("SgeqrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) DgeqrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.geqrfSize("DgeqrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) CgeqrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.geqrfSize("CgeqrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) ZgeqrfBufferSize(h Handle, m, n, lda int) (int, error) {
	return l.geqrfSize("ZgeqrfBufferSize", h, m, n, lda)
}

func (l *SimLibrary) orgqrSize(call string, h Handle, m, n, k, lda int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if m < 1 || n < 1 || n > m || k < 0 || k > n || lda < m {
		return 0, invalid(call)
	}
	a := make([]float64, m*n)
	tau := make([]float64, k)
	work := make([]float64, 1)
	l.impl.Dorgqr(m, n, k, a, max(1, n), tau, work, -1)
	return int(work[0]), nil
}

func (l *SimLibrary) SorgqrBufferSize(h Handle, m, n, k, lda int) (int, error) {
	return l.orgqrSize("SorgqrBufferSize", h, m, n, k, lda)
}

func (l *SimLibrary) DorgqrBufferSize(h Handle, m, n, k, lda int) (int, error) {
	return l.orgqrSize("DorgqrBufferSize", h, m, n, k, lda)
}

func (l *SimLibrary) CungqrBufferSize(h Handle, m, n, k, lda int) (int, error) {
	return l.orgqrSize("CungqrBufferSize", h, m, n, k, lda)
}

func (l *SimLibrary) ZungqrBufferSize(h Handle, m, n, k, lda int) (int, error) {
	return l.orgqrSize("ZungqrBufferSize", h, m, n, k, lda)
}

func (l *SimLibrary) syevdSize(call string, h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if n < 1 || lda < n {
		return 0, invalid(call)
	}
	job := lapack.EVNone
	if jobz == EigModeVector {
		job = lapack.EVCompute
	}
	a := make([]float64, n*n)
	w := make([]float64, n)
	work := make([]float64, 1)
	l.impl.Dsyev(job, uploOf(uplo), n, a, max(1, n), w, work, -1)
	return int(work[0]), nil
}

func (l *SimLibrary) SsyevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error) {
	return l.syevdSize("SsyevdBufferSize", h, jobz, uplo, n, lda)
}

func (l *SimLibrary) DsyevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error) {
	return l.syevdSize("DsyevdBufferSize", h, jobz, uplo, n, lda)
}

func (l *SimLibrary) CheevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error) {
	return l.syevdSize("CheevdBufferSize", h, jobz, uplo, n, lda)
}

func (l *SimLibrary) ZheevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error) {
	return l.syevdSize("ZheevdBufferSize", h, jobz, uplo, n, lda)
}

// syevjSize is a pure formula: LAPACK has no Jacobi eigensolver query.
func (l *SimLibrary) syevjSize(call string, h Handle, jobz EigMode, n, lda int, params SyevjParams, batch int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if n < 1 || lda < n || batch < 1 || params == nil {
		return 0, invalid(call)
	}
	lw := n*n + 6*n + 32
	if jobz == EigModeVector {
		lw += n * n
	}
	return lw * batch, nil
}

func (l *SimLibrary) SsyevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error) {
	return l.syevjSize("SsyevjBufferSize", h, jobz, n, lda, params, 1)
}

func (l *SimLibrary) DsyevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error) {
	return l.syevjSize("DsyevjBufferSize", h, jobz, n, lda, params, 1)
}

func (l *SimLibrary) CheevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error) {
	return l.syevjSize("CheevjBufferSize", h, jobz, n, lda, params, 1)
}

func (l *SimLibrary) ZheevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error) {
	return l.syevjSize("ZheevjBufferSize", h, jobz, n, lda, params, 1)
}

func (l *SimLibrary) SsyevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error) {
	return l.syevjSize("SsyevjBatchedBufferSize", h, jobz, n, lda, params, batch)
}

func (l *SimLibrary) DsyevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error) {
	return l.syevjSize("DsyevjBatchedBufferSize", h, jobz, n, lda, params, batch)
}

func (l *SimLibrary) CheevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error) {
	return l.syevjSize("CheevjBatchedBufferSize", h, jobz, n, lda, params, batch)
}

func (l *SimLibrary) ZheevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error) {
	return l.syevjSize("ZheevjBatchedBufferSize", h, jobz, n, lda, params, batch)
}

func (l *SimLibrary) gesvdSize(call string, h Handle, jobU, jobVT byte, m, n int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if m < 1 || n < 1 {
		return 0, invalid(call)
	}
	ju, err := svdJob(call, jobU)
	if err != nil {
		return 0, err
	}
	jvt, err := svdJob(call, jobVT)
	if err != nil {
		return 0, err
	}
	minmn := min(m, n)
	a := make([]float64, m*n)
	s := make([]float64, minmn)
	var u, vt []float64
	ldu, ldvt := 1, 1
	switch ju {
	case lapack.SVDAll:
		u, ldu = make([]float64, m*m), max(1, m)
	case lapack.SVDStore:
		u, ldu = make([]float64, m*minmn), max(1, minmn)
	}
	switch jvt {
	case lapack.SVDAll:
		vt, ldvt = make([]float64, n*n), max(1, n)
	case lapack.SVDStore:
		vt, ldvt = make([]float64, minmn*n), max(1, n)
	}
	work := make([]float64, 1)
	l.impl.Dgesvd(ju, jvt, m, n, a, max(1, n), s, u, ldu, vt, ldvt, work, -1)
	return int(work[0]), nil
}

func svdJob(call string, c byte) (lapack.SVDJob, error) {
	switch c {
	case 'A':
		return lapack.SVDAll, nil
	case 'S':
		return lapack.SVDStore, nil
	case 'N':
		return lapack.SVDNone, nil
	default:
		return 0, invalid(call)
	}
}

func (l *SimLibrary) SgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error) {
	return l.gesvdSize("SgesvdBufferSize", h, jobU, jobVT, m, n)
}

func (l *SimLibrary) DgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error) {
	return l.gesvdSize("DgesvdBufferSize", h, jobU, jobVT, m, n)
}

func (l *SimLibrary) CgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error) {
	return l.gesvdSize("CgesvdBufferSize", h, jobU, jobVT, m, n)
}

func (l *SimLibrary) ZgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error) {
	return l.gesvdSize("ZgesvdBufferSize", h, jobU, jobVT, m, n)
}

// gesvdjSize is a pure formula: LAPACK has no Jacobi SVD query.
func (l *SimLibrary) gesvdjSize(call string, h Handle, jobz EigMode, m, n int, params GesvdjParams, batch int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if m < 1 || n < 1 || batch < 1 || params == nil {
		return 0, invalid(call)
	}
	minmn := min(m, n)
	lw := m*n + 6*minmn + 32
	if jobz == EigModeVector {
		lw += m*minmn + minmn*n
	}
	return lw * batch, nil
}

func (l *SimLibrary) SgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error) {
	return l.gesvdjSize("SgesvdjBufferSize", h, jobz, m, n, params, 1)
}

func (l *SimLibrary) DgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error) {
	return l.gesvdjSize("DgesvdjBufferSize", h, jobz, m, n, params, 1)
}

func (l *SimLibrary) CgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error) {
	return l.gesvdjSize("CgesvdjBufferSize", h, jobz, m, n, params, 1)
}

func (l *SimLibrary) ZgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error) {
	return l.gesvdjSize("ZgesvdjBufferSize", h, jobz, m, n, params, 1)
}

func (l *SimLibrary) SgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error) {
	return l.gesvdjSize("SgesvdjBatchedBufferSize", h, jobz, m, n, params, batch)
}

func (l *SimLibrary) DgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error) {
	return l.gesvdjSize("DgesvdjBatchedBufferSize", h, jobz, m, n, params, batch)
}

func (l *SimLibrary) CgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error) {
	return l.gesvdjSize("CgesvdjBatchedBufferSize", h, jobz, m, n, params, batch)
}

func (l *SimLibrary) ZgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error) {
	return l.gesvdjSize("ZgesvdjBatchedBufferSize", h, jobz, m, n, params, batch)
}

func (l *SimLibrary) sytrdSize(call string, h Handle, uplo FillMode, n, lda int) (int, error) {
	if err := checkHandle(call, h); err != nil {
		return 0, err
	}
	if n < 1 || lda < n {
		return 0, invalid(call)
	}
	a := make([]float64, n*n)
	d := make([]float64, n)
	e := make([]float64, max(0, n-1))
	tau := make([]float64, max(0, n-1))
	work := make([]float64, 1)
	l.impl.Dsytrd(uploOf(uplo), n, a, max(1, n), d, e, tau, work, -1)
	return int(work[0]), nil
}

func (l *SimLibrary) SsytrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.sytrdSize("SsytrdBufferSize", h, uplo, n, lda)
}

func (l *SimLibrary) DsytrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.sytrdSize("DsytrdBufferSize", h, uplo, n, lda)
}

func (l *SimLibrary) ChetrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.sytrdSize("ChetrdBufferSize", h, uplo, n, lda)
}

func (l *SimLibrary) ZhetrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error) {
	return l.sytrdSize("ZhetrdBufferSize", h, uplo, n, lda)
}

var _ Library = (*SimLibrary)(nil)
