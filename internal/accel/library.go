package accel

// Library is the vendor solver API surface this layer depends on: session
// management, algorithm-parameter objects, and the per-element-kind
// workspace size queries. Entry points follow the vendor's S/D/C/Z naming
// (float32, float64, complex64, complex128); every query returns lwork as an
// element count in the entry point's own element width.
//
// Real vendor bindings implement this via cgo behind build tags; SimLibrary
// is the host-side emulation used by default and by tests.
type Library interface {
	// Name identifies the library implementation, for logging.
	Name() string

	CreateHandle() (Handle, error)
	DestroyHandle(h Handle) error

	CreateSyevjParams() (SyevjParams, error)
	DestroySyevjParams(p SyevjParams) error
	CreateGesvdjParams() (GesvdjParams, error)
	DestroyGesvdjParams(p GesvdjParams) error

	// Cholesky factorization.
	SpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
	DpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
	CpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
	ZpotrfBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)

	// Batched Cholesky factorization. Only the back-end with a native
	// batched query exposes a meaningful implementation.
	SpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error)
	DpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error)
	CpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error)
	ZpotrfBatchedBufferSize(h Handle, uplo FillMode, n, lda, batch int) (int, error)

	// LU factorization.
	SgetrfBufferSize(h Handle, m, n, lda int) (int, error)
	DgetrfBufferSize(h Handle, m, n, lda int) (int, error)
	CgetrfBufferSize(h Handle, m, n, lda int) (int, error)
	ZgetrfBufferSize(h Handle, m, n, lda int) (int, error)

	// QR factorization.
	SgeqrfBufferSize(h Handle, m, n, lda int) (int, error)
	DgeqrfBufferSize(h Handle, m, n, lda int) (int, error)
	CgeqrfBufferSize(h Handle, m, n, lda int) (int, error)
	ZgeqrfBufferSize(h Handle, m, n, lda int) (int, error)

	// Householder reconstruction: orgqr for the real kinds, ungqr for the
	// complex kinds.
	SorgqrBufferSize(h Handle, m, n, k, lda int) (int, error)
	DorgqrBufferSize(h Handle, m, n, k, lda int) (int, error)
	CungqrBufferSize(h Handle, m, n, k, lda int) (int, error)
	ZungqrBufferSize(h Handle, m, n, k, lda int) (int, error)

	// Symmetric/Hermitian eigendecomposition, direct algorithm.
	SsyevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error)
	DsyevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error)
	CheevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error)
	ZheevdBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int) (int, error)

	// Symmetric/Hermitian eigendecomposition, Jacobi algorithm.
	SsyevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error)
	DsyevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error)
	CheevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error)
	ZheevjBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams) (int, error)

	SsyevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error)
	DsyevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error)
	CheevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error)
	ZheevjBatchedBufferSize(h Handle, jobz EigMode, uplo FillMode, n, lda int, params SyevjParams, batch int) (int, error)

	// Singular value decomposition, direct algorithm. jobU/jobVT are the
	// LAPACK job characters 'A', 'S' or 'N'.
	SgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error)
	DgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error)
	CgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error)
	ZgesvdBufferSize(h Handle, jobU, jobVT byte, m, n int) (int, error)

	// Singular value decomposition, Jacobi algorithm. The batched variant
	// has no economy parameter in the vendor API.
	SgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error)
	DgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error)
	CgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error)
	ZgesvdjBufferSize(h Handle, jobz EigMode, econ, m, n, lda, ldu, ldv int, params GesvdjParams) (int, error)

	SgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error)
	DgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error)
	CgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error)
	ZgesvdjBatchedBufferSize(h Handle, jobz EigMode, m, n, lda, ldu, ldv int, params GesvdjParams, batch int) (int, error)

	// Tridiagonal reduction: sytrd for the real kinds, hetrd for the
	// complex kinds.
	SsytrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
	DsytrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
	ChetrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
	ZhetrdBufferSize(h Handle, uplo FillMode, n, lda int) (int, error)
}
