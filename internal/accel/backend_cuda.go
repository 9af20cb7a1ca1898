//go:build !rocm

package accel

// The CUDA personality: sparse QR and Jacobi SVD are available, but there
// is no native batched Cholesky size query. The batched call manages its
// scratch internally and the caller only supplies a device-pointer array.
func defaultBackend() *Backend {
	return &Backend{
		Name: "cuda",
		Lib:  NewSimLibrary(),
		Caps: Capabilities{
			NativeBatchedPotrf: false,
			SparseQR:           true,
			JacobiSVD:          true,
		},
	}
}
