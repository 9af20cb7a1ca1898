//go:build rocm

package accel

// The ROCm personality: the batched Cholesky has its own size query (plus a
// pointer-array copy the caller must add), while sparse QR and the Jacobi
// SVD entry points do not exist.
func defaultBackend() *Backend {
	return &Backend{
		Name: "rocm",
		Lib:  NewSimLibrary(),
		Caps: Capabilities{
			NativeBatchedPotrf: true,
			SparseQR:           false,
			JacobiSVD:          false,
		},
	}
}
