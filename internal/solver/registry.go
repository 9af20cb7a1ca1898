package solver

import (
	"fmt"
	"sync"

	"github.com/23skdu/longbow-bowyer/internal/accel"
)

// Kernel is an execution entry point: it receives the opaque descriptor
// produced by the matching builder, the caller-allocated scratch buffer of
// the reported size, and the operation's input/output buffers.
type Kernel func(opaque, workspace []byte, buffers [][]byte) error

// Executor is the pluggable execution layer behind the kernels. This core
// only dispatches to it; the actual accelerator calls live outside.
type Executor interface {
	Execute(op string, h accel.Handle, descriptor any, workspace []byte, buffers [][]byte) error
}

var (
	executorMu sync.RWMutex
	executor   Executor
)

// SetExecutor installs the execution layer the kernels delegate to.
func SetExecutor(e Executor) {
	executorMu.Lock()
	executor = e
	executorMu.Unlock()
}

func currentExecutor() Executor {
	executorMu.RLock()
	defer executorMu.RUnlock()
	return executor
}

// kernel adapts a descriptor type into a Kernel: unpack, check the scratch
// buffer against the descriptor's recorded requirement, borrow a handle and
// hand off to the executor. The handle is released on every exit path.
func kernel[T any](op string, need func(T) int64) Kernel {
	return func(opaque, workspace []byte, buffers [][]byte) error {
		d, err := UnpackDescriptor[T](opaque)
		if err != nil {
			return err
		}
		if want := need(d); int64(len(workspace)) < want {
			return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrWorkspaceTooSmall, op, want, len(workspace))
		}
		ex := currentExecutor()
		if ex == nil {
			return ErrNoExecutor
		}
		bh, err := accel.Current().Pool.Borrow()
		if err != nil {
			return err
		}
		defer bh.Release()
		return ex.Execute(op, bh.Handle(), d, workspace, buffers)
	}
}

func potrfNeed(d PotrfDescriptor) int64 {
	if d.Batch > 1 {
		ptrs := int64(d.Batch) * accel.PointerSize
		if accel.Current().Caps.NativeBatchedPotrf {
			return int64(d.Lwork)*d.Kind.Size() + ptrs
		}
		return ptrs
	}
	return int64(d.Lwork) * d.Kind.Size()
}

// Registrations returns the operation-name to kernel table consumed by the
// kernel-loading mechanism. Entries for single-vendor operations appear
// only when the active back-end has the capability.
func Registrations() map[string]Kernel {
	regs := map[string]Kernel{
		"gpusolver_potrf": kernel("potrf", potrfNeed),
		"gpusolver_getrf": kernel("getrf", func(d GetrfDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
		"gpusolver_geqrf": kernel("geqrf", func(d GeqrfDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
		"gpusolver_orgqr": kernel("orgqr", func(d OrgqrDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
		"gpusolver_syevd": kernel("syevd", func(d SyevdDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
		"gpusolver_syevj": kernel("syevj", func(d SyevjDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
		"gpusolver_gesvd": kernel("gesvd", func(d GesvdDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
		"gpusolver_sytrd": kernel("sytrd", func(d SytrdDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() }),
	}
	caps := accel.Current().Caps
	if caps.SparseQR {
		regs["cusolver_csrlsvqr"] = kernel("csrlsvqr", func(CsrlsvqrDescriptor) int64 { return 0 })
	}
	if caps.JacobiSVD {
		regs["cusolver_gesvdj"] = kernel("gesvdj", func(d GesvdjDescriptor) int64 { return int64(d.Lwork) * d.Kind.Size() })
	}
	return regs
}
