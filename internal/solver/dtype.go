// Package solver builds workspace sizes and execution descriptors for the
// GPU dense/sparse decomposition kernels. For each supported operation it
// resolves the caller's element type, borrows a solver handle, queries the
// accelerator library for the exact scratch requirement, and packs every
// parameter the execution kernel needs into an opaque descriptor blob.
package solver

import "fmt"

// ElementKind is one of the four numeric representations the solver
// supports. No fifth kind is ever constructed.
type ElementKind uint8

const (
	F32 ElementKind = iota
	F64
	C64
	C128
)

// Size returns the element width in bytes.
func (k ElementKind) Size() int64 {
	switch k {
	case F32:
		return 4
	case F64:
		return 8
	case C64:
		return 8
	case C128:
		return 16
	default:
		return 0
	}
}

func (k ElementKind) String() string {
	switch k {
	case F32:
		return "f32"
	case F64:
		return "f64"
	case C64:
		return "c64"
	case C128:
		return "c128"
	default:
		return "unknown"
	}
}

// DType is the caller-supplied element type descriptor: a type-class tag
// ('f' floating, 'c' complex) and the element width in bytes.
type DType struct {
	Kind byte
	Size int
}

func (d DType) String() string { return fmt.Sprintf("%c%d", d.Kind, d.Size) }

// UnsupportedDTypeError reports a dtype outside the supported set.
type UnsupportedDTypeError struct {
	DType DType
}

func (e *UnsupportedDTypeError) Error() string {
	return fmt.Sprintf("solver: unsupported dtype %s", e.DType)
}

var elementKinds = map[DType]ElementKind{
	{'f', 4}:  F32,
	{'f', 8}:  F64,
	{'c', 8}:  C64,
	{'c', 16}: C128,
}

// ResolveElementKind maps a dtype descriptor to its ElementKind. Anything
// outside the four supported combinations fails.
func ResolveElementKind(dt DType) (ElementKind, error) {
	k, ok := elementKinds[dt]
	if !ok {
		return 0, &UnsupportedDTypeError{DType: dt}
	}
	return k, nil
}
