package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveElementKind(t *testing.T) {
	cases := []struct {
		dt   DType
		want ElementKind
	}{
		{DType{'f', 4}, F32},
		{DType{'f', 8}, F64},
		{DType{'c', 8}, C64},
		{DType{'c', 16}, C128},
	}
	for _, tc := range cases {
		t.Run(tc.dt.String(), func(t *testing.T) {
			got, err := ResolveElementKind(tc.dt)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveElementKind_Unsupported(t *testing.T) {
	rejected := []DType{
		{'f', 2},  // half precision
		{'f', 16}, // quad precision
		{'c', 4},
		{'c', 32},
		{'i', 4},
		{'u', 8},
		{'b', 1},
		{'f', 0},
	}
	for _, dt := range rejected {
		t.Run(dt.String(), func(t *testing.T) {
			_, err := ResolveElementKind(dt)
			require.Error(t, err)
			var ue *UnsupportedDTypeError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, dt, ue.DType)
		})
	}
}

func TestElementKindSize(t *testing.T) {
	assert.Equal(t, int64(4), F32.Size())
	assert.Equal(t, int64(8), F64.Size())
	assert.Equal(t, int64(8), C64.Size())
	assert.Equal(t, int64(16), C128.Size())
}
