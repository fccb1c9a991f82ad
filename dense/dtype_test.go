package dense

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, Int32, TypeOf[int32]())
	assert.Equal(t, Int64, TypeOf[int64]())
	assert.Equal(t, Float32, TypeOf[float32]())
	assert.Equal(t, Float64, TypeOf[float64]())
}

func TestTypeOfNamedTypes(t *testing.T) {
	// Named element types tag as their underlying type.
	type weight float32
	type count int32
	type id int64

	assert.Equal(t, Float32, TypeOf[weight]())
	assert.Equal(t, Int32, TypeOf[count]())
	assert.Equal(t, Int64, TypeOf[id]())
}

func TestDTypeProperties(t *testing.T) {
	tests := []struct {
		dtype DType
		size  int
		valid bool
		name  string
	}{
		{Int32, 4, true, "int32"},
		{Int64, 8, true, "int64"},
		{Float32, 4, true, "float32"},
		{Float64, 8, true, "float64"},
		{DType(0), 0, false, "dtype(0)"},
		{DType(9), 0, false, "dtype(9)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.dtype.Size())
		assert.Equal(t, tt.valid, tt.dtype.Valid())
		assert.Equal(t, tt.name, tt.dtype.String())
	}
}
