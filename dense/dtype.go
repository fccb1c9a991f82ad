package dense

import (
	"fmt"
	"reflect"
)

// Number is the set of element types a Matrix can hold. It matches the set
// of dtypes the binary container format can describe.
type Number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// DType is the runtime tag for a Matrix element type. The numeric values are
// part of the container file format and must not be reordered.
type DType uint8

const (
	// Int32 is a 32-bit signed integer element.
	Int32 DType = 1
	// Int64 is a 64-bit signed integer element.
	Int64 DType = 2
	// Float32 is a 32-bit IEEE 754 element.
	Float32 DType = 3
	// Float64 is a 64-bit IEEE 754 element.
	Float64 DType = 4
)

// TypeOf returns the DType tag for the element type T. Dispatch is on the
// reflect kind so named types ("type Weight float32") tag the same as their
// underlying type.
func TypeOf[T Number]() DType {
	var z T
	switch reflect.TypeOf(z).Kind() {
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Float32:
		return Float32
	default:
		return Float64
	}
}

// Size returns the element width in bytes, or 0 for an unknown tag.
func (d DType) Size() int {
	switch d {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether d is a known element type tag.
func (d DType) Valid() bool {
	return d >= Int32 && d <= Float64
}

// String returns the numpy-style name of the element type.
func (d DType) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}
