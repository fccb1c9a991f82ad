package facmat

import (
	"errors"
	"fmt"

	"github.com/hupe1980/facmat/dense"
)

var (
	// ErrNilFactor is returned by New when either factor does not carry
	// matrix semantics (a nil *dense.Matrix).
	ErrNilFactor = errors.New("facmat: factor is not a matrix")

	// ErrAxis is returned by reductions when the axis is outside the legal
	// set {AxisRows, AxisCols, -1}.
	ErrAxis = errors.New("facmat: axis out of bounds for a 2-dimensional matrix")

	// ErrZeroStep is returned when a range selector uses step 0.
	ErrZeroStep = errors.New("facmat: slice step cannot be zero")
)

// ErrInnerDim indicates that the factor inner dimensions disagree:
// left is m×k, right is k'×n, and k != k'.
type ErrInnerDim struct {
	LeftCols  int
	RightRows int
}

func (e *ErrInnerDim) Error() string {
	return fmt.Sprintf("facmat: inner dimension mismatch: left has %d columns, right has %d rows", e.LeftCols, e.RightRows)
}

// ErrDTypeMismatch indicates that two on-disk factors, or a factor and the
// requested element type, disagree on dtype. In-memory construction cannot
// produce it; the type system already forces both factors to share T.
type ErrDTypeMismatch struct {
	Want dense.DType
	Got  dense.DType
}

func (e *ErrDTypeMismatch) Error() string {
	return fmt.Sprintf("facmat: dtype mismatch: want %s, got %s", e.Want, e.Got)
}

// ErrIndexOutOfRange indicates that a resolved index fell outside
// [0, Dim). Index reports the original user-supplied value.
type ErrIndexOutOfRange struct {
	Index int
	Dim   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("facmat: index %d out of range for dimension of length %d", e.Index, e.Dim)
}

// ErrBlockCount indicates a blocked-iteration block count outside
// [1, Dim].
type ErrBlockCount struct {
	N   int
	Dim int
}

func (e *ErrBlockCount) Error() string {
	return fmt.Sprintf("facmat: block count %d out of range [1, %d]", e.N, e.Dim)
}
