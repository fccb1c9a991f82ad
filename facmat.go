package facmat

import (
	"github.com/hupe1980/facmat/dense"
)

// FactoredMatrix is a logical matrix stored as the product of two dense
// factors. With left of shape m×k and right of shape k×n, the value at
// (i, j) is the inner product of left row i and right column j; the full
// m×n product is never stored.
//
// The zero value is not usable; construct with New or a loader. Instances
// are immutable: T and Convert return new values sharing or copying the
// factor data, and no method mutates the receiver.
type FactoredMatrix[T dense.Number] struct {
	left  *dense.Matrix[T]
	right *dense.Matrix[T]

	// transposed marks the logical matrix as (left @ right)ᵗ. Row and
	// column roles of the factors swap; the stored data never moves.
	transposed bool
}

// New creates a FactoredMatrix from the two factors. The factors are
// exclusively owned by the returned value and must not be mutated by the
// caller afterwards.
//
// New fails with ErrNilFactor when either factor is nil, and with
// *ErrInnerDim when left's column count differs from right's row count.
// Element-type agreement is enforced at compile time; loaders re-check it
// for on-disk input.
func New[T dense.Number](left, right *dense.Matrix[T]) (*FactoredMatrix[T], error) {
	if left == nil || right == nil {
		return nil, ErrNilFactor
	}
	_, k := left.Dims()
	kr, _ := right.Dims()
	if k != kr {
		return nil, &ErrInnerDim{LeftCols: k, RightRows: kr}
	}
	return &FactoredMatrix[T]{left: left, right: right}, nil
}

// Dims returns the logical (rows, cols) shape.
func (m *FactoredMatrix[T]) Dims() (int, int) {
	lr, _ := m.left.Dims()
	_, rc := m.right.Dims()
	if m.transposed {
		return rc, lr
	}
	return lr, rc
}

// Size returns the number of elements of the logical matrix.
func (m *FactoredMatrix[T]) Size() int {
	r, c := m.Dims()
	return r * c
}

// Len returns the number of logical rows, mirroring len() on a nested
// array.
func (m *FactoredMatrix[T]) Len() int {
	r, _ := m.Dims()
	return r
}

// DType returns the shared element type of the factors.
func (m *FactoredMatrix[T]) DType() dense.DType { return dense.TypeOf[T]() }

// Inner returns the shared inner dimension k of the factorization.
func (m *FactoredMatrix[T]) Inner() int {
	_, k := m.left.Dims()
	return k
}

// T returns the transpose as a new FactoredMatrix sharing the same factor
// data. No computation is performed; only the orientation flag toggles, so
// m.T().T() round-trips every element.
func (m *FactoredMatrix[T]) T() *FactoredMatrix[T] {
	return &FactoredMatrix[T]{left: m.left, right: m.right, transposed: !m.transposed}
}

// Convert returns a copy of m with both factors independently cast to To.
// The receiver is unchanged. The factors are copied even when To equals the
// current element type, so the result never aliases m.
func Convert[To, From dense.Number](m *FactoredMatrix[From]) *FactoredMatrix[To] {
	return &FactoredMatrix[To]{
		left:       dense.Convert[To](m.left),
		right:      dense.Convert[To](m.right),
		transposed: m.transposed,
	}
}

// At computes the single element at (i, j). Negative indices wrap from the
// end of the corresponding logical dimension.
func (m *FactoredMatrix[T]) At(i, j int) (T, error) {
	r, c := m.Dims()
	ri, err := resolveIndex(i, r)
	if err != nil {
		var zero T
		return zero, err
	}
	cj, err := resolveIndex(j, c)
	if err != nil {
		var zero T
		return zero, err
	}
	if m.transposed {
		ri, cj = cj, ri
	}
	return dense.Dot(m.left.Row(ri), m.right.Col(cj)), nil
}

// Row computes logical row i as a dense vector, O(k·cols) time.
func (m *FactoredMatrix[T]) Row(i int) ([]T, error) {
	r, _ := m.Dims()
	ri, err := resolveIndex(i, r)
	if err != nil {
		return nil, err
	}
	return m.rowAt(ri), nil
}

// Col computes logical column j as a dense vector, O(rows·k) time.
func (m *FactoredMatrix[T]) Col(j int) ([]T, error) {
	_, c := m.Dims()
	cj, err := resolveIndex(j, c)
	if err != nil {
		return nil, err
	}
	return m.colAt(cj), nil
}

// rowAt computes logical row i; i must already be in range.
func (m *FactoredMatrix[T]) rowAt(i int) []T {
	if m.transposed {
		return dense.MatVec(m.left, m.right.Col(i))
	}
	return dense.VecMat(m.left.Row(i), m.right)
}

// colAt computes logical column j; j must already be in range.
func (m *FactoredMatrix[T]) colAt(j int) []T {
	if m.transposed {
		return dense.VecMat(m.left.Row(j), m.right)
	}
	return dense.MatVec(m.left, m.right.Col(j))
}

// Slice materializes the sub-matrix selected by the two axis selectors as a
// dense matrix. Either selector may be All(). Only the selected rows of the
// row-side factor and columns of the column-side factor are multiplied, so
// the cost is proportional to the selection, not to the logical size.
//
// A single-index selector keeps its axis: Slice(Index(2), All()) returns a
// 1×cols matrix. Use Row or Col for flat vectors.
func (m *FactoredMatrix[T]) Slice(rowSel, colSel Sel) (*dense.Matrix[T], error) {
	r, c := m.Dims()
	rows, err := resolveSel(rowSel, r)
	if err != nil {
		return nil, err
	}
	cols, err := resolveSel(colSel, c)
	if err != nil {
		return nil, err
	}
	return dense.MatMul(m.gatherRowSide(rows), m.gatherColSide(cols)), nil
}

// gatherRowSide builds the len(idx)×k row-side operand for the given
// logical row indices.
func (m *FactoredMatrix[T]) gatherRowSide(idx []int) *dense.Matrix[T] {
	if m.transposed {
		return m.right.GatherColsT(idx)
	}
	return m.left.GatherRows(idx)
}

// gatherColSide builds the k×len(idx) column-side operand for the given
// logical column indices.
func (m *FactoredMatrix[T]) gatherColSide(idx []int) *dense.Matrix[T] {
	if m.transposed {
		return m.left.GatherRows(idx).Transpose()
	}
	return m.right.GatherCols(idx)
}

// rowFactor materializes the full row-side factor (logical-rows×k). Under
// direct orientation this is a view of left; under transposed orientation it
// is a transposed copy of right.
func (m *FactoredMatrix[T]) rowFactor() *dense.Matrix[T] {
	if m.transposed {
		return m.right.Transpose()
	}
	return m.left
}

// colFactor materializes the full column-side factor (k×logical-cols).
func (m *FactoredMatrix[T]) colFactor() *dense.Matrix[T] {
	if m.transposed {
		return m.left.Transpose()
	}
	return m.right
}

// materializeRowSpan computes the dense block of logical rows [sp.Start,
// sp.End) against the given column-side factor.
func (m *FactoredMatrix[T]) materializeRowSpan(sp Span, colSide *dense.Matrix[T]) *dense.Matrix[T] {
	var rowSide *dense.Matrix[T]
	if m.transposed {
		idx := make([]int, 0, sp.End-sp.Start)
		for i := sp.Start; i < sp.End; i++ {
			idx = append(idx, i)
		}
		rowSide = m.right.GatherColsT(idx)
	} else {
		rowSide = m.left.SliceRows(sp.Start, sp.End)
	}
	return dense.MatMul(rowSide, colSide)
}

// materializeColSpan computes the dense block of logical columns
// [sp.Start, sp.End) against the given row-side factor.
func (m *FactoredMatrix[T]) materializeColSpan(sp Span, rowSide *dense.Matrix[T]) *dense.Matrix[T] {
	var colSide *dense.Matrix[T]
	if m.transposed {
		colSide = m.left.SliceRows(sp.Start, sp.End).Transpose()
	} else {
		idx := make([]int, 0, sp.End-sp.Start)
		for j := sp.Start; j < sp.End; j++ {
			idx = append(idx, j)
		}
		colSide = m.right.GatherCols(idx)
	}
	return dense.MatMul(rowSide, colSide)
}
