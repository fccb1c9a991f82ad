package dense

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadShape is returned when a requested shape has a non-positive
	// dimension.
	ErrBadShape = errors.New("dense: dimensions must be positive")

	// ErrShapeData is returned when the provided backing data does not match
	// the requested shape.
	ErrShapeData = errors.New("dense: data length does not match shape")

	// ErrRagged is returned when the rows of a nested slice differ in length.
	ErrRagged = errors.New("dense: ragged rows")
)

// Matrix is a row-major dense matrix of T values.
type Matrix[T Number] struct {
	rows, cols int
	data       []T // flat backing storage, length rows*cols
}

// New creates a rows×cols matrix initialized to zero.
func New[T Number](rows, cols int) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}, nil
}

// FromSlice wraps the given flat row-major data without copying. The matrix
// takes ownership of data; callers must not modify it afterwards.
func FromSlice[T Number](rows, cols int, data []T) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrShapeData, len(data), rows*cols)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data}, nil
}

// FromRows copies the given nested rows into a new matrix.
func FromRows[T Number](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrBadShape)
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Matrix[T]{rows: len(rows), cols: cols, data: data}, nil
}

// Dims returns the (rows, cols) dimensions.
func (m *Matrix[T]) Dims() (int, int) { return m.rows, m.cols }

// DType returns the runtime element type tag.
func (m *Matrix[T]) DType() DType { return TypeOf[T]() }

// At returns the element at (i, j). It panics when the index is out of
// range, like the slice access it wraps.
func (m *Matrix[T]) At(i, j int) T {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("dense: At(%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
	return m.data[i*m.cols+j]
}

// Set assigns v at (i, j). It panics when the index is out of range.
func (m *Matrix[T]) Set(i, j int, v T) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("dense: Set(%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
	m.data[i*m.cols+j] = v
}

// Row returns row i as a view into the backing storage. Mutating the
// returned slice mutates the matrix.
func (m *Matrix[T]) Row(i int) []T {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("dense: Row(%d) out of range for %dx%d matrix", i, m.rows, m.cols))
	}
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// Col returns a copy of column j.
func (m *Matrix[T]) Col(j int) []T {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("dense: Col(%d) out of range for %dx%d matrix", j, m.rows, m.cols))
	}
	out := make([]T, m.rows)
	for i := range out {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// Data returns the flat row-major backing slice as a view.
func (m *Matrix[T]) Data() []T { return m.data }

// Clone returns a deep copy of the matrix.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: data}
}

// SliceRows returns rows [start, end) as a view sharing backing storage.
func (m *Matrix[T]) SliceRows(start, end int) *Matrix[T] {
	if start < 0 || end > m.rows || start >= end {
		panic(fmt.Sprintf("dense: SliceRows(%d,%d) out of range for %d rows", start, end, m.rows))
	}
	return &Matrix[T]{
		rows: end - start,
		cols: m.cols,
		data: m.data[start*m.cols : end*m.cols : end*m.cols],
	}
}

// GatherRows copies the given rows, in order, into a new len(idx)×cols
// matrix. Indices may repeat; they must already be in range.
func (m *Matrix[T]) GatherRows(idx []int) *Matrix[T] {
	out := &Matrix[T]{rows: len(idx), cols: m.cols, data: make([]T, len(idx)*m.cols)}
	for i, r := range idx {
		copy(out.data[i*m.cols:(i+1)*m.cols], m.Row(r))
	}
	return out
}

// GatherCols copies the given columns, in order, into a new rows×len(idx)
// matrix. Indices may repeat; they must already be in range.
func (m *Matrix[T]) GatherCols(idx []int) *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: len(idx), data: make([]T, m.rows*len(idx))}
	for i := 0; i < m.rows; i++ {
		base := i * m.cols
		for j, c := range idx {
			out.data[i*len(idx)+j] = m.data[base+c]
		}
	}
	return out
}

// GatherColsT copies the given columns, in order, into a new len(idx)×rows
// matrix whose row i is column idx[i] of m. This is the transposed gather
// used when a factored matrix is oriented as a transpose.
func (m *Matrix[T]) GatherColsT(idx []int) *Matrix[T] {
	out := &Matrix[T]{rows: len(idx), cols: m.rows, data: make([]T, len(idx)*m.rows)}
	for i, c := range idx {
		for r := 0; r < m.rows; r++ {
			out.data[i*m.rows+r] = m.data[r*m.cols+c]
		}
	}
	return out
}

// Transpose returns a transposed copy of the matrix.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	out := &Matrix[T]{rows: m.cols, cols: m.rows, data: make([]T, len(m.data))}
	for i := 0; i < m.rows; i++ {
		base := i * m.cols
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[base+j]
		}
	}
	return out
}

// RowSums returns the per-row sums, a vector of length rows.
func (m *Matrix[T]) RowSums() []T {
	out := make([]T, m.rows)
	for i := 0; i < m.rows; i++ {
		var s T
		for _, v := range m.Row(i) {
			s += v
		}
		out[i] = s
	}
	return out
}

// ColSums returns the per-column sums, a vector of length cols.
func (m *Matrix[T]) ColSums() []T {
	out := make([]T, m.cols)
	for i := 0; i < m.rows; i++ {
		base := i * m.cols
		for j := 0; j < m.cols; j++ {
			out[j] += m.data[base+j]
		}
	}
	return out
}

// Equal reports whether two matrices have the same shape and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Convert returns a copy of m with every element converted to To. The copy
// is independent even when To and From are the same type.
func Convert[To, From Number](m *Matrix[From]) *Matrix[To] {
	data := make([]To, len(m.data))
	for i, v := range m.data {
		data[i] = To(v)
	}
	return &Matrix[To]{rows: m.rows, cols: m.cols, data: data}
}

// String implements fmt.Stringer for debugging.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matrix[%s] %dx%d\n", TypeOf[T](), m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		fmt.Fprintf(&sb, "%v\n", m.Row(i))
	}
	return sb.String()
}
