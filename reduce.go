package facmat

import "github.com/hupe1980/facmat/dense"

// Axis designates one logical axis of the matrix for a reduction. The legal
// values are AxisRows (0), AxisCols (1) and -1, which is accepted as an
// alias for the last axis like conventional dense arrays do. Anything else
// fails with ErrAxis.
//
// Reductions over the whole matrix use the *All method variants instead of
// an axis value.
type Axis int

const (
	// AxisRows collapses the row axis: the result has one value per column.
	AxisRows Axis = 0
	// AxisCols collapses the column axis: the result has one value per row.
	AxisCols Axis = 1
)

// normalize maps -1 to AxisCols and rejects anything outside the legal set.
func (a Axis) normalize() (Axis, error) {
	switch a {
	case AxisRows, AxisCols:
		return a, nil
	case -1:
		return AxisCols, nil
	default:
		return 0, ErrAxis
	}
}

// Sum collapses one logical axis. The computation never touches the logical
// product:
//
//	Sum(AxisCols)[i] = Σ_j M[i,j] = (rowFactor @ rowSums(colFactor))[i]
//	Sum(AxisRows)[j] = Σ_i M[i,j] = (colSums(rowFactor) @ colFactor)[j]
//
// so the cost is O(m·k + k·n) instead of O(m·n). Axis values follow the
// logical orientation: after T(), AxisRows still means "collapse the rows
// of the transposed view".
func (m *FactoredMatrix[T]) Sum(axis Axis) ([]T, error) {
	ax, err := axis.normalize()
	if err != nil {
		return nil, err
	}
	if m.transposed {
		// The logical axes swap roles against the stored factors.
		if ax == AxisRows {
			return dense.MatVec(m.left, m.right.RowSums()), nil
		}
		return dense.VecMat(m.left.ColSums(), m.right), nil
	}
	if ax == AxisRows {
		return dense.VecMat(m.left.ColSums(), m.right), nil
	}
	return dense.MatVec(m.left, m.right.RowSums()), nil
}

// SumAll returns the grand total Σ_i Σ_j M[i,j], computed as the inner
// product of the factor marginals in O(m + n + k·max(m,n)) work on the
// factors alone.
func (m *FactoredMatrix[T]) SumAll() T {
	return dense.Dot(m.left.ColSums(), m.right.RowSums())
}

// Mean collapses one logical axis and divides by the number of collapsed
// elements. The result is float64 regardless of the element type, matching
// the widening that integer means require.
func (m *FactoredMatrix[T]) Mean(axis Axis) ([]float64, error) {
	ax, err := axis.normalize()
	if err != nil {
		return nil, err
	}
	sums, err := m.Sum(ax)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	count := float64(c)
	if ax == AxisRows {
		count = float64(r)
	}
	out := make([]float64, len(sums))
	for i, v := range sums {
		out[i] = float64(v) / count
	}
	return out, nil
}

// MeanAll returns the mean over every element of the logical matrix.
func (m *FactoredMatrix[T]) MeanAll() float64 {
	r, c := m.Dims()
	return float64(m.SumAll()) / float64(r*c)
}
