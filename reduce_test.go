package facmat

import (
	"testing"

	"github.com/hupe1980/facmat/dense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	m := testFactored(t)

	perRow, err := m.Sum(AxisCols)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 14, 22}, perRow)

	perCol, err := m.Sum(AxisRows)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 12, 21}, perCol)
}

func TestSumNegativeAxisAlias(t *testing.T) {
	m := testFactored(t)

	aliased, err := m.Sum(Axis(-1))
	require.NoError(t, err)
	last, err := m.Sum(AxisCols)
	require.NoError(t, err)
	assert.Equal(t, last, aliased)
}

func TestSumInvalidAxis(t *testing.T) {
	m := testFactored(t)

	for _, ax := range []Axis{2, -2, 17} {
		_, err := m.Sum(ax)
		assert.ErrorIs(t, err, ErrAxis, "axis=%d", ax)
		_, err = m.Mean(ax)
		assert.ErrorIs(t, err, ErrAxis, "axis=%d", ax)
	}
}

func TestSumTransposed(t *testing.T) {
	m := testFactored(t).T()

	// Axis values follow the logical orientation, so the per-row sums of
	// the transpose equal the per-column sums of the original.
	perRow, err := m.Sum(AxisCols)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 12, 21}, perRow)

	perCol, err := m.Sum(AxisRows)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 14, 22}, perCol)
}

func TestSumAll(t *testing.T) {
	m := testFactored(t)
	assert.Equal(t, int64(42), m.SumAll())
	assert.Equal(t, int64(42), m.T().SumAll())
}

func TestMean(t *testing.T) {
	m := testFactored(t)

	perRow, err := m.Mean(AxisCols)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 14.0 / 3, 22.0 / 3}, perRow, 1e-12)

	perCol, err := m.Mean(AxisRows)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 4, 7}, perCol, 1e-12)
}

func TestMeanAll(t *testing.T) {
	m := testFactored(t)
	assert.InDelta(t, 42.0/9.0, m.MeanAll(), 1e-12)
}

func TestReductionsMatchDenseReference(t *testing.T) {
	// Non-square shape to keep the axes distinguishable: 4x2 @ 2x5.
	left, err := dense.FromRows([][]float64{{1, 2}, {0, 1}, {3, 0}, {2, 2}})
	require.NoError(t, err)
	right, err := dense.FromRows([][]float64{{1, 0, 2, 1, 0}, {0, 1, 1, 2, 3}})
	require.NoError(t, err)
	m, err := New(left, right)
	require.NoError(t, err)

	full := dense.MatMul(left, right)

	perRow, err := m.Sum(AxisCols)
	require.NoError(t, err)
	assert.Equal(t, full.RowSums(), perRow)

	perCol, err := m.Sum(AxisRows)
	require.NoError(t, err)
	assert.Equal(t, full.ColSums(), perCol)

	var total float64
	for _, v := range full.Data() {
		total += v
	}
	assert.InDelta(t, total, m.SumAll(), 1e-12)
}
