package facmat

import (
	"iter"

	"github.com/hupe1980/facmat/dense"
)

// RowIter walks the logical rows in ascending order, computing each row on
// demand in O(k·cols) time and O(cols) memory. Every call to IterRows
// returns an independent iterator; none of them share cursor state.
type RowIter[T dense.Number] struct {
	m     *FactoredMatrix[T]
	next  int
	total int
}

// IterRows returns a fresh row iterator positioned before the first row.
func (m *FactoredMatrix[T]) IterRows() *RowIter[T] {
	r, _ := m.Dims()
	return &RowIter[T]{m: m, total: r}
}

// Next returns the next row and true, or nil and false after the last row.
func (it *RowIter[T]) Next() ([]T, bool) {
	if it.next >= it.total {
		return nil, false
	}
	row := it.m.rowAt(it.next)
	it.next++
	return row, true
}

// ColIter walks the logical columns in ascending order, computing each
// column on demand in O(rows·k) time and O(rows) memory.
type ColIter[T dense.Number] struct {
	m     *FactoredMatrix[T]
	next  int
	total int
}

// IterCols returns a fresh column iterator positioned before the first
// column.
func (m *FactoredMatrix[T]) IterCols() *ColIter[T] {
	_, c := m.Dims()
	return &ColIter[T]{m: m, total: c}
}

// Next returns the next column and true, or nil and false after the last
// column.
func (it *ColIter[T]) Next() ([]T, bool) {
	if it.next >= it.total {
		return nil, false
	}
	col := it.m.colAt(it.next)
	it.next++
	return col, true
}

// Rows returns a range-over-func view of the logical rows. Each range
// statement obtains an independent sequence starting at row 0.
func (m *FactoredMatrix[T]) Rows() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		it := m.IterRows()
		for i := 0; ; i++ {
			row, ok := it.Next()
			if !ok {
				return
			}
			if !yield(i, row) {
				return
			}
		}
	}
}

// Cols returns a range-over-func view of the logical columns.
func (m *FactoredMatrix[T]) Cols() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		it := m.IterCols()
		for j := 0; ; j++ {
			col, ok := it.Next()
			if !ok {
				return
			}
			if !yield(j, col) {
				return
			}
		}
	}
}

// BlockIter yields contiguous dense blocks of logical rows or columns,
// following the scanner idiom:
//
//	it := m.IterRowsBlocked(8)
//	for it.Next() {
//	    use(it.Block())
//	}
//	if err := it.Err(); err != nil { ... }
//
// Creating the iterator always succeeds; block-count validation runs on the
// first Next call, so a bad count surfaces through Err after Next returns
// false. Concatenating every yielded block reproduces the logical matrix in
// original order.
type BlockIter[T dense.Number] struct {
	m       *FactoredMatrix[T]
	rowwise bool
	nBlocks int

	spans []Span
	pos   int

	// fixed is the factor side shared by every block; it is materialized
	// once on the first advance and owned by this iterator.
	fixed *dense.Matrix[T]

	block   *dense.Matrix[T]
	span    Span
	err     error
	started bool
}

// IterRowsBlocked returns an iterator over nBlocks near-equal blocks of
// logical rows. nBlocks must satisfy 1 ≤ nBlocks ≤ rows; violations
// surface as *ErrBlockCount on the first Next.
func (m *FactoredMatrix[T]) IterRowsBlocked(nBlocks int) *BlockIter[T] {
	return &BlockIter[T]{m: m, rowwise: true, nBlocks: nBlocks}
}

// IterColsBlocked returns an iterator over nBlocks near-equal blocks of
// logical columns, validated against 1 ≤ nBlocks ≤ cols.
func (m *FactoredMatrix[T]) IterColsBlocked(nBlocks int) *BlockIter[T] {
	return &BlockIter[T]{m: m, rowwise: false, nBlocks: nBlocks}
}

// Next advances to the next block. It returns false when the iterator is
// exhausted or failed; distinguish the two with Err.
func (it *BlockIter[T]) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		r, c := it.m.Dims()
		dim := c
		if it.rowwise {
			dim = r
		}
		spans, err := Partition(dim, it.nBlocks)
		if err != nil {
			it.err = err
			return false
		}
		it.spans = spans
		if it.rowwise {
			it.fixed = it.m.colFactor()
		} else {
			it.fixed = it.m.rowFactor()
		}
	}
	if it.pos >= len(it.spans) {
		it.block = nil
		return false
	}
	sp := it.spans[it.pos]
	it.pos++
	it.span = sp
	if it.rowwise {
		it.block = it.m.materializeRowSpan(sp, it.fixed)
	} else {
		it.block = it.m.materializeColSpan(sp, it.fixed)
	}
	return true
}

// Block returns the block materialized by the last successful Next.
func (it *BlockIter[T]) Block() *dense.Matrix[T] { return it.block }

// Bounds returns the half-open index range of the last block along the
// iterated axis.
func (it *BlockIter[T]) Bounds() Span { return it.span }

// Err returns the validation error that stopped the iterator, if any.
func (it *BlockIter[T]) Err() error { return it.err }
