// Package facmat provides lazily evaluated factored matrices for Go.
//
// A FactoredMatrix models a very large logical matrix that is the product of
// two much smaller factors, left (m×k) and right (k×n). The full m×n product
// is never materialized: every operation - indexing, slicing, transposition,
// reductions, row/column iteration - is re-derived algebraically in terms of
// the factors, so memory and compute stay proportional to the factors, not to
// their product.
//
// # Quick Start
//
//	left, _ := dense.FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
//	right, _ := dense.FromRows([][]float64{{1, 0, 1}, {0, 1, 1}})
//
//	m, err := facmat.New(left, right) // logical 3x3 matrix, never stored
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, _ := m.At(1, 2)          // 7
//	sums, _ := m.Sum(facmat.AxisCols) // [6 14 22]
//	total := m.SumAll()         // 42
//
// Slicing accepts the same selector shapes as conventional dense arrays -
// single (possibly negative) indices, ranges with step, explicit index lists:
//
//	block, _ := m.Slice(facmat.Range(0, 2), facmat.All())
//	rows, _ := m.Slice(facmat.Pick(2, 0), facmat.Index(-1))
//
// # Iteration
//
// IterRows, IterCols and their blocked variants produce rows, columns, or
// contiguous dense blocks on demand. Each call returns an independent
// iterator; consuming one does not disturb another. Blocked iterators follow
// the scanner idiom:
//
//	it := m.IterRowsBlocked(8)
//	for it.Next() {
//	    process(it.Block())
//	}
//	if err := it.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Loaders
//
// FromDelimitedFiles, FromContainerFiles, FromMappedFiles and FromBlobStore
// build a FactoredMatrix from two on-disk (or remote) factor arrays; see the
// matio and blobstore subpackages for the formats and storage backends.
//
// # Concurrency
//
// A FactoredMatrix is immutable after construction. T and Convert return new
// instances; no method mutates the receiver. Read-only methods are safe to
// call from multiple goroutines. A single iterator instance carries private
// cursor state and must not be driven concurrently without external
// synchronization.
package facmat
