// Package dense provides row-major dense matrices over the numeric element
// types supported by facmat.
//
// Matrix is a generic, flat-backed 2-D array. It is the storage substrate for
// the factored representation in the root package and the exchange type for
// every materialized slice, row, column, or block.
//
// # Design
//
//   - Row-major flat storage (offset = i*cols + j) for cache-friendly
//     multiplication and zero-copy row views.
//   - Constructors validate shape; accessors (At, Set, Row) panic on
//     out-of-range indices like the standard slice operations they wrap.
//     Error-returning index validation lives one level up, at the facmat
//     public surface.
//   - Multiplication uses a cache-tiled kernel; see matmul.go.
//
// # Element Types
//
// The Number constraint covers int32, int64, float32 and float64 - the four
// element types the container file format can describe. DType is the runtime
// tag used by I/O headers and by the facmat DType property.
package dense
