package dense

import "fmt"

// blockSize is the tile edge for the cache-blocked multiply. 64x64 float64
// tiles are 32KB, which keeps three tiles inside a typical L2 slice.
const blockSize = 64

// MatMul computes a @ b into a new matrix. It panics when the inner
// dimensions disagree; callers on the public surface validate shapes first.
func MatMul[T Number](a, b *Matrix[T]) *Matrix[T] {
	if a.cols != b.rows {
		panic(fmt.Sprintf("dense: MatMul inner dimension mismatch: %dx%d @ %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	out := &Matrix[T]{rows: a.rows, cols: b.cols, data: make([]T, a.rows*b.cols)}

	// i-k-j loop order with tiling: the innermost loop walks contiguous rows
	// of b and out, so every cache line is fully used.
	for i0 := 0; i0 < a.rows; i0 += blockSize {
		iEnd := min(i0+blockSize, a.rows)
		for k0 := 0; k0 < a.cols; k0 += blockSize {
			kEnd := min(k0+blockSize, a.cols)
			for j0 := 0; j0 < b.cols; j0 += blockSize {
				jEnd := min(j0+blockSize, b.cols)
				for i := i0; i < iEnd; i++ {
					arow := a.data[i*a.cols : (i+1)*a.cols]
					orow := out.data[i*b.cols : (i+1)*b.cols]
					for k := k0; k < kEnd; k++ {
						aik := arow[k]
						if aik == 0 {
							continue
						}
						brow := b.data[k*b.cols : (k+1)*b.cols]
						for j := j0; j < jEnd; j++ {
							orow[j] += aik * brow[j]
						}
					}
				}
			}
		}
	}
	return out
}

// MatVec computes a @ x, a vector of length a.rows.
func MatVec[T Number](a *Matrix[T], x []T) []T {
	if a.cols != len(x) {
		panic(fmt.Sprintf("dense: MatVec dimension mismatch: %dx%d @ %d", a.rows, a.cols, len(x)))
	}
	out := make([]T, a.rows)
	for i := 0; i < a.rows; i++ {
		out[i] = Dot(a.Row(i), x)
	}
	return out
}

// VecMat computes x @ b, a vector of length b.cols.
func VecMat[T Number](x []T, b *Matrix[T]) []T {
	if len(x) != b.rows {
		panic(fmt.Sprintf("dense: VecMat dimension mismatch: %d @ %dx%d", len(x), b.rows, b.cols))
	}
	out := make([]T, b.cols)
	for k, xk := range x {
		if xk == 0 {
			continue
		}
		brow := b.data[k*b.cols : (k+1)*b.cols]
		for j, v := range brow {
			out[j] += xk * v
		}
	}
	return out
}

// Dot computes the inner product of two equal-length vectors.
func Dot[T Number](a, b []T) T {
	if len(a) != len(b) {
		panic(fmt.Sprintf("dense: Dot length mismatch: %d vs %d", len(a), len(b)))
	}
	var s T
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
