package nnls

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/facmat/dense"
)

var (
	// ErrShape is returned when the problem dimensions disagree.
	ErrShape = errors.New("nnls: incompatible shapes")

	// ErrMaxIterations is returned when the active-set loop does not
	// converge within the iteration budget.
	ErrMaxIterations = errors.New("nnls: maximum iterations exceeded")

	// ErrSingular is returned when the passive-set normal equations are
	// numerically singular, usually from linearly dependent columns.
	ErrSingular = errors.New("nnls: singular normal equations")
)

// solveOptions configure Solve.
type solveOptions struct {
	maxIter int
	tol     float64
}

// SolveOption configures the active-set solver.
type SolveOption func(*solveOptions)

// WithMaxIterations caps the active-set iterations. The default is 3·n.
func WithMaxIterations(n int) SolveOption {
	return func(o *solveOptions) {
		if n > 0 {
			o.maxIter = n
		}
	}
}

// WithTolerance sets the dual-feasibility tolerance used to decide when a
// coordinate may leave the active set.
func WithTolerance(tol float64) SolveOption {
	return func(o *solveOptions) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// Solve computes x ≥ 0 minimizing ‖a·x − b‖₂ with the Lawson–Hanson
// active-set method. It returns the solution and the residual norm
// ‖a·x − b‖₂.
func Solve(a *dense.Matrix[float64], b []float64, opts ...SolveOption) ([]float64, float64, error) {
	m, n := a.Dims()
	if len(b) != m {
		return nil, 0, fmt.Errorf("%w: matrix has %d rows, vector has %d", ErrShape, m, len(b))
	}

	o := solveOptions{maxIter: 3 * n, tol: defaultTol(a)}
	for _, opt := range opts {
		opt(&o)
	}

	// Form the normal equations once; every passive-set subproblem solves
	// against a submatrix of ata.
	ata := grammian(a)
	atb := dense.MatVec(a.Transpose(), b)

	x := make([]float64, n)
	w := make([]float64, n)    // dual vector AT(b − Ax)
	passive := make([]bool, n) // true for coordinates free to move

	for iter := 0; ; iter++ {
		if iter > o.maxIter {
			return nil, 0, ErrMaxIterations
		}

		// w = ATb − ATA·x, restricted to the active set.
		dual(w, ata, atb, x)
		j, wmax := -1, o.tol
		for i := 0; i < n; i++ {
			if !passive[i] && w[i] > wmax {
				j, wmax = i, w[i]
			}
		}
		if j < 0 {
			// Kuhn-Tucker conditions hold.
			break
		}
		passive[j] = true

		// Inner loop: re-solve the passive-set subproblem until the
		// unconstrained solution is feasible.
		for {
			s, err := solvePassive(ata, atb, passive)
			if err != nil {
				return nil, 0, err
			}

			feasible := true
			alpha := math.Inf(1)
			for i := 0; i < n; i++ {
				if passive[i] && s[i] <= 0 {
					feasible = false
					if t := x[i] / (x[i] - s[i]); t < alpha {
						alpha = t
					}
				}
			}
			if feasible {
				copy(x, s)
				break
			}

			// Step toward s until the first coordinate hits zero, then
			// retire every zeroed coordinate to the active set.
			for i := 0; i < n; i++ {
				if passive[i] {
					x[i] += alpha * (s[i] - x[i])
					if x[i] <= 0 {
						x[i] = 0
						passive[i] = false
					}
				}
			}

			if iter++; iter > o.maxIter {
				return nil, 0, ErrMaxIterations
			}
		}
	}

	return x, residualNorm(a, x, b), nil
}

// defaultTol scales machine epsilon by the problem magnitude, matching the
// usual active-set stopping heuristic.
func defaultTol(a *dense.Matrix[float64]) float64 {
	m, n := a.Dims()
	var amax float64
	for i := 0; i < m; i++ {
		for _, v := range a.Row(i) {
			if av := math.Abs(v); av > amax {
				amax = av
			}
		}
	}
	dim := m
	if n > dim {
		dim = n
	}
	tol := 10 * 2.220446049250313e-16 * amax * float64(dim)
	if tol == 0 {
		tol = 1e-12
	}
	return tol
}

// grammian computes ATA as a dense n×n matrix.
func grammian(a *dense.Matrix[float64]) *dense.Matrix[float64] {
	at := a.Transpose()
	return dense.MatMul(at, a)
}

// dual computes w = atb − ata·x.
func dual(w []float64, ata *dense.Matrix[float64], atb, x []float64) {
	ax := dense.MatVec(ata, x)
	for i := range w {
		w[i] = atb[i] - ax[i]
	}
}

// solvePassive solves the normal equations restricted to the passive set
// with Gaussian elimination and partial pivoting, scattering the result
// back to full length with zeros on the active coordinates.
func solvePassive(ata *dense.Matrix[float64], atb []float64, passive []bool) ([]float64, error) {
	n := len(atb)
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if passive[i] {
			idx = append(idx, i)
		}
	}
	k := len(idx)

	// Build the packed augmented system [ATA_PP | ATb_P].
	aug := make([][]float64, k)
	for r, i := range idx {
		row := make([]float64, k+1)
		src := ata.Row(i)
		for c, j := range idx {
			row[c] = src[j]
		}
		row[k] = atb[i]
		aug[r] = row
	}

	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		if math.Abs(aug[col][col]) < 1e-14 {
			return nil, ErrSingular
		}
		for r := col + 1; r < k; r++ {
			f := aug[r][col] / aug[col][col]
			if f == 0 {
				continue
			}
			for c := col; c <= k; c++ {
				aug[r][c] -= f * aug[col][c]
			}
		}
	}

	packed := make([]float64, k)
	for r := k - 1; r >= 0; r-- {
		v := aug[r][k]
		for c := r + 1; c < k; c++ {
			v -= aug[r][c] * packed[c]
		}
		packed[r] = v / aug[r][r]
	}

	s := make([]float64, n)
	for r, i := range idx {
		s[i] = packed[r]
	}
	return s, nil
}

// residualNorm computes ‖a·x − b‖₂.
func residualNorm(a *dense.Matrix[float64], x, b []float64) float64 {
	ax := dense.MatVec(a, x)
	var sum float64
	for i := range ax {
		d := ax[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
