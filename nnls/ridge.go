package nnls

import (
	"fmt"
	"math"

	"github.com/hupe1980/facmat/dense"
)

// NonnegativeRidge is an L2-regularized least-squares regressor whose
// coefficients are constrained to be nonnegative. With alpha = 0 it
// degenerates to plain nonnegative least squares.
//
// Ridge regularization is folded into the data: each target solves the
// augmented problem
//
//	min ‖ [X; √α·I]·w − [y; 0] ‖₂   subject to w ≥ 0
//
// which equals the penalized objective ‖Xw − y‖₂² + α‖w‖₂².
type NonnegativeRidge struct {
	// Alpha is the L2 penalty strength; must be ≥ 0.
	Alpha float64

	coef *dense.Matrix[float64] // features×targets, set by Fit
	res  []float64              // per-target residual norms
}

// fitOptions configure Fit.
type fitOptions struct {
	sampleWeight []float64
	solve        []SolveOption
}

// FitOption configures NonnegativeRidge.Fit.
type FitOption func(*fitOptions)

// WithSampleWeight weights each training sample. The weight vector must
// have one entry per row of X.
func WithSampleWeight(w []float64) FitOption {
	return func(o *fitOptions) {
		o.sampleWeight = w
	}
}

// WithSolveOptions forwards options to the underlying Solve calls.
func WithSolveOptions(opts ...SolveOption) FitOption {
	return func(o *fitOptions) {
		o.solve = append(o.solve, opts...)
	}
}

// Fit solves one nonnegative ridge problem per column of y.
// x is samples×features, y is samples×targets.
func (r *NonnegativeRidge) Fit(x, y *dense.Matrix[float64], opts ...FitOption) error {
	var o fitOptions
	for _, opt := range opts {
		opt(&o)
	}

	m, p := x.Dims()
	ym, t := y.Dims()
	if ym != m {
		return fmt.Errorf("%w: x has %d samples, y has %d", ErrShape, m, ym)
	}
	if r.Alpha < 0 {
		return fmt.Errorf("nnls: alpha must be nonnegative, got %g", r.Alpha)
	}
	if o.sampleWeight != nil && len(o.sampleWeight) != m {
		return fmt.Errorf("%w: %d sample weights for %d samples", ErrShape, len(o.sampleWeight), m)
	}

	// Sample weights scale rows of both sides by √w, the standard
	// weighted-least-squares reduction.
	if o.sampleWeight != nil {
		x = scaleRows(x, o.sampleWeight)
		y = scaleRows(y, o.sampleWeight)
	}

	aug := r.augment(x)

	coef := make([]float64, 0, p*t)
	cols := make([][]float64, t)
	res := make([]float64, t)
	rhs := make([]float64, m+augRows(r.Alpha, p))
	for j := 0; j < t; j++ {
		copy(rhs, y.Col(j))
		for i := m; i < len(rhs); i++ {
			rhs[i] = 0
		}
		w, rn, err := Solve(aug, rhs, o.solve...)
		if err != nil {
			return fmt.Errorf("nnls: target %d: %w", j, err)
		}
		cols[j] = w
		res[j] = rn
	}

	// Assemble features×targets.
	for i := 0; i < p; i++ {
		for j := 0; j < t; j++ {
			coef = append(coef, cols[j][i])
		}
	}
	cm, err := dense.FromSlice(p, t, coef)
	if err != nil {
		return err
	}
	r.coef = cm
	r.res = res
	return nil
}

// Coef returns the fitted features×targets coefficient matrix, or nil
// before Fit.
func (r *NonnegativeRidge) Coef() *dense.Matrix[float64] { return r.coef }

// Residuals returns the per-target residual norms of the augmented
// problems, or nil before Fit.
func (r *NonnegativeRidge) Residuals() []float64 { return r.res }

// Predict computes x @ coef for new samples.
func (r *NonnegativeRidge) Predict(x *dense.Matrix[float64]) (*dense.Matrix[float64], error) {
	if r.coef == nil {
		return nil, fmt.Errorf("nnls: model is not fitted")
	}
	_, p := x.Dims()
	cp, _ := r.coef.Dims()
	if p != cp {
		return nil, fmt.Errorf("%w: x has %d features, model has %d", ErrShape, p, cp)
	}
	return dense.MatMul(x, r.coef), nil
}

// augment stacks √α·I under x when alpha is positive.
func (r *NonnegativeRidge) augment(x *dense.Matrix[float64]) *dense.Matrix[float64] {
	m, p := x.Dims()
	extra := augRows(r.Alpha, p)
	if extra == 0 {
		return x
	}
	sq := math.Sqrt(r.Alpha)
	data := make([]float64, 0, (m+extra)*p)
	for i := 0; i < m; i++ {
		data = append(data, x.Row(i)...)
	}
	for i := 0; i < p; i++ {
		row := make([]float64, p)
		row[i] = sq
		data = append(data, row...)
	}
	aug, _ := dense.FromSlice(m+extra, p, data)
	return aug
}

func augRows(alpha float64, p int) int {
	if alpha > 0 {
		return p
	}
	return 0
}

// scaleRows returns a copy of m with row i multiplied by √w[i].
func scaleRows(m *dense.Matrix[float64], w []float64) *dense.Matrix[float64] {
	out := m.Clone()
	rows, _ := out.Dims()
	for i := 0; i < rows; i++ {
		sq := math.Sqrt(w[i])
		row := out.Row(i)
		for j := range row {
			row[j] *= sq
		}
	}
	return out
}
