// Package nnls solves nonnegative least-squares problems: min ‖Ax − b‖₂
// subject to x ≥ 0, using the Lawson–Hanson active-set method on the
// normal equations. On top of the core solver it provides NonnegativeRidge,
// an L2-regularized multi-target regressor whose coefficients are
// constrained to be nonnegative.
package nnls
