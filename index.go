package facmat

import "math"

// Auto marks an open range bound. Range(Auto, Auto) selects a whole axis;
// RangeStep(Auto, Auto, -1) walks it backwards.
const Auto = math.MinInt

// Sel selects positions along one logical axis. The built-in selectors are
// Index, Range, RangeStep, Pick and All; resolution against a concrete
// dimension length happens inside the FactoredMatrix operation that
// receives the selector.
type Sel interface {
	resolve(dim int) ([]int, error)
}

// Index selects a single position. Negative values wrap from the end, so
// Index(-1) is the last position.
func Index(i int) Sel { return indexSel(i) }

// Range selects the half-open range [start, stop) with step 1, resolved
// with conventional dense-array slicing semantics: negative bounds wrap,
// and out-of-range bounds clamp instead of failing. Use Auto for an open
// bound.
func Range(start, stop int) Sel { return rangeSel{start: start, stop: stop, step: 1} }

// RangeStep is Range with an explicit step. A negative step walks the axis
// backwards; step 0 fails with ErrZeroStep.
func RangeStep(start, stop, step int) Sel { return rangeSel{start: start, stop: stop, step: step} }

// Pick selects an explicit ordered list of positions. Each index wraps and
// is bounds-checked independently; order and duplicates are preserved.
func Pick(indices ...int) Sel { return listSel(indices) }

// All selects every position along the axis in ascending order.
func All() Sel { return rangeSel{start: Auto, stop: Auto, step: 1} }

// resolveIndex wraps a possibly negative index and bounds-checks it against
// a dimension of the given length.
func resolveIndex(i, dim int) (int, error) {
	r := i
	if r < 0 {
		r += dim
	}
	if r < 0 || r >= dim {
		return 0, &ErrIndexOutOfRange{Index: i, Dim: dim}
	}
	return r, nil
}

// resolveSel resolves a selector, treating nil as All().
func resolveSel(s Sel, dim int) ([]int, error) {
	if s == nil {
		s = All()
	}
	return s.resolve(dim)
}

type indexSel int

func (s indexSel) resolve(dim int) ([]int, error) {
	i, err := resolveIndex(int(s), dim)
	if err != nil {
		return nil, err
	}
	return []int{i}, nil
}

type listSel []int

func (s listSel) resolve(dim int) ([]int, error) {
	out := make([]int, len(s))
	for n, i := range s {
		r, err := resolveIndex(i, dim)
		if err != nil {
			return nil, err
		}
		out[n] = r
	}
	return out, nil
}

type rangeSel struct {
	start, stop, step int
}

func (s rangeSel) resolve(dim int) ([]int, error) {
	if s.step == 0 {
		return nil, ErrZeroStep
	}

	start, stop := s.start, s.stop
	if s.step > 0 {
		if start == Auto {
			start = 0
		} else if start < 0 {
			start += dim
		}
		if stop == Auto {
			stop = dim
		} else if stop < 0 {
			stop += dim
		}
		start = clamp(start, 0, dim)
		stop = clamp(stop, 0, dim)

		var out []int
		for i := start; i < stop; i += s.step {
			out = append(out, i)
		}
		return out, nil
	}

	// Negative step: defaults and clamping mirror reversed slicing, where
	// stop = -1 means "stop before position 0".
	if start == Auto {
		start = dim - 1
	} else if start < 0 {
		start += dim
	}
	if stop == Auto {
		stop = -1
	} else if stop < 0 {
		stop += dim
	}
	start = clamp(start, -1, dim-1)
	stop = clamp(stop, -1, dim-1)

	var out []int
	for i := start; i > stop; i += s.step {
		out = append(out, i)
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
