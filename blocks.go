package facmat

// Span is a contiguous half-open index range [Start, End) along one logical
// axis.
type Span struct {
	Start, End int
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Partition splits a dimension of the given length into nBlocks contiguous
// spans covering [0, length). Span sizes differ by at most one; the first
// length mod nBlocks spans receive the larger size. Partition fails with
// *ErrBlockCount when nBlocks is outside [1, length].
func Partition(length, nBlocks int) ([]Span, error) {
	if nBlocks < 1 || nBlocks > length {
		return nil, &ErrBlockCount{N: nBlocks, Dim: length}
	}
	size := length / nBlocks
	rem := length % nBlocks

	spans := make([]Span, nBlocks)
	start := 0
	for i := range spans {
		end := start + size
		if i < rem {
			end++
		}
		spans[i] = Span{Start: start, End: end}
		start = end
	}
	return spans, nil
}
