package filters

import "fmt"

// ChunkRange is the half-open interval [Start, End) of samples owned by one worker.
// Both ends are multiples of 3 so no pixel straddles two chunks.
type ChunkRange struct {
	Start int
	End   int
}

// Len returns the number of samples in the range.
func (r ChunkRange) Len() int { return r.End - r.Start }

func (r ChunkRange) check(total int) error {
	switch {
	case r.Start < 0 || r.End > total || r.Start > r.End:
		return fmt.Errorf("chunk [%d,%d) out of bounds for %d samples", r.Start, r.End, total)
	case r.Start%3 != 0 || r.End%3 != 0:
		return fmt.Errorf("chunk [%d,%d) splits a pixel", r.Start, r.End)
	}
	return nil
}

// Split divides [0, total) into workers contiguous ranges in order.
// Every range but the last holds total/(3*workers) whole pixels and the
// last one absorbs the remainder, so small inputs may leave leading ranges empty.
//
// Split panics if workers < 1 or total is negative or not a multiple of 3.
func Split(total, workers int) []ChunkRange {
	if workers < 1 {
		panic(fmt.Sprintf("filters: split into %d workers", workers))
	}
	if total < 0 || total%3 != 0 {
		panic(fmt.Sprintf("filters: split %d samples is not whole pixels", total))
	}
	base := total / (3 * workers) * 3
	ranges := make([]ChunkRange, workers)
	for i := range ranges {
		ranges[i] = ChunkRange{Start: i * base, End: (i + 1) * base}
	}
	ranges[workers-1].End = total
	return ranges
}
