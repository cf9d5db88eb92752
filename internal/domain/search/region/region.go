// Package region holds highlight spans and merges overlapping ones.
package region

import (
	"fmt"
	"sort"
)

// Region is a half-open [Start, End) span of character offsets.
type Region struct {
	Start int
	End   int
}

// New creates a region. start must be >= 0 and strictly less than end.
func New(start, end int) (Region, error) {
	if start < 0 {
		return Region{}, fmt.Errorf("region start must be >= 0, got %d", start)
	}
	if start >= end {
		return Region{}, fmt.Errorf("region start %d must be less than end %d", start, end)
	}
	return Region{Start: start, End: end}, nil
}

// Len returns the number of characters covered.
func (r Region) Len() int { return r.End - r.Start }

// MarshalJSON encodes the region as a [start, end] pair.
func (r Region) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d]", r.Start, r.End)), nil
}

// Coalesce merges overlapping regions into the minimal sorted set of disjoint
// regions. Regions that only touch (next.Start == cur.End) stay separate.
// The input slice is left untouched; empty input is returned as is.
func Coalesce(regions []Region) []Region {
	if len(regions) == 0 {
		return regions
	}

	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Region, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start < cur.End {
			cur.End = max(cur.End, next.End)
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}
