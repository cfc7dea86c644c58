package analysis_metrics

import "sort"

// Interval is one closed task execution window in seconds.
type Interval struct {
	StartSec float64
	EndSec   float64
}

// MergeIntervals collapses possibly-overlapping, possibly-unordered intervals
// into a non-overlapping set sorted by start. Touching intervals are merged.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartSec < sorted[j].StartSec
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.StartSec <= last.EndSec {
			if next.EndSec > last.EndSec {
				last.EndSec = next.EndSec
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// TotalCoverageSec is the total seconds covered by the union of the intervals.
func TotalCoverageSec(intervals []Interval) float64 {
	var total float64
	for _, iv := range MergeIntervals(intervals) {
		total += iv.EndSec - iv.StartSec
	}
	return total
}
