// Package stats computes descriptive statistics over integer samples.
package stats

import "sort"

// Summary holds descriptive statistics for a non-empty sample.
type Summary struct {
	Mean   float64
	Median float64
	Min    int
	Max    int
	Sum    int
}

// Summarize computes the summary over values. The second return value is
// false when values is empty; callers must not confuse that state with a
// zero-valued summary.
func Summarize(values []int) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}

	n := len(sorted)
	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	return Summary{
		Mean:   float64(sum) / float64(n),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Sum:    sum,
	}, true
}
