package service

import (
	"math"
	"sort"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pct returns n as a percentage of d, rounded to one decimal, and 0 when the
// denominator is empty.
func pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round1(float64(n) / float64(d) * 100)
}

// mean returns the average of vs, or nil for an empty list. "No data" must
// stay distinguishable from an average of zero.
func mean(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	m := sum / float64(len(vs))
	return &m
}

// median returns the sorted midpoint of vs, averaging the two middle values
// for even lengths, or nil for an empty list.
func median(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}

// secondsToHours converts an aggregated seconds value to hours, rounded to
// two decimals. Aggregation itself always runs in seconds.
func secondsToHours(seconds *float64) *float64 {
	if seconds == nil {
		return nil
	}
	h := round2(*seconds / 3600)
	return &h
}
