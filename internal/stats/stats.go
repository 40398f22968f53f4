// Package stats provides the small numeric helpers the aggregators need:
// a gini coefficient over chip distributions, an accumulating summary for
// per-player results, and counted distributions for cards and hand types.
package stats

import (
	"math"
	"sort"
)

// Gini computes the gini coefficient of a chip distribution: 0 when every
// player holds the same amount, approaching 1 when one player holds nearly
// everything.
func Gini(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var total, weighted float64
	for i, v := range sorted {
		total += v
		weighted += float64(i+1) * v
	}
	if total == 0 {
		return 0
	}
	return (2*weighted)/(n*total) - (n+1)/n
}

// Summary accumulates a stream of values and derives mean, variance and
// percentiles on demand.
type Summary struct {
	Count  int
	Sum    float64
	Sum2   float64
	Values []float64
}

// Add incorporates one value.
func (s *Summary) Add(v float64) {
	s.Count++
	s.Sum += v
	s.Sum2 += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean of all values.
func (s *Summary) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance.
func (s *Summary) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Count)*mean*mean) / float64(s.Count-1)
}

// StdDev returns the sample standard deviation.
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Percentile returns the value at the given percentile (0.0 to 1.0) using
// linear interpolation between closest ranks.
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Median returns the 50th percentile.
func (s *Summary) Median() float64 {
	return s.Percentile(0.5)
}
