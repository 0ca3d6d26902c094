// Package stats computes the descriptive summary and histogram bins shown on
// the dashboard.
package stats

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Summary is the descriptive summary of a numeric column. Fields other than
// Count are NaN when they are not available: everything for an empty input,
// Std additionally for a single observation.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe computes count, mean, sample standard deviation, extrema and
// quartiles of the given values. Quartiles use linear interpolation between
// closest ranks.
func Describe(values []float64) Summary {
	n := len(values)
	s := Summary{
		Count:  n,
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Q25:    math.NaN(),
		Median: math.NaN(),
		Q75:    math.NaN(),
		Max:    math.NaN(),
	}
	if n == 0 {
		return s
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(values, nil)
	if n >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[n-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.50)
	s.Q75 = quantile(sorted, 0.75)

	return s
}

// quantile interpolates linearly between the closest ranks of the sorted
// sample: index = p*(n-1).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lo := int(math.Floor(idx))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Row is one display line of the summary table.
type Row struct {
	Statistic string
	Value     string
}

// Rows renders the summary in the conventional describe order. Unavailable
// statistics render as "n/a".
func (s Summary) Rows() []Row {
	fmtVal := func(v float64) string {
		if math.IsNaN(v) {
			return "n/a"
		}
		return strconv.FormatFloat(v, 'f', 6, 64)
	}

	return []Row{
		{"count", strconv.Itoa(s.Count)},
		{"mean", fmtVal(s.Mean)},
		{"std", fmtVal(s.Std)},
		{"min", fmtVal(s.Min)},
		{"25%", fmtVal(s.Q25)},
		{"50%", fmtVal(s.Median)},
		{"75%", fmtVal(s.Q75)},
		{"max", fmtVal(s.Max)},
	}
}
