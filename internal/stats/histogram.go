package stats

// Bin is one histogram bucket over the half-open interval [Lo, Hi), with the
// last bucket closed on both ends.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram buckets the values into nbins equal-width bins spanning
// [min, max]. An empty input yields no bins; a constant input yields a
// single bin holding every value.
func Histogram(values []float64, nbins int) []Bin {
	if len(values) == 0 || nbins <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(nbins)
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[nbins-1].Hi = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		bins[idx].Count++
	}

	return bins
}
