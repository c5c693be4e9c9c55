package schema

import "math"

// Len returns the number of trial periods in the result.
func (r *SearchResult) Len() int {
	return r.Period.Len()
}

// Rows flattens the result columns into Peak rows, preserving period order.
func (r *SearchResult) Rows() []Peak {
	rows := make([]Peak, r.Len())
	for i := range rows {
		rows[i] = Peak{
			Index:         i,
			Period:        r.Period.Values[i],
			Power:         r.Power.Values[i],
			Duration:      r.Duration.Values[i],
			TransitTime:   r.TransitTime.Values[i],
			Depth:         r.Depth.Values[i],
			DepthErr:      r.DepthErr.Values[i],
			DepthSNR:      r.DepthSNR.Values[i],
			LogLikelihood: r.LogLikelihood.Values[i],
		}
	}
	return rows
}

// BestIndex returns the index of the highest power entry. NaN entries are
// never selected. Returns -1 for an empty result.
func (r *SearchResult) BestIndex() int {
	best := -1
	bestPower := math.Inf(-1)
	for i, p := range r.Power.Values {
		if !math.IsNaN(p) && p > bestPower {
			best = i
			bestPower = p
		}
	}
	return best
}
