package core

import (
	"fmt"
	"math"

	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// Default grid parameters.
const (
	DefaultMinimumNTransit = 3
	DefaultFrequencyFactor = 1.0
)

// GridOptions controls automatic period grid generation. Zero values select
// the documented defaults; explicit period bounds override them.
type GridOptions struct {
	MinimumPeriod   *quantity.Scalar // default: twice the longest duration
	MaximumPeriod   *quantity.Scalar // default: the observation baseline
	MinimumNTransit int              // default: 3
	FrequencyFactor float64          // default: 1.0
}

// Autoperiod builds a heuristic trial period grid for the given durations.
// The grid is uniform in frequency with step
// frequency_factor * min(duration) / baseline^2, runs from the minimum to
// the maximum period, and is returned in increasing period order. Swapped
// explicit bounds are sorted rather than rejected.
func (p *Periodogram) Autoperiod(durations quantity.Array, opts GridOptions) (quantity.Array, error) {
	durations, err := p.validateDurations(durations)
	if err != nil {
		return quantity.Array{}, err
	}

	nTransit := opts.MinimumNTransit
	if nTransit == 0 {
		nTransit = DefaultMinimumNTransit
	}
	if nTransit < 1 {
		return quantity.Array{}, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("minimum transit count must be at least 1, got %d", nTransit),
		}
	}
	ff := opts.FrequencyFactor
	if ff == 0 {
		ff = DefaultFrequencyFactor
	}
	if !(ff > 0) {
		return quantity.Array{}, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("frequency factor must be positive, got %v", ff),
		}
	}

	minDur, maxDur := minMax(durations.Strip())

	minPeriod := 2.0 * maxDur
	if opts.MinimumPeriod != nil {
		s, err := quantity.ValidateScalarConsistency(p.t, *opts.MinimumPeriod)
		if err != nil {
			return quantity.Array{}, err
		}
		minPeriod = s.Value
	}
	maxPeriod := p.baseline
	if opts.MaximumPeriod != nil {
		s, err := quantity.ValidateScalarConsistency(p.t, *opts.MaximumPeriod)
		if err != nil {
			return quantity.Array{}, err
		}
		maxPeriod = s.Value
	}
	if minPeriod > maxPeriod {
		minPeriod, maxPeriod = maxPeriod, minPeriod
	}
	if !(minPeriod > 0) {
		return quantity.Array{}, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("minimum period must be positive, got %v", minPeriod),
		}
	}
	if minPeriod >= maxPeriod {
		return quantity.Array{}, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("minimum period %v must be below maximum period %v", minPeriod, maxPeriod),
		}
	}

	fMax := 1.0 / minPeriod
	fMin := math.Max(1.0/maxPeriod, float64(nTransit)/p.baseline)
	if fMin >= fMax {
		return quantity.Array{}, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("no periods between %v and the transit count limit %v",
				minPeriod, p.baseline/float64(nTransit)),
		}
	}

	df := gridFrequencyStep(ff, minDur, p.baseline)
	nf := 1 + int(math.Round((fMax-fMin)/df))
	periods := make([]float64, nf)
	for i := range periods {
		periods[i] = 1.0 / (fMax - df*float64(i))
	}
	return quantity.WithUnit(periods, p.t.Unit), nil
}

// gridFrequencyStep is the uniform frequency spacing of the auto grid.
func gridFrequencyStep(frequencyFactor, minDuration, baseline float64) float64 {
	return frequencyFactor * minDuration / (baseline * baseline)
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
