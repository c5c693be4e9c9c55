package core

import (
	"fmt"
	"math"

	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// Periodogram is a box least squares model bound to one light curve. It holds
// the observations and the precomputed quantities every search needs: times
// relative to the first observation, inverse-variance weights and the
// observation baseline.
type Periodogram struct {
	t  quantity.Array
	y  quantity.Array
	dy *quantity.Array

	tRef     float64
	trel     []float64
	ivar     []float64
	baseline float64
}

// New builds a Periodogram from observation times, fluxes and optional flux
// errors. The three arrays must be one-dimensional and share a length, and
// the errors must be unit-consistent with the fluxes: plain errors adopt the
// flux unit, unit-bearing errors are converted.
func New(t, y quantity.Array, dy *quantity.Array) (*Periodogram, error) {
	if t.NDim() > 1 || y.NDim() > 1 {
		return nil, &schema.ShapeError{Msg: "time and flux must be one-dimensional"}
	}
	if t.Len() == 0 {
		return nil, &schema.ShapeError{Msg: "time array must not be empty"}
	}
	if y.Len() != t.Len() {
		return nil, &schema.ShapeError{
			Msg: fmt.Sprintf("flux length %d does not match time length %d", y.Len(), t.Len()),
		}
	}
	if dy != nil {
		if dy.NDim() > 1 {
			return nil, &schema.ShapeError{Msg: "flux errors must be one-dimensional"}
		}
		if dy.Len() != t.Len() {
			return nil, &schema.ShapeError{
				Msg: fmt.Sprintf("flux error length %d does not match time length %d", dy.Len(), t.Len()),
			}
		}
		coerced, err := quantity.ValidateConsistency(y, *dy)
		if err != nil {
			return nil, err
		}
		dy = &coerced
	}

	p := &Periodogram{t: t, y: y, dy: dy}

	times := t.Strip()
	p.tRef = times[0]
	maxT := times[0]
	for _, v := range times {
		if v < p.tRef {
			p.tRef = v
		}
		if v > maxT {
			maxT = v
		}
	}
	p.baseline = maxT - p.tRef
	p.trel = make([]float64, len(times))
	for i, v := range times {
		p.trel[i] = v - p.tRef
	}

	p.ivar = make([]float64, t.Len())
	if dy != nil {
		for i, e := range dy.Strip() {
			p.ivar[i] = 1.0 / (e * e)
		}
	} else {
		for i := range p.ivar {
			p.ivar[i] = 1.0
		}
	}
	return p, nil
}

// TimeUnit returns the unit of the observation times, nil when plain.
func (p *Periodogram) TimeUnit() *quantity.Unit { return p.t.Unit }

// FluxUnit returns the unit of the fluxes, nil when plain.
func (p *Periodogram) FluxUnit() *quantity.Unit { return p.y.Unit }

// HasErrors reports whether flux errors were supplied.
func (p *Periodogram) HasErrors() bool { return p.dy != nil }

// Baseline returns the observation time span in the time unit.
func (p *Periodogram) Baseline() quantity.Scalar {
	return quantity.Scalar{Value: p.baseline, Unit: p.t.Unit}
}

// NumPoints returns the number of observations.
func (p *Periodogram) NumPoints() int { return p.t.Len() }

// validateDurations coerces trial durations against the time unit and checks
// that every value is positive.
func (p *Periodogram) validateDurations(durations quantity.Array) (quantity.Array, error) {
	durations, err := quantity.ValidateConsistency(p.t, durations)
	if err != nil {
		return quantity.Array{}, err
	}
	if durations.Len() == 0 {
		return quantity.Array{}, &schema.InvalidRangeError{Msg: "at least one duration is required"}
	}
	for _, d := range durations.Strip() {
		if !(d > 0) || math.IsInf(d, 0) {
			return quantity.Array{}, &schema.InvalidRangeError{
				Msg: fmt.Sprintf("durations must be finite and positive, got %v", d),
			}
		}
	}
	return durations, nil
}
