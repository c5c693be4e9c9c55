package core

import (
	"fmt"

	"github.com/periscan/periscan/core/algo"
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// modelParams converts a (period, duration, transit time) choice to plain
// values in the time unit.
func (p *Periodogram) modelParams(period, duration, transitTime quantity.Scalar) (float64, float64, float64, error) {
	ps, err := quantity.ValidateScalarConsistency(p.t, period)
	if err != nil {
		return 0, 0, 0, err
	}
	ds, err := quantity.ValidateScalarConsistency(p.t, duration)
	if err != nil {
		return 0, 0, 0, err
	}
	ts, err := quantity.ValidateScalarConsistency(p.t, transitTime)
	if err != nil {
		return 0, 0, 0, err
	}
	if !(ps.Value > 0) || !(ds.Value > 0) {
		return 0, 0, 0, &schema.InvalidRangeError{Msg: "period and duration must be positive"}
	}
	return ps.Value, ds.Value, ts.Value, nil
}

// TransitMask reports which of the query times fall inside a transit of the
// given box model, by strict modular phase folding.
func (p *Periodogram) TransitMask(times quantity.Array, period, duration, transitTime quantity.Scalar) ([]bool, error) {
	times, err := quantity.ValidateConsistency(p.t, times)
	if err != nil {
		return nil, err
	}
	per, dur, tt, err := p.modelParams(period, duration, transitTime)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, times.Len())
	for i, t := range times.Strip() {
		mask[i] = algo.FoldedPhaseDistance(t, per, tt) < 0.5*dur
	}
	return mask, nil
}

// Model fits the two-level box model to the observed light curve by weighted
// least squares and evaluates it at the query times. The result carries the
// flux unit.
func (p *Periodogram) Model(times quantity.Array, period, duration, transitTime quantity.Scalar) (quantity.Array, error) {
	times, err := quantity.ValidateConsistency(p.t, times)
	if err != nil {
		return quantity.Array{}, err
	}
	per, dur, tt, err := p.modelParams(period, duration, transitTime)
	if err != nil {
		return quantity.Array{}, err
	}

	y := p.y.Strip()
	design := make([][]float64, p.t.Len())
	nIn := 0
	for i, t := range p.t.Strip() {
		if algo.FoldedPhaseDistance(t, per, tt) < 0.5*dur {
			design[i] = []float64{1, 1}
			nIn++
		} else {
			design[i] = []float64{1, 0}
		}
	}

	var yOut, yIn float64
	if nIn == 0 || nIn == len(y) {
		// Degenerate fold, the box offset is unconstrained. Fall back to the
		// weighted mean everywhere.
		var num, den float64
		for i, v := range y {
			num += v * p.ivar[i]
			den += p.ivar[i]
		}
		yOut = num / den
		yIn = yOut
	} else {
		coef, err := algo.LeastSquares(design, y, p.ivar)
		if err != nil {
			return quantity.Array{}, fmt.Errorf("box model fit: %w", err)
		}
		yOut = coef[0]
		yIn = coef[0] + coef[1]
	}

	model := make([]float64, times.Len())
	for i, t := range times.Strip() {
		if algo.FoldedPhaseDistance(t, per, tt) < 0.5*dur {
			model[i] = yIn
		} else {
			model[i] = yOut
		}
	}
	return quantity.WithUnit(model, p.y.Unit), nil
}
