package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periscan/periscan/core/algo"
	"github.com/periscan/periscan/internal/quantity"
)

func fixtureScalars() (period, duration, transitTime quantity.Scalar) {
	return quantity.Scalar{Value: fixtureParams.period},
		quantity.Scalar{Value: fixtureParams.duration},
		quantity.Scalar{Value: fixtureParams.transitTime}
}

func TestTransitMask(t *testing.T) {
	p := newFixturePeriodogram(t, 200)
	period, duration, transitTime := fixtureScalars()

	query := quantity.Plain([]float64{0.5, 1.5, 2.5, 0.58, 0.57, -1.5})
	mask, err := p.TransitMask(query, period, duration, transitTime)
	require.NoError(t, err)

	// Centers of consecutive transits are in, half-period offsets are out,
	// the trailing edge is exclusive, and negative times fold correctly.
	assert.Equal(t, []bool{true, false, true, false, true, true}, mask)
}

func TestTransitMaskMatchesFold(t *testing.T) {
	p := newFixturePeriodogram(t, 300)
	period, duration, transitTime := fixtureScalars()

	tt, _, _ := makeLightCurve(7, 300)
	mask, err := p.TransitMask(quantity.Plain(tt), period, duration, transitTime)
	require.NoError(t, err)

	for i, v := range tt {
		want := algo.FoldedPhaseDistance(v, fixtureParams.period, fixtureParams.transitTime) < 0.5*fixtureParams.duration
		assert.Equal(t, want, mask[i], "query time %v", v)
	}
}

func TestTransitMaskUnitConversion(t *testing.T) {
	tt, y, _ := makeLightCurve(42, 200)
	p, err := New(quantity.WithUnit(tt, quantity.Day), quantity.Plain(y), nil)
	require.NoError(t, err)

	mask, err := p.TransitMask(
		quantity.WithUnit([]float64{12.0, 36.0}, quantity.Hour),
		quantity.Scalar{Value: 2.0, Unit: quantity.Day},
		quantity.Scalar{Value: 0.16, Unit: quantity.Day},
		quantity.Scalar{Value: 12.0, Unit: quantity.Hour})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, mask)

	_, err = p.TransitMask(quantity.Plain([]float64{0.5}),
		quantity.Scalar{Value: 2.0, Unit: quantity.Mag},
		quantity.Scalar{Value: 0.16, Unit: quantity.Day},
		quantity.Scalar{Value: 0.5, Unit: quantity.Day})
	var unitErr *quantity.IncompatibleUnitsError
	assert.ErrorAs(t, err, &unitErr)
}

func TestModelTwoLevels(t *testing.T) {
	p := newFixturePeriodogram(t, 500)
	period, duration, transitTime := fixtureScalars()

	tt, _, _ := makeLightCurve(42, 500)
	model, err := p.Model(quantity.Plain(tt), period, duration, transitTime)
	require.NoError(t, err)

	mask, err := p.TransitMask(quantity.Plain(tt), period, duration, transitTime)
	require.NoError(t, err)

	var inLevel, outLevel float64
	seenIn, seenOut := false, false
	for i, v := range model.Strip() {
		if mask[i] {
			if seenIn {
				assert.Equal(t, inLevel, v)
			}
			inLevel, seenIn = v, true
		} else {
			if seenOut {
				assert.Equal(t, outLevel, v)
			}
			outLevel, seenOut = v, true
		}
	}
	require.True(t, seenIn)
	require.True(t, seenOut)
	assert.InDelta(t, 1.0, outLevel, 0.01)
	assert.InDelta(t, 1.0-fixtureParams.depth, inLevel, 0.01)
}

func TestModelCarriesFluxUnit(t *testing.T) {
	tt, y, _ := makeLightCurve(42, 200)
	p, err := New(quantity.WithUnit(tt, quantity.Day), quantity.WithUnit(y, quantity.Mag), nil)
	require.NoError(t, err)

	model, err := p.Model(
		quantity.WithUnit([]float64{0.5, 1.5}, quantity.Day),
		quantity.Scalar{Value: 2.0, Unit: quantity.Day},
		quantity.Scalar{Value: 0.16, Unit: quantity.Day},
		quantity.Scalar{Value: 0.5, Unit: quantity.Day})
	require.NoError(t, err)
	assert.Equal(t, quantity.Mag, model.Unit)
}

func TestModelWithoutInTransitPoints(t *testing.T) {
	// A fold that never covers an observation falls back to a constant at
	// the weighted mean.
	tArr := quantity.Plain([]float64{0.0, 1.0, 2.0, 3.0})
	yArr := quantity.Plain([]float64{1.0, 2.0, 3.0, 4.0})
	p, err := New(tArr, yArr, nil)
	require.NoError(t, err)

	model, err := p.Model(quantity.Plain([]float64{0.0, 0.5}),
		quantity.Scalar{Value: 1.0},
		quantity.Scalar{Value: 0.2},
		quantity.Scalar{Value: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, model.Values[0], 1e-12)
	assert.InDelta(t, 2.5, model.Values[1], 1e-12)
}
