package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periscan/periscan/core/algo"
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// boxParams is the injected signal used by the synthetic fixtures.
type boxParams struct {
	period      float64
	duration    float64
	transitTime float64
	depth       float64
}

var fixtureParams = boxParams{period: 2.0, duration: 0.16, transitTime: 0.5, depth: 0.2}

// makeLightCurve builds a seeded synthetic light curve with one box transit.
// The first sample sits at t=0 so the reference epoch is exactly zero. The
// injected noise is well below the claimed per-point error, which keeps the
// statistical assertions far from their thresholds.
func makeLightCurve(seed int64, n int) (t, y, dy []float64) {
	rng := rand.New(rand.NewSource(seed))
	t = make([]float64, n)
	y = make([]float64, n)
	dy = make([]float64, n)
	for i := 1; i < n; i++ {
		t[i] = 10.0 * rng.Float64()
	}
	for i := range t {
		dy[i] = 0.005 + 0.005*rng.Float64()
		y[i] = 1.0
		if algo.FoldedPhaseDistance(t[i], fixtureParams.period, fixtureParams.transitTime) < 0.5*fixtureParams.duration {
			y[i] -= fixtureParams.depth
		}
		y[i] += 0.3 * dy[i] * rng.NormFloat64()
	}
	return t, y, dy
}

func TestNewValidatesShapes(t *testing.T) {
	tt, y, dy := makeLightCurve(42, 50)

	tests := []struct {
		name string
		t    quantity.Array
		y    quantity.Array
		dy   *quantity.Array
	}{
		{"empty input", quantity.Plain(nil), quantity.Plain(nil), nil},
		{"length mismatch", quantity.Plain(tt), quantity.Plain(y[:10]), nil},
		{"error length mismatch", quantity.Plain(tt), quantity.Plain(y), &quantity.Array{Values: dy[:10]}},
		{"two dimensional flux", quantity.Plain(tt[:6]), quantity.Array{Values: y[:6], Shape: []int{2, 3}}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.t, tc.y, tc.dy)
			var shapeErr *schema.ShapeError
			assert.ErrorAs(t, err, &shapeErr)
		})
	}
}

func TestNewValidatesUnits(t *testing.T) {
	tt, y, dy := makeLightCurve(42, 50)

	tests := []struct {
		name   string
		yUnit  *quantity.Unit
		dyUnit *quantity.Unit
		ok     bool
	}{
		{"plain flux plain errors", nil, nil, true},
		{"mag flux plain errors adopt unit", quantity.Mag, nil, true},
		{"mag flux mag errors", quantity.Mag, quantity.Mag, true},
		{"mag flux dimensionless errors", quantity.Mag, quantity.One, false},
		{"mag flux time errors", quantity.Mag, quantity.Day, false},
		{"plain flux mag errors", nil, quantity.Mag, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errArr := quantity.WithUnit(dy, tc.dyUnit)
			p, err := New(quantity.WithUnit(tt, quantity.Day), quantity.WithUnit(y, tc.yUnit), &errArr)
			if !tc.ok {
				var unitErr *quantity.IncompatibleUnitsError
				assert.ErrorAs(t, err, &unitErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.yUnit, p.FluxUnit())
			assert.True(t, p.HasErrors())
		})
	}
}

func TestPeriodogramAccessors(t *testing.T) {
	tt := []float64{3.0, 1.0, 7.5}
	y := []float64{1.0, 1.0, 1.0}

	p, err := New(quantity.WithUnit(tt, quantity.Day), quantity.Plain(y), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, p.NumPoints())
	assert.Equal(t, quantity.Day, p.TimeUnit())
	assert.Nil(t, p.FluxUnit())
	assert.False(t, p.HasErrors())

	baseline := p.Baseline()
	assert.InDelta(t, 6.5, baseline.Value, 1e-12)
	assert.Equal(t, quantity.Day, baseline.Unit)
}
