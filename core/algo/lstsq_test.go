package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLeastSquaresRecoversLine fits y = 2x + 1 exactly.
func TestLeastSquaresRecoversLine(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	a := make([][]float64, len(xs))
	y := make([]float64, len(xs))
	w := make([]float64, len(xs))
	for i, x := range xs {
		a[i] = []float64{1, x}
		y[i] = 1 + 2*x
		w[i] = 1
	}

	coef, err := LeastSquares(a, y, w)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, coef[0], 1e-12)
	assert.InDelta(t, 2.0, coef[1], 1e-12)
}

// TestLeastSquaresWeighted checks that weights steer the fit: with all weight
// on two points, the line passes through them exactly.
func TestLeastSquaresWeighted(t *testing.T) {
	a := [][]float64{{1, 0}, {1, 1}, {1, 2}}
	y := []float64{0, 10, 4}
	w := []float64{1e6, 1e-6, 1e6}

	coef, err := LeastSquares(a, y, w)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, coef[0], 1e-3)
	assert.InDelta(t, 2.0, coef[1], 1e-3)
}

// TestLeastSquaresStepModel solves the two-level step model the same way the
// evaluator does and cross-checks against direct weighted means.
func TestLeastSquaresStepModel(t *testing.T) {
	inMask := []bool{true, false, false, true, false}
	y := []float64{0.8, 1.01, 0.99, 0.82, 1.0}
	w := []float64{4, 1, 2, 4, 1}

	a := make([][]float64, len(y))
	var sumIn, sumOut, wIn, wOut float64
	for i := range y {
		if inMask[i] {
			a[i] = []float64{0, 1}
			sumIn += y[i] * w[i]
			wIn += w[i]
		} else {
			a[i] = []float64{1, 0}
			sumOut += y[i] * w[i]
			wOut += w[i]
		}
	}

	coef, err := LeastSquares(a, y, w)
	require.NoError(t, err)
	assert.InDelta(t, sumOut/wOut, coef[0], 1e-12)
	assert.InDelta(t, sumIn/wIn, coef[1], 1e-12)
}

// TestLeastSquaresSingular checks the error path for rank-deficient designs.
func TestLeastSquaresSingular(t *testing.T) {
	a := [][]float64{{1, 2}, {2, 4}, {3, 6}}
	y := []float64{1, 2, 3}
	w := []float64{1, 1, 1}

	_, err := LeastSquares(a, y, w)
	assert.ErrorIs(t, err, ErrSingular)
}

// TestLeastSquaresBadInput checks the length validation.
func TestLeastSquaresBadInput(t *testing.T) {
	_, err := LeastSquares(nil, nil, nil)
	assert.Error(t, err)
	_, err = LeastSquares([][]float64{{1}}, []float64{1, 2}, []float64{1})
	assert.Error(t, err)
}

// TestStepFitMetrics spot-checks the derived fit quantities.
func TestStepFitMetrics(t *testing.T) {
	fit := stepFit{yIn: 0.8, yOut: 1.0, ivarIn: 100, ivarOut: 400}
	depth, depthErr, snr, loglike := fit.metrics()

	assert.InDelta(t, 0.2, depth, 1e-12)
	assert.InDelta(t, math.Sqrt(1.0/100+1.0/400), depthErr, 1e-12)
	assert.InDelta(t, depth/depthErr, snr, 1e-12)
	assert.InDelta(t, 0.5*100*0.04, loglike, 1e-12)

	assert.InDelta(t, loglike, fit.objective(true), 1e-12)
	assert.InDelta(t, snr, fit.objective(false), 1e-12)
}
