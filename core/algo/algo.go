// Package algo implements the box-fit evaluation algorithms behind the
// periodogram search: an exact reference method that scans every point for
// every candidate phase, and an accelerated method that bins the phase-folded
// data and slides the transit window with cumulative sums. Both solve the
// same weighted least squares step-function fit and agree within
// floating-point tolerance.
package algo

import (
	"math"
	"sync"
)

// Series is the observed time series prepared for evaluation. Times are
// relative to the first observation and weights are inverse variances
// (uniform 1.0 when no errors were supplied).
type Series struct {
	T    []float64
	Y    []float64
	IVar []float64
}

// Result holds the per-period best box fit. All slices share the order of
// the trial period array passed to the evaluator.
type Result struct {
	Power         []float64
	Depth         []float64
	DepthErr      []float64
	DepthSNR      []float64
	LogLikelihood []float64
	TransitTime   []float64
	Duration      []float64
}

func newResult(n int) Result {
	return Result{
		Power:         make([]float64, n),
		Depth:         make([]float64, n),
		DepthErr:      make([]float64, n),
		DepthSNR:      make([]float64, n),
		LogLikelihood: make([]float64, n),
		TransitTime:   make([]float64, n),
		Duration:      make([]float64, n),
	}
}

// setNaN marks a period as having no valid fit. The NaN power entry can
// never win the downstream argmax.
func (r *Result) setNaN(i int) {
	nan := math.NaN()
	r.Power[i] = nan
	r.Depth[i] = nan
	r.DepthErr[i] = nan
	r.DepthSNR[i] = nan
	r.LogLikelihood[i] = nan
	r.TransitTime[i] = nan
	r.Duration[i] = nan
}

// stepFit summarizes the weighted two-level fit for one candidate window:
// the in- and out-of-transit weighted flux means and their total weights.
type stepFit struct {
	yIn     float64
	yOut    float64
	ivarIn  float64
	ivarOut float64
}

// metrics derives the public fit quantities. The log-likelihood is the
// improvement of the two-level model over a flat model at the out-of-transit
// level, which reduces to 0.5 * w_in * depth^2 for a weighted mean fit.
func (f stepFit) metrics() (depth, depthErr, snr, loglike float64) {
	depth = f.yOut - f.yIn
	depthErr = math.Sqrt(1.0/f.ivarIn + 1.0/f.ivarOut)
	snr = depth / depthErr
	loglike = 0.5 * f.ivarIn * depth * depth
	return depth, depthErr, snr, loglike
}

// objective returns the scalar used to rank candidate windows.
func (f stepFit) objective(useLikelihood bool) float64 {
	depth := f.yOut - f.yIn
	if useLikelihood {
		return 0.5 * f.ivarIn * depth * depth
	}
	return depth / math.Sqrt(1.0/f.ivarIn+1.0/f.ivarOut)
}

// store writes the winning fit for period index i into the result.
func (r *Result) store(i int, fit stepFit, power, transitTime, duration float64) {
	depth, depthErr, snr, loglike := fit.metrics()
	r.Power[i] = power
	r.Depth[i] = depth
	r.DepthErr[i] = depthErr
	r.DepthSNR[i] = snr
	r.LogLikelihood[i] = loglike
	r.TransitTime[i] = transitTime
	r.Duration[i] = duration
}

// posMod returns x mod p in [0, p). Go's math.Mod keeps the dividend's sign,
// which breaks phase folding for query times before the reference epoch.
func posMod(x, p float64) float64 {
	m := math.Mod(x, p)
	if m < 0 {
		m += p
	}
	return m
}

// FoldedPhaseDistance returns the absolute distance from the nearest transit
// center under modular phase folding. A point is in transit when the
// returned distance is below half the transit duration.
func FoldedPhaseDistance(t, period, transitTime float64) float64 {
	hp := 0.5 * period
	return math.Abs(posMod(t-transitTime+hp, period) - hp)
}

// forEachPeriod fans period indices out to a worker pool. Each worker writes
// only its own period index, so the per-period argmax stays deterministic and
// the tie-break rule is unaffected by scheduling.
func forEachPeriod(n, workers int, fn func(i int)) {
	if workers <= 1 || n <= 1 {
		for i := range n {
			fn(i)
		}
		return
	}
	idxCh := make(chan int, n)
	var wg sync.WaitGroup
	for range min(workers, n) {
		wg.Go(func() {
			for i := range idxCh {
				fn(i)
			}
		})
	}
	for i := range n {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()
}
