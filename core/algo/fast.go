package algo

import "math"

// EvalFast computes the periodogram with the binned algorithm: the
// phase-folded weighted flux is accumulated once per period into bins of
// width min(duration)/oversample, the first bins are replicated past the end
// of the fold so windows can wrap, and cumulative sums turn every window's
// in-transit totals into two array lookups.
//
// All accumulation runs in float64 even when the caller's source data was
// measured at lower precision; truncating the cumulative sums is a known way
// to corrupt results on large inputs.
func EvalFast(s Series, periods, durations []float64, oversample int, useLikelihood bool, workers int) Result {
	res := newResult(len(periods))

	minDuration := durations[0]
	for _, d := range durations[1:] {
		if d < minDuration {
			minDuration = d
		}
	}
	binDuration := minDuration / float64(oversample)

	var sumY, sumIVar float64
	for i := range s.Y {
		sumY += s.Y[i] * s.IVar[i]
		sumIVar += s.IVar[i]
	}

	forEachPeriod(len(periods), workers, func(pi int) {
		p := periods[pi]
		nFull := int(p / binDuration)
		nBins := nFull + oversample

		// Cumulative-sum arrays with a zero sentinel at index 0.
		binY := make([]float64, nBins+1)
		binIVar := make([]float64, nBins+1)
		for j := range s.T {
			ind := int(posMod(s.T[j], p)/binDuration) + 1
			binY[ind] += s.Y[j] * s.IVar[j]
			binIVar[ind] += s.IVar[j]
		}

		// Replicate the leading bins after the end of the fold so a window
		// sliding past the period boundary picks up the wrapped points. The
		// partial last bin keeps its own contents.
		for n := 1; n <= oversample; n++ {
			binY[nFull+n] += binY[n]
			binIVar[nFull+n] += binIVar[n]
		}
		for n := 1; n <= nBins; n++ {
			binY[n] += binY[n-1]
			binIVar[n] += binIVar[n-1]
		}

		best := math.Inf(-1)
		var bestFit stepFit
		var bestT0, bestDur float64
		found := false

		for _, dur := range durations {
			k := int(math.Round(dur / binDuration))
			windowDur := float64(k) * binDuration

			for n := 0; n+k <= nBins; n++ {
				yIn := binY[n+k] - binY[n]
				ivarIn := binIVar[n+k] - binIVar[n]
				ivarOut := sumIVar - ivarIn
				if ivarIn <= 0 || ivarOut <= 0 {
					continue
				}

				fit := stepFit{
					yIn:     yIn / ivarIn,
					yOut:    (sumY - yIn) / ivarOut,
					ivarIn:  ivarIn,
					ivarOut: ivarOut,
				}
				if obj := fit.objective(useLikelihood); obj > best {
					best = obj
					bestFit = fit
					bestT0 = posMod((float64(n)+0.5*float64(k))*binDuration, p)
					bestDur = windowDur
					found = true
				}
			}
		}

		if !found {
			res.setNaN(pi)
			return
		}
		res.store(pi, bestFit, best, bestT0, bestDur)
	})

	return res
}
