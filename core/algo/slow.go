package algo

import "math"

// EvalSlow computes the periodogram by brute force: for every
// (period, duration, phase) triple it scans all points, builds the in-transit
// mask explicitly and solves the weighted step fit from the masked sums.
// O(N * periods * phases); the reference the fast method is calibrated
// against.
func EvalSlow(s Series, periods, durations []float64, oversample int, useLikelihood bool, workers int) Result {
	res := newResult(len(periods))

	var sumY, sumIVar float64
	for i := range s.Y {
		sumY += s.Y[i] * s.IVar[i]
		sumIVar += s.IVar[i]
	}

	forEachPeriod(len(periods), workers, func(pi int) {
		p := periods[pi]
		hp := 0.5 * p

		best := math.Inf(-1)
		var bestFit stepFit
		var bestT0, bestDur float64
		found := false

		for _, dur := range durations {
			dPhase := dur / float64(oversample)
			hd := 0.5 * dur
			nPhases := int(p/dPhase) + 1

			for n := range nPhases {
				t0 := float64(n) * dPhase

				var yIn, ivarIn float64
				for j := range s.T {
					if math.Abs(posMod(s.T[j]-t0+hp, p)-hp) < hd {
						yIn += s.Y[j] * s.IVar[j]
						ivarIn += s.IVar[j]
					}
				}
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
					bestT0 = t0
					bestDur = dur
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
