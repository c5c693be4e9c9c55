package core

import (
	"math"

	"github.com/periscan/periscan/core/algo"
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// ComputeStats evaluates the post-fit diagnostics for one choice of period,
// duration and transit time: transit center times over the baseline, the
// number of observations and log-likelihood contribution per transit, depth
// estimates from several control folds, and a first-harmonic sinusoid fit
// compared against the box model.
func (p *Periodogram) ComputeStats(period, duration, transitTime quantity.Scalar) (*schema.TransitStats, error) {
	per, dur, tt, err := p.modelParams(period, duration, transitTime)
	if err != nil {
		return nil, err
	}

	t := p.t.Strip()
	y := p.y.Strip()
	halfDur := 0.5 * dur

	mIn := make([]bool, len(t))
	var sumYOut, sumWOut, sumYIn, sumWIn float64
	for i, ti := range t {
		if algo.FoldedPhaseDistance(ti, per, tt) < halfDur {
			mIn[i] = true
			sumYIn += y[i] * p.ivar[i]
			sumWIn += p.ivar[i]
		} else {
			sumYOut += y[i] * p.ivar[i]
			sumWOut += p.ivar[i]
		}
	}
	yOut := sumYOut / sumWOut
	yIn := sumYIn / sumWIn
	varOut := 1.0 / sumWOut

	// Control folds around the fiducial model: odd and even transits, a
	// half-period phase offset, and a model at half the period.
	depth := p.maskedDepth(mIn, yOut, varOut)
	depthOdd := p.foldDepth(2*per, tt+per, halfDur, yOut, varOut)
	depthEven := p.foldDepth(2*per, tt, halfDur, yOut, varOut)
	depthPhased := p.foldDepth(per, tt+0.5*per, halfDur, yOut, varOut)
	depthHalf := p.foldDepth(0.5*per, tt, halfDur, yOut, varOut)

	stats := &schema.TransitStats{
		Depth:       depth,
		DepthOdd:    depthOdd,
		DepthEven:   depthEven,
		DepthPhased: depthPhased,
		DepthHalf:   depthHalf,
		FluxUnit:    p.y.Unit,
	}

	// Transit centers are enumerated over the full observed baseline, not
	// just the transits with in-transit points. A transit that falls into a
	// data gap keeps its entry with a zero count.
	tMin, tMax := minMax(t)
	idFirst := int(math.Ceil((tMin - tt) / per))
	idLast := int(math.Floor((tMax - tt) / per))
	for i := range t {
		if !mIn[i] {
			continue
		}
		id := int(math.Round((t[i] - tt) / per))
		if id < idFirst {
			idFirst = id
		}
		if id > idLast {
			idLast = id
		}
	}
	if idLast < idFirst {
		// Baseline shorter than one period with no center inside it: report
		// the single transit nearest the data.
		idFirst = int(math.Round((0.5*(tMin+tMax) - tt) / per))
		idLast = idFirst
	}

	// Accumulate per-transit point counts and the log-likelihood gain of
	// the box model over the flat model.
	n := idLast - idFirst + 1
	times := make([]float64, n)
	counts := make([]int, n)
	lls := make([]float64, n)
	for k := range n {
		times[k] = per*float64(idFirst+k) + tt
	}
	for i := range t {
		if !mIn[i] {
			continue
		}
		k := int(math.Round((t[i]-tt)/per)) - idFirst
		counts[k]++
		rOut := y[i] - yOut
		rIn := y[i] - yIn
		lls[k] += 0.5 * p.ivar[i] * (rOut*rOut - rIn*rIn)
	}
	stats.TransitTimes = quantity.WithUnit(times, p.t.Unit)
	stats.PerTransitCount = counts
	stats.PerTransitLogLikelihood = lls

	// First-harmonic sinusoid fit over the full baseline, compared against
	// the box model. A positive delta means the sinusoid is preferred.
	design := make([][]float64, len(t))
	for i, ti := range t {
		phase := 2 * math.Pi * ti / per
		design[i] = []float64{1, math.Sin(phase), math.Cos(phase)}
	}
	coef, err := algo.LeastSquares(design, y, p.ivar)
	if err == nil {
		stats.HarmonicAmplitude = math.Hypot(coef[1], coef[2])
		var delta float64
		for i := range t {
			harm := coef[0] + coef[1]*design[i][1] + coef[2]*design[i][2]
			box := yOut
			if mIn[i] {
				box = yIn
			}
			rBox := y[i] - box
			rHarm := y[i] - harm
			delta += 0.5 * p.ivar[i] * (rBox*rBox - rHarm*rHarm)
		}
		stats.HarmonicDeltaLogLike = delta
	} else {
		stats.HarmonicAmplitude = math.NaN()
		stats.HarmonicDeltaLogLike = math.NaN()
	}

	return stats, nil
}

// foldDepth estimates the transit depth from the points selected by a
// modular fold, against the fiducial out-of-transit level.
func (p *Periodogram) foldDepth(per, center, halfDur, yOut, varOut float64) schema.DepthEstimate {
	mask := make([]bool, p.t.Len())
	for i, ti := range p.t.Strip() {
		mask[i] = algo.FoldedPhaseDistance(ti, per, center) < halfDur
	}
	return p.maskedDepth(mask, yOut, varOut)
}

// maskedDepth is the shared depth estimator: the weighted mean of the masked
// points below the reference level, with the combined uncertainty.
func (p *Periodogram) maskedDepth(mask []bool, yOut, varOut float64) schema.DepthEstimate {
	var sumY, sumW float64
	for i, in := range mask {
		if in {
			sumY += p.y.Values[i] * p.ivar[i]
			sumW += p.ivar[i]
		}
	}
	if sumW == 0 || math.IsNaN(yOut) {
		return schema.DepthEstimate{Value: 0, Err: math.Inf(1), Unit: p.y.Unit}
	}
	return schema.DepthEstimate{
		Value: yOut - sumY/sumW,
		Err:   math.Sqrt(1.0/sumW + varOut),
		Unit:  p.y.Unit,
	}
}
