package core

import (
	"fmt"
	"runtime"

	"github.com/periscan/periscan/core/algo"
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// DefaultOversample is the default phase grid refinement factor.
const DefaultOversample = 10

// autoMethodThreshold is the work size, observations times trial periods,
// below which the exact method is cheap enough to prefer over binning.
const autoMethodThreshold = 20000

// PowerOptions controls a periodogram evaluation. Zero values select the
// documented defaults.
type PowerOptions struct {
	Objective  schema.Objective // default: likelihood
	Method     schema.Method    // default: auto
	Oversample int              // default: 10
	Workers    int              // default: GOMAXPROCS
}

// Power evaluates the periodogram on an explicit trial period grid. For each
// period it reports the best box fit over all durations and phases, ranked by
// the objective, and assigns result units from the input unit state.
func (p *Periodogram) Power(periods, durations quantity.Array, opts PowerOptions) (*schema.SearchResult, error) {
	durations, err := p.validateDurations(durations)
	if err != nil {
		return nil, err
	}

	periods, err = quantity.ValidateConsistency(p.t, periods)
	if err != nil {
		return nil, err
	}
	if periods.NDim() > 1 {
		return nil, &schema.ShapeError{
			Msg: fmt.Sprintf("period grid must be one-dimensional, got %d dimensions", periods.NDim()),
		}
	}
	if periods.Len() == 0 {
		return nil, &schema.ShapeError{Msg: "period grid must not be empty"}
	}
	minPeriod, _ := minMax(periods.Strip())
	_, maxDuration := minMax(durations.Strip())
	if minPeriod <= maxDuration {
		return nil, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("minimum period %v must exceed maximum duration %v", minPeriod, maxDuration),
		}
	}

	objective := opts.Objective
	if objective == "" {
		objective = schema.LikelihoodObjective
	}
	if _, ok := schema.ValidObjectives[objective]; !ok {
		return nil, fmt.Errorf("unknown objective %q", objective)
	}
	method := opts.Method
	if method == "" {
		method = schema.AutoMethod
	}
	if _, ok := schema.ValidMethods[method]; !ok {
		return nil, fmt.Errorf("unknown method %q", method)
	}
	oversample := opts.Oversample
	if oversample == 0 {
		oversample = DefaultOversample
	}
	if oversample < 1 {
		return nil, &schema.InvalidRangeError{
			Msg: fmt.Sprintf("oversample must be at least 1, got %d", oversample),
		}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	if method == schema.AutoMethod {
		if p.t.Len()*periods.Len() <= autoMethodThreshold {
			method = schema.SlowMethod
		} else {
			method = schema.FastMethod
		}
	}

	series := algo.Series{T: p.trel, Y: p.y.Strip(), IVar: p.ivar}
	useLikelihood := objective == schema.LikelihoodObjective
	var fit algo.Result
	if method == schema.SlowMethod {
		fit = algo.EvalSlow(series, periods.Strip(), durations.Strip(), oversample, useLikelihood, workers)
	} else {
		fit = algo.EvalFast(series, periods.Strip(), durations.Strip(), oversample, useLikelihood, workers)
	}

	// Transit times come back as phases relative to the first observation.
	for i, tt := range fit.TransitTime {
		fit.TransitTime[i] = tt + p.tRef
	}

	u := unitsFor(p.t.Unit, p.y.Unit, p.dy != nil, objective)
	return &schema.SearchResult{
		Objective:     objective,
		Method:        method,
		Period:        quantity.WithUnit(periods.Strip(), u.period),
		Power:         quantity.WithUnit(fit.Power, u.power),
		Duration:      quantity.WithUnit(fit.Duration, u.duration),
		TransitTime:   quantity.WithUnit(fit.TransitTime, u.transitTime),
		Depth:         quantity.WithUnit(fit.Depth, u.depth),
		DepthErr:      quantity.WithUnit(fit.DepthErr, u.depthErr),
		DepthSNR:      quantity.WithUnit(fit.DepthSNR, u.depthSNR),
		LogLikelihood: quantity.WithUnit(fit.LogLikelihood, u.logLikelihood),
	}, nil
}

// Autopower builds the automatic period grid for the durations and evaluates
// the periodogram on it.
func (p *Periodogram) Autopower(durations quantity.Array, grid GridOptions, opts PowerOptions) (*schema.SearchResult, error) {
	periods, err := p.Autoperiod(durations, grid)
	if err != nil {
		return nil, err
	}
	return p.Power(periods, durations, opts)
}
