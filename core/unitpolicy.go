package core

import (
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// resultUnits is the unit assignment for one search result, derived from the
// input unit state and the ranking objective.
type resultUnits struct {
	period        *quantity.Unit
	power         *quantity.Unit
	duration      *quantity.Unit
	transitTime   *quantity.Unit
	depth         *quantity.Unit
	depthErr      *quantity.Unit
	depthSNR      *quantity.Unit
	logLikelihood *quantity.Unit
}

// unitsFor centralizes the result unit policy. Period-like columns carry the
// time unit and depth-like columns the flux unit. The signal to noise ratio
// is dimensionless whenever the fluxes have a unit. The log-likelihood is
// dimensionless when errors were supplied, since the weights cancel the flux
// unit; without errors the weights are plain and the squared flux unit
// survives. The power column follows the objective.
func unitsFor(timeUnit, fluxUnit *quantity.Unit, hasErr bool, objective schema.Objective) resultUnits {
	u := resultUnits{
		period:      timeUnit,
		duration:    timeUnit,
		transitTime: timeUnit,
		depth:       fluxUnit,
		depthErr:    fluxUnit,
	}
	if fluxUnit != nil {
		u.depthSNR = quantity.One
		if hasErr {
			u.logLikelihood = quantity.One
		} else {
			u.logLikelihood = fluxUnit.Mul(fluxUnit)
		}
	}
	if objective == schema.SNRObjective {
		u.power = u.depthSNR
	} else {
		u.power = u.logLikelihood
	}
	return u
}
