// Package schema has configs, models and shared types for all parts of periscan.
package schema

import "github.com/periscan/periscan/internal/quantity"

// SearchResult is the periodogram output table: one entry per trial period,
// with the best-fit box parameters for that period. Column arrays share the
// trial period order, and each carries the unit implied by the input data.
type SearchResult struct {
	Objective     Objective      // Objective used to rank duration/phase choices
	Method        Method         // Evaluation method that produced the result
	Period        quantity.Array // Trial periods, in the time unit
	Power         quantity.Array // Periodogram statistic, objective-dependent units
	Duration      quantity.Array // Best transit duration per period
	TransitTime   quantity.Array // Best transit epoch per period
	Depth         quantity.Array // Best-fit flux decrement per period
	DepthErr      quantity.Array // One-sigma uncertainty on the depth
	DepthSNR      quantity.Array // depth / depth_err, always dimensionless
	LogLikelihood quantity.Array // Log-likelihood gain over a constant model
}

// Peak is one row of a ranked search result, flattened for output writers
// and run tracking.
type Peak struct {
	Index         int     `json:"index"`
	Period        float64 `json:"period"`
	Power         float64 `json:"power"`
	Duration      float64 `json:"duration"`
	TransitTime   float64 `json:"transit_time"`
	Depth         float64 `json:"depth"`
	DepthErr      float64 `json:"depth_err"`
	DepthSNR      float64 `json:"depth_snr"`
	LogLikelihood float64 `json:"log_likelihood"`
}

// DepthEstimate is a fitted depth with its one-sigma uncertainty.
type DepthEstimate struct {
	Value float64
	Err   float64
	Unit  *quantity.Unit
}

// TransitStats holds the post-fit diagnostics for a single
// (period, duration, transit time) choice.
type TransitStats struct {
	TransitTimes            quantity.Array // Transit center times covering the baseline
	PerTransitCount         []int          // Number of in-transit points per transit
	PerTransitLogLikelihood []float64      // Log-likelihood contribution per transit
	Depth                   DepthEstimate  // Depth of the fiducial model
	DepthOdd                DepthEstimate  // Depth from odd-numbered transits only
	DepthEven               DepthEstimate  // Depth from even-numbered transits only
	DepthPhased             DepthEstimate  // Half-period-offset control fit, expected near zero
	DepthHalf               DepthEstimate  // Depth of a model at half the period
	HarmonicAmplitude       float64        // Amplitude of the best-fit first harmonic
	HarmonicDeltaLogLike    float64        // Likelihood delta of the harmonic vs constant model
	FluxUnit                *quantity.Unit // Unit of the flux-valued fields, nil if unitless
}
