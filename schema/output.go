package schema

// GridSummary describes a generated trial period grid for output writers.
// Periods carries the full grid; the scalar fields are precomputed so text
// output does not need the whole array.
type GridSummary struct {
	Count         int       `json:"count"`
	MinPeriod     float64   `json:"min_period"`
	MaxPeriod     float64   `json:"max_period"`
	FrequencyStep float64   `json:"frequency_step"`
	TimeUnit      string    `json:"time_unit,omitempty"`
	Periods       []float64 `json:"periods"`
}

// ModelSeries is a fitted box model evaluated at the input times.
type ModelSeries struct {
	Time     []float64 `json:"time"`
	Flux     []float64 `json:"flux"`
	TimeUnit string    `json:"time_unit,omitempty"`
	FluxUnit string    `json:"flux_unit,omitempty"`
}

// MaskSeries is a boolean in-transit mask aligned to the input times.
type MaskSeries struct {
	Time      []float64 `json:"time"`
	InTransit []bool    `json:"in_transit"`
	TimeUnit  string    `json:"time_unit,omitempty"`
}
