package schema

import "time"

// StoreStatus represents the status of the search run store.
type StoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	TotalPeaks    int       `json:"total_peaks"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}

// RunRecord represents a row from the periscan_search_runs table. Nullable
// columns are pointers so that runs interrupted before completion still scan.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RunDurationMs *int64     `json:"run_duration_ms"`
	InputFile     string     `json:"input_file"`
	Objective     string     `json:"objective"`
	Method        string     `json:"method"`
	TotalPeriods  int        `json:"total_periods"`
	BestPeriod    float64    `json:"best_period"`
	BestPower     float64    `json:"best_power"`
	ConfigParams  *string    `json:"config_params"`
}

// PeakRecord represents a row from the periscan_search_peaks table.
type PeakRecord struct {
	RunID         int64   `json:"run_id"`
	Rank          int     `json:"rank"`
	Period        float64 `json:"period"`
	Power         float64 `json:"power"`
	Duration      float64 `json:"duration"`
	TransitTime   float64 `json:"transit_time"`
	Depth         float64 `json:"depth"`
	DepthErr      float64 `json:"depth_err"`
	DepthSNR      float64 `json:"depth_snr"`
	LogLikelihood float64 `json:"log_likelihood"`
}
