// Package parquet provides data structures and functions for exchanging
// periscan search data as Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// SearchPeak represents one ranked periodogram peak.
// This struct maps to the periscan_search_peaks database table.
type SearchPeak struct {
	// RunID references the parent search run, zero for ad hoc exports
	RunID int64 `parquet:"run_id,snappy"`

	// Rank is the 1-based position of the peak after power ordering
	Rank int32 `parquet:"rank,snappy"`

	// Period is the trial period of the peak
	Period float64 `parquet:"period,snappy"`

	// Power is the periodogram statistic at the peak
	Power float64 `parquet:"power,snappy"`

	// Duration is the best-fit transit duration
	Duration float64 `parquet:"duration,snappy"`

	// TransitTime is the best-fit transit epoch
	TransitTime float64 `parquet:"transit_time,snappy"`

	// Depth is the best-fit flux decrement
	Depth float64 `parquet:"depth,snappy"`

	// DepthErr is the one-sigma uncertainty on the depth
	DepthErr float64 `parquet:"depth_err,snappy"`

	// DepthSNR is the depth over its uncertainty
	DepthSNR float64 `parquet:"depth_snr,snappy"`

	// LogLikelihood is the log-likelihood gain over a constant model
	LogLikelihood float64 `parquet:"log_likelihood,snappy"`

	// Label is the plain-text significance label for the peak
	Label string `parquet:"label,snappy"`
}

// SearchRun represents a single periodogram search run with metadata.
// This struct maps to the periscan_search_runs database table.
type SearchRun struct {
	// RunID is the unique identifier for this search run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the search began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the search completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the search in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// InputFile is the light curve file the search ran against
	InputFile string `parquet:"input_file,snappy"`

	// Objective is the ranking objective used
	Objective string `parquet:"objective,snappy"`

	// Method is the evaluation method that produced the result
	Method string `parquet:"method,snappy"`

	// TotalPeriods is the number of trial periods evaluated
	TotalPeriods int32 `parquet:"total_periods,snappy"`

	// BestPeriod is the period of the strongest peak
	BestPeriod float64 `parquet:"best_period,snappy"`

	// BestPower is the power of the strongest peak
	BestPower float64 `parquet:"best_power,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// LightCurveRow is one observation in a Parquet light curve file.
type LightCurveRow struct {
	// Time is the observation time
	Time float64 `parquet:"time"`

	// Flux is the observed flux
	Flux float64 `parquet:"flux"`

	// FluxErr is the one-sigma flux uncertainty (nullable)
	FluxErr *float64 `parquet:"flux_err,optional"`
}

// WriteSearchPeaks writes a slice of SearchPeak structs to a Parquet file.
func WriteSearchPeaks(data []SearchPeak, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSearchRuns writes a slice of SearchRun structs to a Parquet file.
func WriteSearchRuns(data []SearchRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to a Parquet file using struct schema inference.
// The schema is automatically derived from the row struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadLightCurve reads all rows from a Parquet light curve file.
func ReadLightCurve(path string) ([]LightCurveRow, error) {
	rows, err := parquet.ReadFile[LightCurveRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return rows, nil
}

// ConvertRunRecords converts schema.RunRecord to SearchRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []SearchRun {
	result := make([]SearchRun, len(records))
	for i, record := range records {
		result[i] = SearchRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			InputFile:     record.InputFile,
			Objective:     record.Objective,
			Method:        record.Method,
			TotalPeriods:  int32(record.TotalPeriods),
			BestPeriod:    record.BestPeriod,
			BestPower:     record.BestPower,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertPeakRecords converts schema.PeakRecord to SearchPeak for Parquet export.
func ConvertPeakRecords(records []schema.PeakRecord) []SearchPeak {
	result := make([]SearchPeak, len(records))
	for i, record := range records {
		result[i] = SearchPeak{
			RunID:         record.RunID,
			Rank:          int32(record.Rank),
			Period:        record.Period,
			Power:         record.Power,
			Duration:      record.Duration,
			TransitTime:   record.TransitTime,
			Depth:         record.Depth,
			DepthErr:      record.DepthErr,
			DepthSNR:      record.DepthSNR,
			LogLikelihood: record.LogLikelihood,
			Label:         contract.GetPlainLabel(record.DepthSNR),
		}
	}
	return result
}
