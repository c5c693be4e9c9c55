package runstore

import (
	"errors"
	"fmt"

	"github.com/periscan/periscan/internal/parquet"
	"github.com/periscan/periscan/schema"
)

// ExecuteRunExport performs the actual export of recorded search data to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the search store
	store := Manager.GetSearchStore()
	if store == nil {
		return errors.New("search run store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no search runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total search runs: %d\n", status.TotalRuns)
	fmt.Printf("Total recorded peaks: %d\n", status.TotalPeaks)

	// Retrieve all search runs
	runs, err := store.ListRuns(status.TotalRuns)
	if err != nil {
		return fmt.Errorf("failed to retrieve search runs: %w", err)
	}

	// Retrieve the ranked peaks of every run
	var peaks []schema.PeakRecord
	for _, run := range runs {
		runPeaks, err := store.ListPeaks(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve peaks for run %d: %w", run.RunID, err)
		}
		peaks = append(peaks, runPeaks...)
	}

	// Write search runs to Parquet
	runsFile := outputFile + ".search_runs.parquet"
	if err := parquet.WriteSearchRuns(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write search runs: %w", err)
	}
	fmt.Printf("Exported %d search runs to: %s\n", len(runs), runsFile)

	// Write ranked peaks to Parquet
	peaksFile := outputFile + ".search_peaks.parquet"
	if err := parquet.WriteSearchPeaks(parquet.ConvertPeakRecords(peaks), peaksFile); err != nil {
		return fmt.Errorf("failed to write search peaks: %w", err)
	}
	fmt.Printf("Exported %d peak records to: %s\n", len(peaks), peaksFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
