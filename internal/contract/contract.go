// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/periscan/periscan/schema"
)

// SearchStore defines the interface for tracking periodogram search runs.
// This allows the store layer to be mocked for testing.
type SearchStore interface {
	// BeginRun creates a new search run and returns its unique ID.
	BeginRun(startTime time.Time, inputFile string, objective schema.Objective, method schema.Method, configParams map[string]any) (int64, error)

	// EndRun updates the search run with completion data.
	EndRun(runID int64, endTime time.Time, totalPeriods int, bestPeriod, bestPower float64) error

	// RecordPeaks stores the ranked peak rows for a run.
	RecordPeaks(runID int64, peaks []schema.Peak) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListPeaks returns the recorded peaks for a run, best first.
	ListPeaks(runID int64) ([]schema.PeakRecord, error)

	// GetStatus returns status information about the search store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all recorded runs and peaks.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for managing the search store.
type StoreManager interface {
	GetSearchStore() SearchStore
}
