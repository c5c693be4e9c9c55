// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePeaks prints ranked periodogram peaks using the configured output format.
func (ow *OutWriter) WritePeaks(peaks []schema.Peak, cfg *contract.Config, duration time.Duration) error {
	return WritePeakResults(peaks, cfg, duration)
}

// WriteGrid prints the generated trial period grid using the configured output format.
func (ow *OutWriter) WriteGrid(grid schema.GridSummary, cfg *contract.Config) error {
	return WriteGridResults(grid, cfg)
}

// WriteStats prints transit diagnostics using the configured output format.
func (ow *OutWriter) WriteStats(stats *schema.TransitStats, cfg *contract.Config) error {
	return WriteStatsResults(stats, cfg)
}

// WriteModel prints the fitted box model aligned to input times.
func (ow *OutWriter) WriteModel(series schema.ModelSeries, cfg *contract.Config) error {
	return WriteModelResults(series, cfg)
}

// WriteMask prints the boolean in-transit mask aligned to input times.
func (ow *OutWriter) WriteMask(series schema.MaskSeries, cfg *contract.Config) error {
	return WriteMaskResults(series, cfg)
}

// WriteRuns prints recorded search runs using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}

// WriteStatus prints the search store status.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return WriteStatusResults(status, cfg)
}

// getMaxTableFileWidth calculates the maximum width for input file paths in
// table output based on terminal width and table configuration.
func getMaxTableFileWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed run columns with table formatting
	baseWidth := 60 // ID + times + counts + best period/power with borders/padding

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
