package cmd

import (
	"github.com/spf13/cobra"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
)

// searchCmd runs the full periodogram search.
var searchCmd = &cobra.Command{
	Use:   "search [lightcurve-file]",
	Short: "Run a box least squares search and rank the strongest peaks.",
	Long: `Run a box least squares periodogram search over a light curve file.

Evaluates a box transit model over a grid of trial periods, reporting the
periods where a periodic dimming best explains the data. For each trial
period the best duration, epoch and depth are kept, and peaks are ranked
by the selected objective.

The trial period grid is built heuristically from the observation baseline
and the trial durations, or pinned explicitly with --min-period and
--max-period. Each completed search is recorded in the run tracking store.

Examples:
  # Search a Kepler light curve with default settings
  periscan search kepler10.csv

  # Search with several trial durations and explicit period bounds
  periscan search kepler10.csv --durations 0.1,0.16,0.24 --min-period 0.5 --max-period 20

  # Rank by signal-to-noise ratio instead of likelihood
  periscan search kepler10.csv --objective snr

  # Force the exact per-point method and export peaks to CSV
  periscan search kepler10.csv --method slow --output csv --output-file peaks.csv

  # Hour-based cadence data
  periscan search tess.parquet --time-unit hour --durations 2.4,4.8`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSearch(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run search", err)
		}
	},
}
