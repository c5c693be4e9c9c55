package cmd

import (
	"github.com/spf13/cobra"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
)

// gridCmd prints the trial period grid without running a search.
var gridCmd = &cobra.Command{
	Use:   "grid [lightcurve-file]",
	Short: "Show the trial period grid a search would use.",
	Long: `Build and display the heuristic trial period grid for a light curve.

The grid is uniform in frequency, with a step chosen so that a transit of
the shortest trial duration cannot drift by more than one duration across
the observation baseline. Use this to gauge search cost before committing
to a long run, or to export the exact periods for external tooling.

Text output prints a summary (period count, bounds, frequency step);
CSV and JSON output include every trial period.

Examples:
  # Summarize the default grid
  periscan grid kepler10.csv

  # Check how much a finer frequency step costs
  periscan grid kepler10.csv --frequency-factor 0.5

  # Export the full grid for plotting
  periscan grid kepler10.csv --output csv --output-file grid.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrid(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build period grid", err)
		}
	},
}
