package cmd

import (
	"github.com/spf13/cobra"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
)

// maskCmd computes the boolean in-transit mask.
var maskCmd = &cobra.Command{
	Use:   "mask [lightcurve-file]",
	Short: "Flag which observations fall inside the transit window.",
	Long: `Compute a boolean in-transit mask for a fixed ephemeris.

An observation is flagged when its folded phase distance from the transit
center is below half the duration. Use the mask to clip transits before a
stellar variability fit, or to search for additional planets after masking
a known signal.

Examples:
  # Mask the known planet before a second search
  periscan mask kepler10.csv --period 0.8375 --duration 0.076 --output csv --output-file mask.csv

  # JSON mask for a notebook
  periscan mask kepler10.csv --period 2.2 --duration 0.16 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMask(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute transit mask", err)
		}
	},
}
