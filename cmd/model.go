package cmd

import (
	"github.com/spf13/cobra"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
)

// modelCmd evaluates the fitted box model at the observed times.
var modelCmd = &cobra.Command{
	Use:   "model [lightcurve-file]",
	Short: "Evaluate the best-fit box model at the observed times.",
	Long: `Evaluate the box transit model for a fixed ephemeris at every observed time.

The depth and out-of-transit level are re-fit to the data by weighted least
squares, so the output is directly comparable to the observed fluxes. Use
it to overplot the model on the light curve or compute residuals.

Examples:
  # Model fluxes as CSV for plotting
  periscan model kepler10.csv --period 2.2 --duration 0.16 --output-file model.csv

  # JSON series with units attached
  periscan model kepler10.csv --period 2.2 --duration 0.16 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModel(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot evaluate model", err)
		}
	},
}
