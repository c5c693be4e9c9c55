package cmd

import (
	"github.com/spf13/cobra"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
)

// statsCmd computes transit diagnostics for a fixed ephemeris.
var statsCmd = &cobra.Command{
	Use:   "stats [lightcurve-file]",
	Short: "Compute vetting diagnostics for one candidate ephemeris.",
	Long: `Compute transit diagnostics for a fixed (period, duration, transit time).

Reports the numbers a vetting pass needs:
- Transit center times across the baseline, with per-transit point counts
  and log-likelihood contributions
- Depth estimates from the fiducial fit, odd-only and even-only transits,
  a half-period-offset control fold, and a half-period model
- A first-harmonic sinusoid fit compared against the box model, to flag
  signals better explained by smooth stellar variability

Odd/even depth disagreement points to a blended eclipsing binary; a
harmonic model that beats the box points to rotation or pulsation.

Examples:
  # Vet the top peak from a previous search
  periscan stats kepler10.csv --period 0.8375 --duration 0.076 --transit-time 0.712

  # JSON output for pipeline consumption
  periscan stats kepler10.csv --period 2.2 --duration 0.16 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute transit stats", err)
		}
	},
}
