package cmd

import (
	"github.com/spf13/cobra"
)

// objectivesCmd displays the formal definitions of the ranking objectives
// and evaluation methods.
var objectivesCmd = &cobra.Command{
	Use:   "objectives",
	Short: "Display definitions for the ranking objectives and evaluation methods",
	Long: `Show what each ranking objective measures and how the evaluation methods differ.

No search is performed - this is purely informational.

Use this to:
- Understand what the power column means for each objective
- Choose between the exact and binned evaluation methods
- Document search methodology

Examples:
  # Show objective and method definitions
  periscan objectives`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("Objectives\n")
		cmd.Printf("  likelihood  Log-likelihood gain of the box model over a constant flux\n")
		cmd.Printf("              model. Rewards deep, well-sampled transits. The default.\n")
		cmd.Printf("  snr         Depth divided by its one-sigma uncertainty. Less sensitive\n")
		cmd.Printf("              to the number of in-transit points than likelihood.\n")
		cmd.Printf("\n")
		cmd.Printf("Methods\n")
		cmd.Printf("  auto        Picks slow for small searches and fast for large ones,\n")
		cmd.Printf("              based on observations times trial periods.\n")
		cmd.Printf("  fast        Bins the folded light curve into a phase histogram before\n")
		cmd.Printf("              fitting. Resolution is set by --oversample.\n")
		cmd.Printf("  slow        Fits every duration and phase against the raw points.\n")
		cmd.Printf("              Exact but quadratic in the input size.\n")
	},
}
