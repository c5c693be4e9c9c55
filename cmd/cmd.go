// Package cmd defines the command-line interface for periscan.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(maskCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(objectivesCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("durations", "d", "0.16", "Comma-separated trial transit durations, in the time unit of the data")
	rootCmd.PersistentFlags().String("objective", string(schema.LikelihoodObjective), "Ranking objective: likelihood or snr")
	rootCmd.PersistentFlags().String("method", string(schema.AutoMethod), "Evaluation method: auto or fast or slow")
	rootCmd.PersistentFlags().Int("oversample", contract.DefaultOversample, "Phase grid refinement factor for the fast method")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("time-unit", "", "Unit of the time column (day, hour, minute, second)")
	rootCmd.PersistentFlags().String("flux-unit", "", "Unit of the flux column (mag or dimensionless)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of searchCmd to Viper
	searchCmd.Flags().String("min-period", "", "Minimum trial period, in the time unit of the data")
	searchCmd.Flags().String("max-period", "", "Maximum trial period, in the time unit of the data")
	searchCmd.Flags().Int("n-transit", contract.DefaultNTransit, "Minimum number of transits that must fit in the baseline")
	searchCmd.Flags().Float64("frequency-factor", 1.0, "Frequency step multiplier for the trial grid")
	if err := viper.BindPFlags(searchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding search flags", err)
	}

	// Bind all flags of gridCmd to Viper
	gridCmd.Flags().String("min-period", "", "Minimum trial period, in the time unit of the data")
	gridCmd.Flags().String("max-period", "", "Maximum trial period, in the time unit of the data")
	gridCmd.Flags().Int("n-transit", contract.DefaultNTransit, "Minimum number of transits that must fit in the baseline")
	gridCmd.Flags().Float64("frequency-factor", 1.0, "Frequency step multiplier for the trial grid")
	if err := viper.BindPFlags(gridCmd.Flags()); err != nil {
		contract.LogFatal("Error binding grid flags", err)
	}

	// Bind the fixed ephemeris flags of statsCmd, modelCmd and maskCmd to Viper
	for _, c := range []*cobra.Command{statsCmd, modelCmd, maskCmd} {
		c.Flags().Float64("period", 0, "Transit period, in the time unit of the data")
		c.Flags().Float64("duration", 0, "Transit duration, in the time unit of the data")
		c.Flags().Float64("transit-time", 0, "Transit epoch, in the time unit of the data")
		if err := viper.BindPFlags(c.Flags()); err != nil {
			contract.LogFatal("Error binding ephemeris flags", err)
		}
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
