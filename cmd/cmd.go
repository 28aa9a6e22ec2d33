// Package cmd defines the command-line interface for searchpulse.
package cmd

import (
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the insights subcommands to the parent insights command
	insightsCmd.AddCommand(insightsMoversCmd)
	insightsCmd.AddCommand(insightsOpportunitiesCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("entity", "", "Entity name override when comparing a single file")
	rootCmd.PersistentFlags().String("banding", "", "Trend banding scheme: 3 or 5")
	rootCmd.PersistentFlags().Bool("yoy", false, "Year-over-year mode (defaults banding to the 5-band scheme)")
	rootCmd.PersistentFlags().StringToString("polarity", nil, "Per-metric polarity overrides (e.g. position=lower)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of insightsMoversCmd to Viper
	insightsMoversCmd.Flags().StringP("metric", "m", "impressions", "Metric column to rank on")
	insightsMoversCmd.Flags().String("direction", string(schema.GrowthDirection), "Ranking direction: growth or decline")
	if err := viper.BindPFlags(insightsMoversCmd.Flags()); err != nil {
		contract.LogFatal("Error binding movers flags", err)
	}

	// Bind all flags of insightsOpportunitiesCmd to Viper
	insightsOpportunitiesCmd.Flags().Float64("low-bound", float64(contract.DefaultLowBound), "Lowest position rank to consider (inclusive)")
	insightsOpportunitiesCmd.Flags().Float64("high-bound", float64(contract.DefaultHighBound), "Highest position rank to consider (inclusive)")
	insightsOpportunitiesCmd.Flags().Float64("floor", 0, "Extra impressions floor on top of the median cut")
	if err := viper.BindPFlags(insightsOpportunitiesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding opportunities flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
