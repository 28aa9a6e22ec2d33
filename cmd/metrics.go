package cmd

import (
	"github.com/searchpulse/searchpulse/core"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the trend banding and polarity policy.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display trend band thresholds and metric polarities",
	Long: `Show the trend classification policy in effect.

Lists each band of the active scheme with its percent-change window and
human label, followed by the per-metric polarity table (which metrics
count a drop as an improvement).

No files are read - this is purely informational.

Examples:
  # Default 3-band policy
  searchpulse metrics

  # The wider year-over-year bands
  searchpulse metrics --yoy

  # With custom polarities from config
  searchpulse metrics --config .searchpulse.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetricsInfo(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
