package cmd

import (
	"github.com/searchpulse/searchpulse/core"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd runs the per-entity metric comparison.
var compareCmd = &cobra.Command{
	Use:   "compare <export.csv> [export.csv...]",
	Short: "Compare current vs previous metrics for one or more entities",
	Long: `Compute deltas and classify trends for every metric in the given exports.

Each export holds one entity's metric pairs: current-period value next
to the matching baseline value. Searchpulse computes absolute and
percent changes, folds in per-metric polarity (a position drop is an
improvement), and classifies every change into a trend band.

Unreadable files are skipped with a warning; malformed values within a
file fail only that metric row, never the whole entity.

Examples:
  # Month-over-month comparison for one client
  searchpulse compare GSC-30vs30-overMonth-acme-dental.csv

  # Several clients at once
  searchpulse compare exports/GSC-30vs30-overMonth-*.csv

  # Year-over-year with the wider 5-band scheme
  searchpulse compare --yoy GSC-YOY-overMonth-acme-dental.csv

  # Machine-readable output
  searchpulse compare --output json exports/*.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}

// aggregateCmd builds the consolidated multi-entity table.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate <export.csv> [export.csv...]",
	Short: "Build one wide summary table across all entities",
	Long: `Consolidate per-entity comparisons into a single wide table.

One row per entity, one current/change/trend column triple per metric.
The metric columns are the union across all entities in first-seen
order, so entities with differing metric sets still line up; missing
metrics render as blank cells.

Examples:
  # Monthly roll-up across the whole client portfolio
  searchpulse aggregate exports/GSC-30vs30-overMonth-*.csv

  # CSV for the reporting spreadsheet
  searchpulse aggregate --output csv --output-file portfolio.csv exports/*.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAggregate(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run aggregation", err)
		}
	},
}

// summaryCmd writes narrative per-entity summaries.
var summaryCmd = &cobra.Command{
	Use:   "summary <export.csv> [export.csv...]",
	Short: "Write narrative per-entity summaries",
	Long: `Render each entity comparison as a short narrative block suitable for
pasting into a client report. Metric values are formatted per type
(percent metrics with a percent sign, positions with one decimal,
counts with thousands separators) and each line carries a trend marker.

Examples:
  searchpulse summary GSC-30vs30-overMonth-acme-dental.csv
  searchpulse summary --precision 1 exports/*.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}
