package cmd

import (
	"github.com/searchpulse/searchpulse/core"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/spf13/cobra"
)

// insightsCmd groups the per-query ranking commands.
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Rank per-query records to surface movers and opportunities",
	Long: `Analyze a per-query export to surface the records worth acting on.

Subcommands:
  movers        - Top gainers or decliners on a chosen metric
  opportunities - Near-page-one queries with above-median impressions

Both read a single query export with a 'query' column plus paired
{metric}_current/{metric}_previous columns.`,
}

// insightsMoversCmd ranks queries by change on a chosen metric.
var insightsMoversCmd = &cobra.Command{
	Use:   "movers <queries.csv>",
	Short: "Show top gainers or decliners on a chosen metric",
	Long: `Rank every query by its change on one metric and show the top movers.

Growth direction sorts by largest absolute gain; decline direction by
largest absolute loss. Ties keep their input order so reruns over the
same export always produce the same list.

Examples:
  # Biggest impression gainers
  searchpulse insights movers GSC-queries-acme-dental.csv

  # Queries losing clicks, top 10
  searchpulse insights movers --metric clicks --direction decline --limit 10 GSC-queries-acme-dental.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMovers(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank movers", err)
		}
	},
}

// insightsOpportunitiesCmd finds near-page-one queries worth pushing.
var insightsOpportunitiesCmd = &cobra.Command{
	Use:   "opportunities <queries.csv>",
	Short: "Find near-page-one queries with above-median impressions",
	Long: `Filter the query export for ranking opportunities: queries sitting
just off page one (position window, default 11-20) that already draw
more impressions than the median query. A small ranking push on these
tends to pay off fastest.

Results are ordered by impressions, highest first.

Examples:
  searchpulse insights opportunities GSC-queries-acme-dental.csv

  # Wider window and a hard impressions floor
  searchpulse insights opportunities --low-bound 8 --high-bound 30 --floor 100 GSC-queries-acme-dental.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOpportunities(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot find opportunities", err)
		}
	},
}
