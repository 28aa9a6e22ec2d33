// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteComparisons prints per-entity comparison results using the
// configured output format.
func (ow *OutWriter) WriteComparisons(sets []schema.EntityComparisonSet, cfg *contract.Config, duration time.Duration) error {
	return PrintComparisonResults(sets, cfg, duration)
}

// WriteAggregate prints the consolidated multi-entity summary table.
func (ow *OutWriter) WriteAggregate(table schema.AggregateTable, cfg *contract.Config, duration time.Duration) error {
	return PrintAggregateTable(table, cfg, duration)
}

// WriteMovers prints ranked top gainer/decliner records.
func (ow *OutWriter) WriteMovers(ranked []schema.RankedRecord, metric string, cfg *contract.Config, duration time.Duration) error {
	return PrintMoverResults(ranked, metric, cfg, duration)
}

// WriteOpportunities prints the opportunity set with query totals.
func (ow *OutWriter) WriteOpportunities(records []schema.QueryRecord, totals schema.QueryTotals, cfg *contract.Config, duration time.Duration) error {
	return PrintOpportunityResults(records, totals, cfg, duration)
}

// WriteBandingDefinitions prints the trend banding and polarity policy.
func (ow *OutWriter) WriteBandingDefinitions(cfg *contract.Config) error {
	return PrintBandingDefinitions(cfg)
}

// CloseIfFile closes the file unless it is stdout.
func CloseIfFile(f *os.File) {
	if f != os.Stdout {
		_ = f.Close()
	}
}

// getMaxKeyWidth calculates the maximum width for query/entity keys in
// table output based on terminal width and the fixed numeric columns.
func getMaxKeyWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns plus borders and padding.
	available := termWidth - 55
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
