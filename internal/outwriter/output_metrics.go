package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/schema"
)

// PrintBandingDefinitions writes the active trend banding scheme, its
// thresholds and labels, and the configured metric polarities.
func PrintBandingDefinitions(cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer CloseIfFile(file)
	return WriteBandingDefinitions(file, cfg)
}

// WriteBandingDefinitions writes the banding and polarity policy tables.
func WriteBandingDefinitions(w io.Writer, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Trend bands (%s-band scheme)\n", cfg.Banding); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Band", "Label", "Percent change"})

	if err := table.Bulk(bandingRows(cfg.Banding)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_ = table.Close()

	if _, err := fmt.Fprintln(w, "\nMetric polarities"); err != nil {
		return err
	}

	polTable := tablewriter.NewWriter(w)
	polTable.Header([]string{"Metric", "Polarity"})

	names := make([]string, 0, len(cfg.Polarities))
	for name := range cfg.Polarities {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows [][]string
	for _, name := range names {
		rows = append(rows, []string{name, string(cfg.Polarities[name])})
	}
	if err := polTable.Bulk(rows); err != nil {
		return err
	}
	if err := polTable.Render(); err != nil {
		return err
	}
	_ = polTable.Close()

	_, err := fmt.Fprintln(w, "Unlisted metrics default to higher-is-better. Zero baselines render as N/A (flat) or +∞ (new).")
	return err
}

// bandingRows describes each band of the active scheme, worst to best.
func bandingRows(banding schema.Banding) [][]string {
	if banding == schema.FiveBand {
		return [][]string{
			{string(schema.StrongDecline), schema.StrongDecline.Label(), fmt.Sprintf("below -%g%%", schema.StrongThreshold)},
			{string(schema.Decline), schema.Decline.Label(), fmt.Sprintf("-%g%% to -%g%%", schema.StrongThreshold, schema.NeutralThreshold)},
			{string(schema.Neutral), schema.Neutral.Label(), fmt.Sprintf("-%g%% to +%g%%", schema.NeutralThreshold, schema.NeutralThreshold)},
			{string(schema.Growth), schema.Growth.Label(), fmt.Sprintf("+%g%% to +%g%%", schema.NeutralThreshold, schema.StrongThreshold)},
			{string(schema.StrongGrowth), schema.StrongGrowth.Label(), fmt.Sprintf("above +%g%%", schema.StrongThreshold)},
		}
	}
	return [][]string{
		{string(schema.Decline), schema.Decline.Label(), fmt.Sprintf("below -%g%%", schema.NeutralThreshold)},
		{string(schema.Neutral), schema.Neutral.Label(), fmt.Sprintf("-%g%% to +%g%%", schema.NeutralThreshold, schema.NeutralThreshold)},
		{string(schema.Growth), schema.Growth.Label(), fmt.Sprintf("above +%g%%", schema.NeutralThreshold)},
	}
}
