package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/internal/parquet"
	"github.com/searchpulse/searchpulse/schema"
)

// PrintMoverResults resolves the output destination and writes the
// ranked top gainer/decliner records in the configured format.
func PrintMoverResults(ranked []schema.RankedRecord, metric string, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		return parquet.WriteMetricDeltasParquet(convertMovers(ranked, metric, cfg.Precision), cfg.OutputFile)
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer CloseIfFile(file)
	return WriteMoverResults(file, ranked, metric, cfg, duration)
}

// WriteMoverResults outputs the ranked records, dispatching based on the
// configured output format.
func WriteMoverResults(w io.Writer, ranked []schema.RankedRecord, metric string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, ranked); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForMovers(csvWriter, ranked, cfg)
	default:
		return writeMoverTable(w, ranked, metric, cfg, duration)
	}
}

// writeMoverTable writes the human-readable ranked table.
func writeMoverTable(w io.Writer, ranked []schema.RankedRecord, metric string, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	maxKeyWidth := getMaxKeyWidth(cfg)

	heading := "Top gainers"
	if cfg.Direction == schema.DeclineDirection {
		heading = "Top decliners"
	}
	if _, err := fmt.Fprintf(w, "%s by %s\n", heading, schema.DisplayMetricName(metric)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	headers := []string{"#", "Query", "Current", "Previous", "Change", "Change %"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range ranked {
		change := fmtFloat(r.Delta.AbsChange)
		if r.Delta.AbsChange > 0 {
			change = "+" + change
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			contract.TruncateText(r.Key, maxKeyWidth),
			fmtFloat(r.Current),
			fmtFloat(r.Previous),
			change,
			r.Delta.PctDisplay(cfg.Precision),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_ = table.Close()

	_, err := fmt.Fprintf(w, "Ranked %d queries in %v\n", len(ranked), duration)
	return err
}

// writeCSVResultsForMovers writes the ranked records to a CSV writer.
func writeCSVResultsForMovers(w *csv.Writer, ranked []schema.RankedRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	header := []string{"rank", "query", "current", "previous", "change_abs", "change_pct"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, r := range ranked {
		row := []string{
			fmt.Sprintf("%d", i+1),
			r.Key,
			fmtFloat(r.Current),
			fmtFloat(r.Previous),
			fmtFloat(r.Delta.AbsChange),
			r.Delta.PctDisplay(cfg.Precision),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// PrintOpportunityResults resolves the output destination and writes the
// opportunity query set with totals in the configured format.
func PrintOpportunityResults(records []schema.QueryRecord, totals schema.QueryTotals, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		return errors.New("parquet output is not supported for opportunities")
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer CloseIfFile(file)
	return WriteOpportunityResults(file, records, totals, cfg, duration)
}

// opportunityReport pairs the filtered records with overall totals for
// structured output.
type opportunityReport struct {
	Opportunities []schema.QueryRecord `json:"opportunities"`
	Totals        schema.QueryTotals   `json:"totals"`
}

// WriteOpportunityResults outputs the opportunity set, dispatching based
// on the configured output format.
func WriteOpportunityResults(w io.Writer, records []schema.QueryRecord, totals schema.QueryTotals, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, opportunityReport{Opportunities: records, Totals: totals}); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForOpportunities(csvWriter, records, cfg)
	default:
		return writeOpportunityTable(w, records, totals, cfg, duration)
	}
}

// writeOpportunityTable writes the human-readable opportunity table with
// a totals footer covering the whole export.
func writeOpportunityTable(w io.Writer, records []schema.QueryRecord, totals schema.QueryTotals, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	maxKeyWidth := getMaxKeyWidth(cfg)

	if _, err := fmt.Fprintf(w, "Opportunity queries (position %g-%g, above-median impressions)\n", cfg.LowBound, cfg.HighBound); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	headers := []string{"Query", "Clicks", "Impressions", "CTR", "Position"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			contract.TruncateText(r.Key, maxKeyWidth),
			fmtFloat(r.Clicks),
			fmtFloat(r.Impressions),
			fmt.Sprintf("%.*f%%", cfg.Precision, r.CTR),
			fmt.Sprintf("%.1f", r.Position),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_ = table.Close()

	if _, err := fmt.Fprintf(w, "Export totals: %d queries, %.0f clicks, %.0f impressions\n",
		totals.Queries, totals.Clicks, totals.Impressions); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Found %d opportunities in %v\n", len(records), duration)
	return err
}

// writeCSVResultsForOpportunities writes the opportunity records to a
// CSV writer.
func writeCSVResultsForOpportunities(w *csv.Writer, records []schema.QueryRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	header := []string{"query", "clicks", "impressions", "ctr", "position"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Key,
			fmtFloat(r.Clicks),
			fmtFloat(r.Impressions),
			fmtFloat(r.CTR),
			fmt.Sprintf("%.1f", r.Position),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// convertMovers flattens ranked records for direct parquet output.
func convertMovers(ranked []schema.RankedRecord, metric string, precision int) []parquet.MetricDelta {
	out := make([]parquet.MetricDelta, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, parquet.MetricDelta{
			Entity:    r.Key,
			Metric:    metric,
			Current:   r.Current,
			Previous:  r.Previous,
			ChangeAbs: r.Delta.AbsChange,
			ChangePct: r.Delta.PctDisplay(precision),
		})
	}
	return out
}
