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

// PrintComparisonResults resolves the output destination and writes
// per-entity comparison results in the configured format.
func PrintComparisonResults(sets []schema.EntityComparisonSet, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		rows := parquet.ConvertComparisonSets(sets, cfg.Precision)
		return parquet.WriteMetricDeltasParquet(rows, cfg.OutputFile)
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer CloseIfFile(file)
	return WriteComparisonResults(file, sets, cfg, duration)
}

// WriteComparisonResults outputs the comparison results, dispatching
// based on the configured output format.
func WriteComparisonResults(w io.Writer, sets []schema.EntityComparisonSet, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, sets); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVResultsForComparison(csvWriter, sets, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeComparisonTables(w, sets, cfg, duration)
	}
	return nil
}

// writeComparisonTables writes one human-readable table per entity.
func writeComparisonTables(w io.Writer, sets []schema.EntityComparisonSet, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	totalFailed := 0
	for _, set := range sets {
		if _, err := fmt.Fprintf(w, "Entity: %s (%s-band)\n", set.Entity, set.Banding); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)

		headers := []string{"Metric", "Current", "Previous", "Change %", "Change", "Trend"}
		table.Header(headers)

		// Numbers read better right-aligned
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, m := range set.Metrics {
			if m.Failed {
				totalFailed++
				data = append(data, []string{m.Name, "-", "-", "-", "-", "failed: " + m.FailCause})
				continue
			}
			data = append(data, []string{
				m.Name,
				fmtFloat(m.Current),
				fmtFloat(m.Previous),
				changeCell(m.Delta, m.Trend, cfg),
				fmtFloat(m.Delta.AbsChange),
				trendCell(m.Trend, cfg),
			})
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_ = table.Close()
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if totalFailed > 0 {
		if _, err := fmt.Fprintf(w, "Skipped %d malformed metric entries\n", totalFailed); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Compared %d entities in %v\n", len(sets), duration)
	return err
}

// writeCSVResultsForComparison writes all entity rows to a CSV writer.
func writeCSVResultsForComparison(w *csv.Writer, sets []schema.EntityComparisonSet, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	header := []string{
		"entity",
		"metric",
		"current",
		"previous",
		"change_pct",
		"change_abs",
		"trend",
		"trend_text",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, set := range sets {
		for _, m := range set.Metrics {
			if m.Failed {
				row := []string{set.Entity, m.Name, "", "", "", "", "failed", m.FailCause}
				if err := w.Write(row); err != nil {
					return err
				}
				continue
			}
			row := []string{
				set.Entity,
				m.Name,
				fmtFloat(m.Current),
				fmtFloat(m.Previous),
				m.Delta.PctDisplay(cfg.Precision),
				fmtFloat(m.Delta.AbsChange),
				string(m.Trend),
				m.TrendText,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
