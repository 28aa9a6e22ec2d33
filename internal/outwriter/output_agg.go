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

// PrintAggregateTable resolves the output destination and writes the
// consolidated summary in the configured format.
func PrintAggregateTable(table schema.AggregateTable, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		return parquet.WriteMetricDeltasParquet(flattenAggregate(table, cfg.Precision), cfg.OutputFile)
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer CloseIfFile(file)
	return WriteAggregateTable(file, table, cfg, duration)
}

// WriteAggregateTable outputs the aggregate table, dispatching based on
// the configured output format.
func WriteAggregateTable(w io.Writer, table schema.AggregateTable, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, table); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeAggregateRows(table, cfg, func(row []string) error {
			return csvWriter.Write(row)
		})
	default:
		return writeAggregateText(w, table, cfg, duration)
	}
}

// aggregateHeader builds the wide header: entity plus a current/change/
// trend column triple per metric, in first-seen metric order.
func aggregateHeader(table schema.AggregateTable) []string {
	header := []string{"entity"}
	for _, m := range table.Metrics {
		header = append(header, m+"_current", m+"_change", m+"_trend")
	}
	return header
}

// writeAggregateRows emits the header and every row through sink.
// Entities missing a metric get empty cells, never an error.
func writeAggregateRows(table schema.AggregateTable, cfg *contract.Config, sink func([]string) error) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if err := sink(aggregateHeader(table)); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := []string{row.Entity}
		for _, m := range table.Metrics {
			cell, ok := row.Cells[m]
			if !ok {
				record = append(record, "", "", "")
				continue
			}
			record = append(record,
				fmtFloat(cell.Current),
				cell.Delta.PctDisplay(cfg.Precision),
				string(cell.Trend),
			)
		}
		if err := sink(record); err != nil {
			return err
		}
	}
	return nil
}

// writeAggregateText writes the human-readable wide table.
func writeAggregateText(w io.Writer, table schema.AggregateTable, cfg *contract.Config, duration time.Duration) error {
	var rows [][]string
	err := writeAggregateRows(table, cfg, func(row []string) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(w)
	tbl.Header(rows[0])
	tbl.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := tbl.Bulk(rows[1:]); err != nil {
		return err
	}
	if err := tbl.Render(); err != nil {
		return err
	}
	_ = tbl.Close()
	_, err = fmt.Fprintf(w, "Aggregated %d entities across %d metrics in %v\n", len(table.Rows), len(table.Metrics), duration)
	return err
}

// flattenAggregate turns the wide table back into long-form rows for
// parquet output.
func flattenAggregate(table schema.AggregateTable, precision int) []parquet.MetricDelta {
	var out []parquet.MetricDelta
	for _, row := range table.Rows {
		for _, m := range table.Metrics {
			cell, ok := row.Cells[m]
			if !ok {
				continue
			}
			out = append(out, parquet.MetricDelta{
				Entity:    row.Entity,
				Metric:    m,
				Current:   cell.Current,
				Previous:  cell.Current - cell.Delta.AbsChange,
				ChangeAbs: cell.Delta.AbsChange,
				ChangePct: cell.Delta.PctDisplay(precision),
				Trend:     string(cell.Trend),
				TrendText: cell.Trend.Label(),
			})
		}
	}
	return out
}
