package runstore

import (
	"errors"
	"fmt"

	"github.com/searchpulse/searchpulse/internal/parquet"
)

// ExecuteRunsExport exports the persisted run history to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total metric rows: %d\n", status.TableSizes[metricDeltasTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all metric delta rows
	metricRows, err := store.GetAllMetricRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric rows: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetMetricRows := parquet.ConvertMetricRowRecords(metricRows)

	// Write runs to Parquet
	runsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write metric deltas to Parquet
	metricRowsFile := outputFile + ".report_metric_deltas.parquet"
	if err := parquet.WriteMetricDeltasParquet(parquetMetricRows, metricRowsFile); err != nil {
		return fmt.Errorf("failed to write metric rows: %w", err)
	}
	fmt.Printf("Exported %d metric rows to: %s\n", len(parquetMetricRows), metricRowsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
