// Package parquet provides data structures and functions for exporting
// report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/searchpulse/searchpulse/schema"
)

// ReportRun represents a single engine run with metadata.
// This struct maps to the report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalEntities is the number of entities compared in this run
	TotalEntities int32 `parquet:"total_entities,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MetricDelta represents one classified metric row of a comparison.
// This struct maps to the report_metric_deltas database table.
type MetricDelta struct {
	// RunID references the parent run (0 for direct exports)
	RunID int64 `parquet:"run_id,snappy"`

	// Entity is the client/site the row belongs to
	Entity string `parquet:"entity,snappy"`

	// Metric is the canonical metric name
	Metric string `parquet:"metric,snappy"`

	// Current is the current-period value
	Current float64 `parquet:"current,snappy"`

	// Previous is the baseline value
	Previous float64 `parquet:"previous,snappy"`

	// ChangeAbs is the absolute change
	ChangeAbs float64 `parquet:"change_abs,snappy"`

	// ChangePct is the sentinel-aware display form of the percent change
	ChangePct string `parquet:"change_pct,snappy"`

	// Trend is the classified trend category
	Trend string `parquet:"trend,snappy"`

	// TrendText is the human label for the trend
	TrendText string `parquet:"trend_text,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the struct tags.
	writer := parquet.NewGenericWriter[ReportRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteMetricDeltasParquet writes a slice of MetricDelta structs to a Parquet file.
func WriteMetricDeltasParquet(data []MetricDelta, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[MetricDelta](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// MockFetchReportRuns generates sample ReportRun data for demonstration.
func MockFetchReportRuns() []ReportRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(850 * time.Millisecond)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"banding":"3","entities":4,"precision":2}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(1200 * time.Millisecond)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"banding":"5","entities":12,"precision":1}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ReportRun{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalEntities: 4,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TotalEntities: 12,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil,
			TotalEntities: 0,
			ConfigParams:  nil,
		},
	}
}

// MockFetchMetricDeltas generates sample MetricDelta data for demonstration.
func MockFetchMetricDeltas() []MetricDelta {
	return []MetricDelta{
		{
			RunID:     1,
			Entity:    "acme-dental",
			Metric:    "clicks",
			Current:   1200,
			Previous:  1000,
			ChangeAbs: 200,
			ChangePct: "20.00",
			Trend:     "growth",
			TrendText: "Moderate growth",
		},
		{
			RunID:     1,
			Entity:    "acme-dental",
			Metric:    "position",
			Current:   8,
			Previous:  10,
			ChangeAbs: -2,
			ChangePct: "-20.00",
			Trend:     "growth",
			TrendText: "Moderate growth",
		},
		{
			RunID:     1,
			Entity:    "north-shore",
			Metric:    "impressions",
			Current:   45,
			Previous:  0,
			ChangeAbs: 45,
			ChangePct: "+∞",
			Trend:     "growth",
			TrendText: "New metric (no baseline data)",
		},
	}
}

// ConvertRunRecords converts store run records to their parquet form.
func ConvertRunRecords(runs []schema.RunRecord) []ReportRun {
	out := make([]ReportRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, ReportRun{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.DurationMs,
			TotalEntities: r.TotalEntities,
			ConfigParams:  r.ConfigParams,
		})
	}
	return out
}

// ConvertMetricRowRecords converts store metric rows to their parquet form.
func ConvertMetricRowRecords(rows []schema.MetricRowRecord) []MetricDelta {
	out := make([]MetricDelta, 0, len(rows))
	for _, r := range rows {
		out = append(out, MetricDelta{
			RunID:     r.RunID,
			Entity:    r.Entity,
			Metric:    r.Metric,
			Current:   r.Current,
			Previous:  r.Previous,
			ChangeAbs: r.ChangeAbs,
			ChangePct: r.ChangePct,
			Trend:     r.Trend,
		})
	}
	return out
}

// ConvertComparisonSets flattens entity comparison sets for direct
// parquet output (the 'compare --output parquet' path).
func ConvertComparisonSets(sets []schema.EntityComparisonSet, precision int) []MetricDelta {
	var out []MetricDelta
	for _, set := range sets {
		for _, m := range set.Metrics {
			if m.Failed {
				continue
			}
			out = append(out, MetricDelta{
				Entity:    set.Entity,
				Metric:    m.Name,
				Current:   m.Current,
				Previous:  m.Previous,
				ChangeAbs: m.Delta.AbsChange,
				ChangePct: m.Delta.PctDisplay(precision),
				Trend:     string(m.Trend),
				TrendText: m.TrendText,
			})
		}
	}
	return out
}
