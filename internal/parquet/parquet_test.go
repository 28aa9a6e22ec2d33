package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/searchpulse/searchpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(ReportRun))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_entities",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestMetricDeltaStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(MetricDelta))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"entity",
		"metric",
		"current",
		"previous",
		"change_abs",
		"change_pct",
		"trend",
		"trend_text",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteReportRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "report_runs.parquet")

	data := MockFetchReportRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	err := WriteReportRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ReportRun](file)
	defer reader.Close()

	readData := make([]ReportRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].TotalEntities, readData[i].TotalEntities, "TotalEntities should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteMetricDeltasParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "metric_deltas.parquet")

	data := MockFetchMetricDeltas()
	require.NotEmpty(t, data, "Mock data should not be empty")

	err := WriteMetricDeltasParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[MetricDelta](file)
	defer reader.Close()

	readData := make([]MetricDelta, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Entity, readData[i].Entity, "Entity should match")
		assert.Equal(t, data[i].Metric, readData[i].Metric, "Metric should match")
		assert.InDelta(t, data[i].Current, readData[i].Current, 1e-9, "Current should match")
		assert.InDelta(t, data[i].Previous, readData[i].Previous, 1e-9, "Previous should match")
		assert.InDelta(t, data[i].ChangeAbs, readData[i].ChangeAbs, 1e-9, "ChangeAbs should match")
		assert.Equal(t, data[i].ChangePct, readData[i].ChangePct, "ChangePct should match")
		assert.Equal(t, data[i].Trend, readData[i].Trend, "Trend should match")
		assert.Equal(t, data[i].TrendText, readData[i].TrendText, "TrendText should match")
	}
}

func TestWriteReportRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_report_runs.parquet")

	err := WriteReportRunsParquet([]ReportRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.GreaterOrEqual(t, info.Size(), int64(0))
}

func TestConvertRunRecords(t *testing.T) {
	end := time.Now()
	duration := int32(850)
	params := `{"banding":"3"}`

	records := []schema.RunRecord{
		{
			RunID:         7,
			StartTime:     end.Add(-time.Second),
			EndTime:       &end,
			DurationMs:    &duration,
			TotalEntities: 3,
			ConfigParams:  &params,
		},
	}

	out := ConvertRunRecords(records)
	require.Len(t, out, 1)
	assert.Equal(t, int64(7), out[0].RunID)
	assert.Equal(t, int32(3), out[0].TotalEntities)
	require.NotNil(t, out[0].RunDurationMs)
	assert.Equal(t, duration, *out[0].RunDurationMs)
}

func TestConvertComparisonSets(t *testing.T) {
	sets := []schema.EntityComparisonSet{
		{
			Entity: "acme-dental",
			Metrics: []schema.MetricComparison{
				{
					Name:      "clicks",
					Current:   1200,
					Previous:  1000,
					Delta:     schema.DeltaResult{AbsChange: 200, PctChange: 20, Basis: schema.MeasuredBasis},
					Trend:     schema.Growth,
					TrendText: "Moderate growth",
				},
				{Name: "ctr", Failed: true, FailCause: "unparsable value"},
			},
		},
	}

	out := ConvertComparisonSets(sets, 2)
	require.Len(t, out, 1, "Failed rows should be dropped")
	assert.Equal(t, "clicks", out[0].Metric)
	assert.Equal(t, "20.00", out[0].ChangePct)
	assert.Equal(t, "growth", out[0].Trend)
}
