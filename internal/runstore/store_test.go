package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/searchpulse/searchpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func comparisonSet() schema.EntityComparisonSet {
	return schema.EntityComparisonSet{
		Entity:  "acme-dental",
		Banding: schema.ThreeBand,
		Metrics: []schema.MetricComparison{
			{
				Name:     "clicks",
				Current:  1200,
				Previous: 1000,
				Delta:    schema.DeltaResult{AbsChange: 200, PctChange: 20, Basis: schema.MeasuredBasis},
				Trend:    schema.Growth,
			},
			{
				Name:     "impressions",
				Current:  45,
				Previous: 0,
				Delta:    schema.DeltaResult{AbsChange: 45, PctChange: 100, Basis: schema.NewBasis},
				Trend:    schema.Growth,
			},
			{Name: "ctr", Failed: true, FailCause: `unparsable value "n/a"`},
		},
	}
}

func TestNoneBackendIsNoOp(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), map[string]any{"banding": "3"})
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.RecordComparison(runID, comparisonSet(), 2))
	require.NoError(t, store.EndRun(runID, time.Now(), 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.False(t, status.Connected)

	require.NoError(t, store.Clear())
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("redis"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := newTestStore(t)

	start := time.Now().Add(-time.Second)
	runID, err := store.BeginRun(start, map[string]any{"banding": "3", "entities": 1})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.RecordComparison(runID, comparisonSet(), 2))
	require.NoError(t, store.EndRun(runID, time.Now(), 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.WithinDuration(t, start, run.StartTime, time.Millisecond)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.DurationMs)
	assert.GreaterOrEqual(t, *run.DurationMs, int32(1000))
	assert.Equal(t, int32(1), run.TotalEntities)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"banding":"3"`)

	// Failed metrics are never persisted
	rows, err := store.GetAllMetricRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	clicks := rows[0]
	assert.Equal(t, "clicks", clicks.Metric)
	assert.Equal(t, "acme-dental", clicks.Entity)
	assert.InDelta(t, 1200, clicks.Current, 1e-9)
	assert.Equal(t, "20.00", clicks.ChangePct)
	assert.Equal(t, "growth", clicks.Trend)
	assert.False(t, clicks.RecordedAt.IsZero())

	// Zero-baseline rows keep the sentinel in text form
	assert.Equal(t, schema.NewSentinel, rows[1].ChangePct)
}

func TestRecordComparisonIdempotent(t *testing.T) {
	store := newTestStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	set := comparisonSet()
	require.NoError(t, store.RecordComparison(runID, set, 2))

	// Re-recording the same run replaces rows instead of duplicating
	set.Metrics[0].Current = 1300
	set.Metrics[0].Delta = schema.DeltaResult{AbsChange: 300, PctChange: 30, Basis: schema.MeasuredBasis}
	require.NoError(t, store.RecordComparison(runID, set, 2))

	rows, err := store.GetAllMetricRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.InDelta(t, 1300, rows[0].Current, 1e-9)
	assert.Equal(t, "30.00", rows[0].ChangePct)
}

func TestGetStatus(t *testing.T) {
	store := newTestStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	_, err = store.BeginRun(time.Now().Add(-time.Minute), nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordComparison(second, comparisonSet(), 2))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, int64(2), status.TableSizes[reportRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[metricDeltasTable])
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordComparison(runID, comparisonSet(), 2))

	require.NoError(t, store.Clear())

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	rows, err := store.GetAllMetricRows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDropStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, DropStore(schema.SQLiteBackend, dbPath, ""))

	// Removing a missing file is fine too
	require.NoError(t, DropStore(schema.SQLiteBackend, dbPath, ""))

	assert.Error(t, DropStore(schema.SQLiteBackend, "", ""))
	require.NoError(t, DropStore(schema.NoneBackend, "", ""))
}
