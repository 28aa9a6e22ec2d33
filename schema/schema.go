// Package schema has configs, models and constants for all parts of searchpulse.
package schema

import "time"

// MetricSample is a single named metric pair as it arrives from an export.
// Current and Previous are kept as raw strings so that a malformed value
// for one metric surfaces as a failed entry instead of aborting the
// whole entity (see core.ComparisonEngine).
type MetricSample struct {
	Name        string // Normalized metric name, e.g. "clicks", "position"
	CurrentRaw  string // Raw current-period value, may carry "%" or thousands separators
	PreviousRaw string // Raw baseline value in the same format
}

// DeltaResult holds the absolute and percentage change for one metric pair.
// PctChange carries full precision; rounding happens at render time only.
type DeltaResult struct {
	AbsChange float64    `json:"change_abs"`
	PctChange float64    `json:"change_pct"` // 0 for FlatBasis, 100 for NewBasis by convention
	Basis     DeltaBasis `json:"basis"`
}

// Defined returns true when PctChange is a real measurement rather than
// a zero-baseline sentinel.
func (d DeltaResult) Defined() bool {
	return d.Basis == MeasuredBasis
}

// MetricComparison is one classified row of an entity comparison.
type MetricComparison struct {
	Name      string        `json:"metric"`
	Current   float64       `json:"current"`
	Previous  float64       `json:"previous"`
	Delta     DeltaResult   `json:"delta"`
	Trend     TrendCategory `json:"trend"`
	TrendText string        `json:"trend_text"`
	Failed    bool          `json:"failed,omitempty"`
	FailCause string        `json:"fail_cause,omitempty"` // parse error detail when Failed
}

// EntityComparisonSet holds the full ordered comparison for one entity.
// It is created fresh per run and never mutated afterwards.
type EntityComparisonSet struct {
	Entity  string             `json:"entity"`
	Banding Banding            `json:"banding"`
	Metrics []MetricComparison `json:"metrics"` // insertion order = input order
}

// FailedCount returns the number of metrics that could not be computed.
func (s EntityComparisonSet) FailedCount() int {
	n := 0
	for _, m := range s.Metrics {
		if m.Failed {
			n++
		}
	}
	return n
}

// MetricCell is one aggregate table cell for a (entity, metric) pair.
type MetricCell struct {
	Current float64       `json:"current"`
	Delta   DeltaResult   `json:"change"`
	Trend   TrendCategory `json:"trend"`
}

// AggregateRow is one entity row in the consolidated summary table.
// Metrics missing for this entity are simply absent from Cells.
type AggregateRow struct {
	Entity string                `json:"entity"`
	Cells  map[string]MetricCell `json:"cells"`
}

// AggregateTable is the consolidated multi-entity summary. Metrics holds
// the union of metric names across all input sets in first-seen order;
// Rows preserve the input order of the comparison sets.
type AggregateTable struct {
	Metrics []string       `json:"metrics"`
	Rows    []AggregateRow `json:"rows"`
}

// MoverRecord is one fine-grained record (e.g. per-query) prepared for
// ranking on a single chosen metric.
type MoverRecord struct {
	Key      string            `json:"key"`
	Current  float64           `json:"current"`
	Previous float64           `json:"previous"`
	Extra    map[string]string `json:"extra,omitempty"` // passthrough columns
}

// RankedRecord is a MoverRecord with its computed change attached.
// Derived and ephemeral; recomputed every run.
type RankedRecord struct {
	Key      string      `json:"key"`
	Current  float64     `json:"current"`
	Previous float64     `json:"previous"`
	Delta    DeltaResult `json:"delta"`
}

// QueryRecord is one per-query row used for opportunity analysis.
type QueryRecord struct {
	Key         string            `json:"query"`
	Clicks      float64           `json:"clicks"`
	Impressions float64           `json:"impressions"`
	CTR         float64           `json:"ctr"`
	Position    float64           `json:"position"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// QueryTotals summarizes a query record set.
type QueryTotals struct {
	Queries     int     `json:"total_queries"`
	Clicks      float64 `json:"total_clicks"`
	Impressions float64 `json:"total_impressions"`
}

// RunRecord describes one persisted engine run.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	DurationMs    *int32
	TotalEntities int32
	ConfigParams  *string // JSON-encoded parameters
}

// MetricRowRecord is one persisted metric delta row.
type MetricRowRecord struct {
	RunID      int64
	Entity     string
	Metric     string
	Current    float64
	Previous   float64
	ChangeAbs  float64
	ChangePct  string // sentinel-aware display form, e.g. "20.00", "N/A", "+∞"
	Trend      string
	RecordedAt time.Time
}

// StoreStatus holds status information for the run store.
type StoreStatus struct {
	Backend       DatabaseBackend
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TableSizes    map[string]int64
}
