package core

import (
	"testing"

	"github.com/searchpulse/searchpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSet(entity string, metrics ...schema.MetricComparison) schema.EntityComparisonSet {
	return schema.EntityComparisonSet{Entity: entity, Banding: schema.ThreeBand, Metrics: metrics}
}

func metricRow(name string, current, pct float64, trend schema.TrendCategory) schema.MetricComparison {
	return schema.MetricComparison{
		Name:    name,
		Current: current,
		Delta:   schema.DeltaResult{AbsChange: current * pct / (100 + pct), PctChange: pct, Basis: schema.MeasuredBasis},
		Trend:   trend,
	}
}

func TestAggregate_UnionColumns(t *testing.T) {
	sets := []schema.EntityComparisonSet{
		buildSet("alpha",
			metricRow("clicks", 1200, 20, schema.Growth),
			metricRow("impressions", 45000, -1, schema.Neutral),
		),
		buildSet("beta",
			metricRow("clicks", 300, -10, schema.Decline),
			metricRow("ctr", 2.1, 8, schema.Growth),
		),
	}

	table := Aggregate(sets)

	// Union of metric names in first-seen order
	assert.Equal(t, []string{"clicks", "impressions", "ctr"}, table.Metrics)
	require.Len(t, table.Rows, 2)

	// Row order follows input order
	assert.Equal(t, "alpha", table.Rows[0].Entity)
	assert.Equal(t, "beta", table.Rows[1].Entity)

	// Alpha has no ctr cell; beta has no impressions cell
	_, ok := table.Rows[0].Cells["ctr"]
	assert.False(t, ok)
	_, ok = table.Rows[1].Cells["impressions"]
	assert.False(t, ok)

	cell := table.Rows[0].Cells["clicks"]
	assert.InDelta(t, 1200, cell.Current, 1e-9)
	assert.Equal(t, schema.Growth, cell.Trend)
}

func TestAggregate_SkipsFailedMetrics(t *testing.T) {
	sets := []schema.EntityComparisonSet{
		buildSet("alpha",
			metricRow("clicks", 1200, 20, schema.Growth),
			schema.MetricComparison{Name: "impressions", Failed: true, FailCause: "unparsable value"},
		),
	}

	table := Aggregate(sets)
	assert.Equal(t, []string{"clicks"}, table.Metrics)
	_, ok := table.Rows[0].Cells["impressions"]
	assert.False(t, ok)
}

func TestAggregate_Idempotent(t *testing.T) {
	sets := []schema.EntityComparisonSet{
		buildSet("alpha", metricRow("clicks", 1200, 20, schema.Growth)),
		buildSet("beta", metricRow("clicks", 300, -10, schema.Decline)),
	}

	first := Aggregate(sets)
	second := Aggregate(sets)
	assert.Equal(t, first, second)
}

func TestAggregate_Empty(t *testing.T) {
	table := Aggregate(nil)
	assert.Empty(t, table.Metrics)
	assert.Empty(t, table.Rows)
}
