package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(files ...string) *contract.Config {
	return &contract.Config{
		InputFiles:  files,
		Banding:     schema.ThreeBand,
		Polarities:  schema.DefaultPolarities,
		Precision:   2,
		ResultLimit: 5,
		Direction:   schema.GrowthDirection,
		LowBound:    11,
		HighBound:   20,
		Output:      schema.JSONOut,
	}
}

func TestCompareEntities(t *testing.T) {
	dir := t.TempDir()
	export := writeTestExport(t, dir, "GSC-30vs30-overMonth-acme-dental.csv",
		"Metric,Current,Previous\nClicks,1200,1000\nPosition,8,10\n")

	cfg := testConfig(export)
	sets, err := CompareEntities(cfg)
	require.NoError(t, err)
	require.Len(t, sets, 1)

	// Entity derived from the filename with export prefix stripped
	assert.Equal(t, "acme-dental", sets[0].Entity)
	require.Len(t, sets[0].Metrics, 2)
	assert.Equal(t, schema.Growth, sets[0].Metrics[0].Trend)
}

func TestCompareEntities_EntityOverride(t *testing.T) {
	dir := t.TempDir()
	export := writeTestExport(t, dir, "data.csv", "Metric,Current,Previous\nClicks,1200,1000\n")

	cfg := testConfig(export)
	cfg.Entity = "custom-name"
	sets, err := CompareEntities(cfg)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "custom-name", sets[0].Entity)
}

func TestCompareEntities_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeTestExport(t, dir, "good.csv", "Metric,Current,Previous\nClicks,1200,1000\n")
	missing := filepath.Join(dir, "does-not-exist.csv")

	cfg := testConfig(missing, good)
	sets, err := CompareEntities(cfg)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "good", sets[0].Entity)
}

func TestCompareEntities_Errors(t *testing.T) {
	_, err := CompareEntities(testConfig())
	assert.ErrorContains(t, err, "at least one comparison file")

	_, err = CompareEntities(testConfig("/nonexistent/export.csv"))
	assert.ErrorContains(t, err, "no usable comparison files")
}

func TestExecuteCompare_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	export := writeTestExport(t, dir, "GSC-30vs30-overMonth-acme-dental.csv",
		"Metric,Current,Previous\nClicks,1200,1000\n")
	outFile := filepath.Join(dir, "out.json")

	cfg := testConfig(export)
	cfg.OutputFile = outFile

	require.NoError(t, ExecuteCompare(context.Background(), cfg, nil))

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var sets []schema.EntityComparisonSet
	require.NoError(t, json.Unmarshal(raw, &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, "acme-dental", sets[0].Entity)
	assert.Equal(t, schema.Growth, sets[0].Metrics[0].Trend)
}

func TestExecuteAggregate_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	alpha := writeTestExport(t, dir, "alpha.csv", "Metric,Current,Previous\nClicks,1200,1000\n")
	beta := writeTestExport(t, dir, "beta.csv", "Metric,Current,Previous\nCTR,3.42,3.17\n")
	outFile := filepath.Join(dir, "out.json")

	cfg := testConfig(alpha, beta)
	cfg.OutputFile = outFile

	require.NoError(t, ExecuteAggregate(context.Background(), cfg, nil))

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var table schema.AggregateTable
	require.NoError(t, json.Unmarshal(raw, &table))
	assert.Equal(t, []string{"clicks", "ctr"}, table.Metrics)
	require.Len(t, table.Rows, 2)
}

func TestExecuteMovers_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	export := writeTestExport(t, dir, "GSC-queries-acme.csv",
		"query,impressions_current,impressions_previous\nroot canal,150,100\nteeth whitening,120,100\n")
	outFile := filepath.Join(dir, "out.json")

	cfg := testConfig(export)
	cfg.OutputFile = outFile
	cfg.Metric = "impressions"

	require.NoError(t, ExecuteMovers(context.Background(), cfg, nil))

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var ranked []schema.RankedRecord
	require.NoError(t, json.Unmarshal(raw, &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "root canal", ranked[0].Key)
}

func TestExecuteOpportunities_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	export := writeTestExport(t, dir, "GSC-queries-acme.csv",
		"query,clicks,impressions,ctr,position\n"+
			"dentist near me,40,900,4.4,12\n"+
			"emergency dentist,10,100,10.0,15\n"+
			"invisalign cost,30,600,5.0,18\n")
	outFile := filepath.Join(dir, "out.json")

	cfg := testConfig(export)
	cfg.OutputFile = outFile

	require.NoError(t, ExecuteOpportunities(context.Background(), cfg, nil))

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var result struct {
		Opportunities []schema.QueryRecord `json:"opportunities"`
		Totals        schema.QueryTotals   `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(raw, &result))

	// Median impressions is 600; only the 900-impression query exceeds it
	require.Len(t, result.Opportunities, 1)
	assert.Equal(t, "dentist near me", result.Opportunities[0].Key)
	assert.Equal(t, 3, result.Totals.Queries)
}
