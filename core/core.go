// Package core has the comparison, classification, aggregation and
// ranking logic plus the executor entry points used by the CLI and the
// MCP server.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/internal/ingest"
	"github.com/searchpulse/searchpulse/internal/outwriter"
	"github.com/searchpulse/searchpulse/schema"
)

// ExecutorFunc defines the function signature for executing the
// different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// CompareEntities ingests every configured comparison file and runs the
// engine per entity. Unreadable files are warned about and skipped;
// having no usable file at all is an error.
func CompareEntities(cfg *contract.Config) ([]schema.EntityComparisonSet, error) {
	if len(cfg.InputFiles) == 0 {
		return nil, errors.New("at least one comparison file is required")
	}

	engine := NewComparisonEngine(cfg.Banding, cfg.Polarities)
	sets := make([]schema.EntityComparisonSet, 0, len(cfg.InputFiles))
	for _, path := range cfg.InputFiles {
		samples, err := ingest.ReadComparisonFile(path)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("skipping %s", path), err)
			continue
		}
		entity := contract.EntitySlug(path)
		if cfg.Entity != "" && len(cfg.InputFiles) == 1 {
			entity = cfg.Entity
		}
		sets = append(sets, engine.Compare(entity, samples))
	}

	if len(sets) == 0 {
		return nil, errors.New("no usable comparison files")
	}
	return sets, nil
}

// ExecuteCompare runs the per-entity comparison, persists the run, and
// writes the classified results. Entry point for the 'compare' command.
func ExecuteCompare(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	sets, err := CompareEntities(cfg)
	if err != nil {
		return err
	}

	persistRun(mgr, cfg, sets, start)

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteComparisons(sets, cfg, duration)
}

// ExecuteAggregate compares all entities and writes the consolidated
// wide summary table. Entry point for the 'aggregate' command.
func ExecuteAggregate(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	sets, err := CompareEntities(cfg)
	if err != nil {
		return err
	}

	persistRun(mgr, cfg, sets, start)

	table := Aggregate(sets)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteAggregate(table, cfg, duration)
}

// ExecuteSummary writes the narrative per-entity summaries.
func ExecuteSummary(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	sets, err := CompareEntities(cfg)
	if err != nil {
		return err
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer outwriter.CloseIfFile(file)

	for i, set := range sets {
		if i > 0 {
			if _, err := fmt.Fprintln(file); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(file, SummarizeEntity(set, cfg.Precision)); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteMovers ranks a query export by change on the chosen metric and
// writes the top gainers or decliners.
func ExecuteMovers(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	data, err := readSingleQueryFile(cfg)
	if err != nil {
		return err
	}

	metric := cfg.Metric
	if metric == "" {
		metric = "impressions"
	}
	records, err := data.MoverRecords(metric)
	if err != nil {
		return err
	}

	extractor := NewInsightExtractor()
	ranked := extractor.TopMovers(records, cfg.ResultLimit, cfg.Direction)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteMovers(ranked, metric, cfg, duration)
}

// ExecuteOpportunities filters a query export for near-page-one queries
// with above-median impressions and writes them.
func ExecuteOpportunities(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	data, err := readSingleQueryFile(cfg)
	if err != nil {
		return err
	}

	extractor := NewInsightExtractor()
	opportunities := extractor.Opportunities(data.Records, cfg.LowBound, cfg.HighBound, cfg.Floor, cfg.ResultLimit)
	totals := extractor.Totals(data.Records)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteOpportunities(opportunities, totals, cfg, duration)
}

// ExecuteMetricsInfo displays the banding thresholds, trend labels and
// polarity configuration. Static display, no input files needed.
func ExecuteMetricsInfo(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.NewOutWriter().WriteBandingDefinitions(cfg)
}

// readSingleQueryFile resolves the single query export for insights.
func readSingleQueryFile(cfg *contract.Config) (*ingest.QueryData, error) {
	if len(cfg.InputFiles) != 1 {
		return nil, errors.New("exactly one query export file is required")
	}
	data, err := ingest.ReadQueryFile(cfg.InputFiles[0])
	if err != nil {
		return nil, err
	}
	if data.Skipped > 0 {
		contract.LogWarn(fmt.Sprintf("%s", cfg.InputFiles[0]), fmt.Errorf("excluded %d malformed rows", data.Skipped))
	}
	return data, nil
}

// persistRun records the comparison sets in the run store. Store
// failures degrade to warnings; persistence never blocks reporting.
func persistRun(mgr contract.StoreManager, cfg *contract.Config, sets []schema.EntityComparisonSet, start time.Time) {
	if mgr == nil {
		return
	}
	store := mgr.GetRunStore()
	if store == nil {
		return
	}

	params := map[string]any{
		"banding":   string(cfg.Banding),
		"precision": cfg.Precision,
		"entities":  len(sets),
	}
	runID, err := store.BeginRun(start, params)
	if err != nil {
		contract.LogWarn("could not begin run record", err)
		return
	}
	for _, set := range sets {
		if err := store.RecordComparison(runID, set, cfg.Precision); err != nil {
			contract.LogWarn(fmt.Sprintf("could not record comparison for %s", set.Entity), err)
		}
	}
	if err := store.EndRun(runID, time.Now(), len(sets)); err != nil {
		contract.LogWarn("could not finalize run record", err)
	}
}
