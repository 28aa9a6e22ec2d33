package core

import (
	"sort"

	"github.com/searchpulse/searchpulse/schema"
)

// InsightExtractor ranks fine-grained record sets to surface top
// gainers, top decliners, and threshold-based opportunity sets.
type InsightExtractor struct {
	calc *DeltaCalculator
}

// NewInsightExtractor creates an InsightExtractor.
func NewInsightExtractor() *InsightExtractor {
	return &InsightExtractor{calc: NewDeltaCalculator()}
}

// TopMovers returns the n records with the largest change (growth) or
// the most negative change (decline). Change is current - previous with
// the delta calculator's sentinel policy for zero baselines. The sort is
// stable: ties keep original input order, first seen wins. An n larger
// than the record count returns all records sorted.
func (x *InsightExtractor) TopMovers(records []schema.MoverRecord, n int, direction schema.Direction) []schema.RankedRecord {
	ranked := make([]schema.RankedRecord, 0, len(records))
	for _, r := range records {
		ranked = append(ranked, schema.RankedRecord{
			Key:      r.Key,
			Current:  r.Current,
			Previous: r.Previous,
			Delta:    x.calc.Compute(r.Current, r.Previous),
		})
	}

	if direction == schema.DeclineDirection {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Delta.AbsChange < ranked[j].Delta.AbsChange
		})
	} else {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Delta.AbsChange > ranked[j].Delta.AbsChange
		})
	}

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Opportunities filters query records whose position falls within
// [lowBound, highBound] inclusive and whose impressions exceed both the
// median impressions across all input records and the optional floor.
// Results are sorted descending by impressions and truncated to limit.
// Empty input, or a degenerate median where no record can exceed it,
// yields an empty result.
func (x *InsightExtractor) Opportunities(records []schema.QueryRecord, lowBound, highBound, floor float64, limit int) []schema.QueryRecord {
	if len(records) == 0 {
		return nil
	}

	med := medianImpressions(records)
	cutoff := med
	if floor > cutoff {
		cutoff = floor
	}

	var out []schema.QueryRecord
	for _, r := range records {
		if r.Position < lowBound || r.Position > highBound {
			continue
		}
		if r.Impressions <= cutoff {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Impressions > out[j].Impressions
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Totals sums a query record set for the analysis header.
func (x *InsightExtractor) Totals(records []schema.QueryRecord) schema.QueryTotals {
	t := schema.QueryTotals{Queries: len(records)}
	for _, r := range records {
		t.Clicks += r.Clicks
		t.Impressions += r.Impressions
	}
	return t
}

// medianImpressions returns the median of the impressions column,
// averaging the two middle values for even-length inputs.
func medianImpressions(records []schema.QueryRecord) float64 {
	vals := make([]float64, len(records))
	for i, r := range records {
		vals[i] = r.Impressions
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2
	}
	return vals[mid]
}
