package core

import "github.com/searchpulse/searchpulse/schema"

// Aggregate merges per-entity comparison sets into a consolidated wide
// table: one row per entity in input order, one column triple per metric
// name observed across all sets (union, first-seen order). Entities
// missing a metric simply have no cell for it; failed metric entries are
// treated the same way. Re-aggregating the same input list produces an
// identical table.
func Aggregate(sets []schema.EntityComparisonSet) schema.AggregateTable {
	table := schema.AggregateTable{
		Metrics: make([]string, 0),
		Rows:    make([]schema.AggregateRow, 0, len(sets)),
	}

	seen := make(map[string]struct{})
	for _, set := range sets {
		row := schema.AggregateRow{
			Entity: set.Entity,
			Cells:  make(map[string]schema.MetricCell, len(set.Metrics)),
		}
		for _, m := range set.Metrics {
			if m.Failed {
				continue
			}
			if _, ok := seen[m.Name]; !ok {
				seen[m.Name] = struct{}{}
				table.Metrics = append(table.Metrics, m.Name)
			}
			row.Cells[m.Name] = schema.MetricCell{
				Current: m.Current,
				Delta:   m.Delta,
				Trend:   m.Trend,
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
