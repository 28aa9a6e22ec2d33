package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/searchpulse/searchpulse/schema"
)

// QueryData holds everything parsed from a per-query export: the
// current-state records, the rows skipped due to malformed numerics,
// and the mover pairs available per metric.
type QueryData struct {
	Records []schema.QueryRecord
	Skipped int // rows excluded due to malformed numeric fields

	// movers maps a metric name to its current/previous record pairs,
	// present only when the export carries {metric}_current and
	// {metric}_previous column pairs.
	movers map[string][]schema.MoverRecord
}

// MoverRecords returns the ranking records for a metric, or an error
// naming the available metrics when the export has no such pair.
func (d *QueryData) MoverRecords(metric string) ([]schema.MoverRecord, error) {
	if recs, ok := d.movers[metric]; ok {
		return recs, nil
	}
	available := make([]string, 0, len(d.movers))
	for name := range d.movers {
		available = append(available, name)
	}
	return nil, fmt.Errorf("no %s_current/%s_previous columns in export (available: %s)",
		metric, metric, strings.Join(available, ", "))
}

// MoverMetrics reports whether any mover column pairs were found.
func (d *QueryData) MoverMetrics() int {
	return len(d.movers)
}

// ReadQueryFile reads a per-query export. The header must include a
// "query" column; clicks, impressions, ctr and position are picked up
// when present, any {metric}_current/{metric}_previous pairs become
// mover records, and unrecognized columns pass through in Extra.
func ReadQueryFile(path string) (*QueryData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open query file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadQueries(f)
}

// ReadQueries parses query records from a reader.
func ReadQueries(r io.Reader) (*QueryData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[schema.NormalizeMetricName(h)] = i
	}
	keyIdx, ok := cols["query"]
	if !ok {
		return nil, fmt.Errorf("query column is required")
	}

	// Discover {metric}_current/{metric}_previous pairs.
	moverMetrics := make(map[string]struct{})
	for name := range cols {
		if metric, found := strings.CutSuffix(name, "_current"); found {
			if _, ok := cols[metric+"_previous"]; ok {
				moverMetrics[metric] = struct{}{}
			}
		}
	}

	data := &QueryData{movers: make(map[string][]schema.MoverRecord)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if keyIdx >= len(row) || strings.TrimSpace(row[keyIdx]) == "" {
			data.Skipped++
			continue
		}
		key := strings.TrimSpace(row[keyIdx])

		rec := schema.QueryRecord{Key: key, Extra: make(map[string]string)}
		bad := false
		for name, idx := range cols {
			if idx == keyIdx || idx >= len(row) {
				continue
			}
			switch name {
			case "clicks":
				rec.Clicks, err = parseField(row[idx])
			case "impressions":
				rec.Impressions, err = parseField(row[idx])
			case "ctr":
				rec.CTR, err = parseField(row[idx])
			case "position":
				rec.Position, err = parseField(row[idx])
			default:
				if !strings.HasSuffix(name, "_current") && !strings.HasSuffix(name, "_previous") {
					rec.Extra[name] = row[idx]
				}
				continue
			}
			if err != nil {
				bad = true
			}
		}
		if bad {
			data.Skipped++
			continue
		}
		data.Records = append(data.Records, rec)

		for metric := range moverMetrics {
			curIdx := cols[metric+"_current"]
			prevIdx := cols[metric+"_previous"]
			if curIdx >= len(row) || prevIdx >= len(row) {
				continue
			}
			cur, errCur := parseField(row[curIdx])
			prev, errPrev := parseField(row[prevIdx])
			if errCur != nil || errPrev != nil {
				continue
			}
			data.movers[metric] = append(data.movers[metric], schema.MoverRecord{
				Key:      key,
				Current:  cur,
				Previous: prev,
			})
		}
	}

	if len(data.Records) == 0 {
		return nil, fmt.Errorf("no usable query rows found (%d skipped)", data.Skipped)
	}
	return data, nil
}

// parseField parses one numeric export field, accepting percent
// suffixes and thousands separators. Empty fields count as zero since
// exports omit metrics with no data.
func parseField(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable value %q", raw)
	}
	return v, nil
}
