// Package ingest reads metric comparison and query export files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/searchpulse/searchpulse/schema"
)

// ReadComparisonFile reads a per-entity comparison export with a
// "Metric,Current,Previous" header (extra columns ignored) and returns
// the samples in file order. Values stay raw strings; numeric parsing
// and failure isolation happen in the comparison engine.
func ReadComparisonFile(path string) ([]schema.MetricSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open comparison file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadComparison(f)
}

// ReadComparison parses comparison samples from a reader.
func ReadComparison(r io.Reader) ([]schema.MetricSample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may carry trailing extra columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("comparison file needs at least 3 columns (metric, current, previous), got %d", len(header))
	}

	var samples []schema.MetricSample
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		samples = append(samples, schema.MetricSample{
			Name:        row[0],
			CurrentRaw:  row[1],
			PreviousRaw: row[2],
		})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no metric rows found")
	}
	return samples, nil
}
