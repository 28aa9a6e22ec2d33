package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/searchpulse/searchpulse/schema"
)

// ComparisonEngine runs the delta calculator and trend classifier across
// an ordered set of named metrics for one entity. All configuration is
// passed in at construction; the engine reads no ambient state and is
// fully deterministic.
type ComparisonEngine struct {
	calc       *DeltaCalculator
	classifier *TrendClassifier
	banding    schema.Banding
	polarities map[string]schema.MetricPolarity
}

// NewComparisonEngine creates an engine with the given banding scheme
// and polarity map. Metrics absent from the map are HigherIsBetter.
func NewComparisonEngine(banding schema.Banding, polarities map[string]schema.MetricPolarity) *ComparisonEngine {
	return &ComparisonEngine{
		calc:       NewDeltaCalculator(),
		classifier: NewTrendClassifier(banding),
		banding:    banding,
		polarities: polarities,
	}
}

// Compare computes the classified comparison for one entity. Samples are
// processed in input order and that order is preserved in the result.
// A malformed numeric value for one metric yields a failed entry with
// the parse error attached; all sibling metrics still compute normally.
func (e *ComparisonEngine) Compare(entity string, samples []schema.MetricSample) schema.EntityComparisonSet {
	set := schema.EntityComparisonSet{
		Entity:  entity,
		Banding: e.banding,
		Metrics: make([]schema.MetricComparison, 0, len(samples)),
	}

	for _, sample := range samples {
		name := schema.NormalizeMetricName(sample.Name)
		current, errCur := ParseMetricValue(sample.CurrentRaw)
		previous, errPrev := ParseMetricValue(sample.PreviousRaw)

		if errCur != nil || errPrev != nil {
			cause := errCur
			if cause == nil {
				cause = errPrev
			}
			set.Metrics = append(set.Metrics, schema.MetricComparison{
				Name:      name,
				Failed:    true,
				FailCause: cause.Error(),
			})
			continue
		}

		delta := e.calc.Compute(current, previous)
		polarity := schema.PolarityFor(e.polarities, name)
		trend, text := e.classifier.ClassifyDelta(delta, polarity)

		set.Metrics = append(set.Metrics, schema.MetricComparison{
			Name:      name,
			Current:   current,
			Previous:  previous,
			Delta:     delta,
			Trend:     trend,
			TrendText: text,
		})
	}

	return set
}

// ParseMetricValue parses a numeric export field. Percent suffixes and
// thousands separators are accepted ("3.42%", "1,200"). Negative values
// are rejected since metric values are non-negative by contract.
func ParseMetricValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable value %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %q", raw)
	}
	return v, nil
}
