package schema

import (
	"fmt"
	"math"
	"strings"
)

// Label returns the human phrase for a trend category.
func (t TrendCategory) Label() string {
	if label, ok := TrendLabels[t]; ok {
		return label
	}
	return string(t)
}

// BetterThan reports whether t is a strictly better category than other.
// Categories are totally ordered from StrongDecline to StrongGrowth.
func (t TrendCategory) BetterThan(other TrendCategory) bool {
	return trendOrdinal(t) > trendOrdinal(other)
}

func trendOrdinal(t TrendCategory) int {
	for i, c := range AllTrendCategories {
		if c == t {
			return i
		}
	}
	return -1
}

// PctDisplay renders the percent change with the given precision, or the
// matching sentinel string when the change is undefined.
func (d DeltaResult) PctDisplay(precision int) string {
	switch d.Basis {
	case FlatBasis:
		return FlatSentinel
	case NewBasis:
		return NewSentinel
	default:
		return fmt.Sprintf("%.*f", precision, d.PctChange)
	}
}

// PctSigned renders the percent change with an explicit sign, used in
// narrative summaries ("+20.0%", "-3.1%").
func (d DeltaResult) PctSigned(precision int) string {
	switch d.Basis {
	case FlatBasis:
		return FlatSentinel
	case NewBasis:
		return NewSentinel
	default:
		return fmt.Sprintf("%+.*f%%", precision, d.PctChange)
	}
}

// RoundPct returns the percent change rounded to the given number of
// decimal places. Callers needing full precision use PctChange directly.
func (d DeltaResult) RoundPct(precision int) float64 {
	shift := math.Pow(10, float64(precision))
	return math.Round(d.PctChange*shift) / shift
}

// NormalizeMetricName converts an export header like "Average Position"
// into the canonical key form "average_position".
func NormalizeMetricName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(name, " ", "_")
}

// PolarityFor looks up the polarity of a metric name in the given map,
// defaulting to HigherIsBetter for unknown metrics.
func PolarityFor(polarities map[string]MetricPolarity, name string) MetricPolarity {
	if p, ok := polarities[name]; ok {
		return p
	}
	return HigherIsBetter
}

// DisplayMetricName converts a canonical key like "avg_position" into a
// title-cased phrase for narrative output.
func DisplayMetricName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if p == "ctr" {
			parts[i] = "CTR"
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
