package core

import (
	"fmt"
	"strings"

	"github.com/searchpulse/searchpulse/schema"
)

// direction markers for narrative lines. The marker reflects whether the
// movement is an improvement, which the trend category already encodes
// (polarity inversion happens at classification time).
const (
	upMarker      = "↑"
	downMarker    = "↓"
	neutralMarker = "→"
)

// SummarizeEntity renders a short narrative performance summary for one
// comparison set, one line per metric in input order. Failed metrics are
// reported with their cause instead of numbers.
func SummarizeEntity(set schema.EntityComparisonSet, precision int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Performance summary for %s:\n", DisplayEntityName(set.Entity))

	for _, m := range set.Metrics {
		if m.Failed {
			fmt.Fprintf(&b, "%s %s: skipped (%s)\n", neutralMarker, schema.DisplayMetricName(m.Name), m.FailCause)
			continue
		}
		marker := trendMarker(m.Trend)
		fmt.Fprintf(&b, "%s %s: %s (%s) - %s\n",
			marker,
			schema.DisplayMetricName(m.Name),
			formatMetricValue(m.Name, m.Current, precision),
			m.Delta.PctSigned(1),
			m.TrendText,
		)
	}

	return b.String()
}

// trendMarker picks the direction marker for a classified trend.
func trendMarker(t schema.TrendCategory) string {
	switch t {
	case schema.Growth, schema.StrongGrowth:
		return upMarker
	case schema.Decline, schema.StrongDecline:
		return downMarker
	default:
		return neutralMarker
	}
}

// formatMetricValue renders a metric value in a shape that fits its
// name: ratios keep decimals with a percent suffix, positions keep one
// decimal, counters render as grouped integers.
func formatMetricValue(name string, v float64, precision int) string {
	switch {
	case strings.Contains(name, "ctr") || strings.Contains(name, "rate"):
		return fmt.Sprintf("%.*f%%", precision, v)
	case strings.Contains(name, "position"):
		return fmt.Sprintf("%.1f", v)
	default:
		return groupThousands(int64(v + 0.5))
	}
}

// groupThousands renders n with comma separators (1200 -> "1,200").
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

// DisplayEntityName converts an entity slug like "acme-dental" into a
// presentable name ("Acme Dental").
func DisplayEntityName(slug string) string {
	parts := strings.Split(strings.ReplaceAll(slug, "_", "-"), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
