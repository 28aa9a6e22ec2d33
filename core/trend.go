package core

import "github.com/searchpulse/searchpulse/schema"

// TrendClassifier maps a percent change and a metric polarity onto a
// trend category under a fixed banding scheme.
type TrendClassifier struct {
	banding schema.Banding
}

// NewTrendClassifier creates a classifier for the given banding scheme.
func NewTrendClassifier(banding schema.Banding) *TrendClassifier {
	return &TrendClassifier{banding: banding}
}

// Classify buckets a percent change into a trend category. When polarity
// is LowerIsBetter the sign is negated before banding, so a -10% change
// in average position classifies as growth. The displayed percent value
// is never altered; only the classification input is inverted.
func (t *TrendClassifier) Classify(pctChange float64, polarity schema.MetricPolarity) schema.TrendCategory {
	effective := pctChange
	if polarity == schema.LowerIsBetter {
		effective = -pctChange
	}

	if t.banding == schema.FiveBand {
		switch {
		case effective > schema.StrongThreshold:
			return schema.StrongGrowth
		case effective > schema.NeutralThreshold:
			return schema.Growth
		case effective >= -schema.NeutralThreshold:
			return schema.Neutral
		case effective >= -schema.StrongThreshold:
			return schema.Decline
		default:
			return schema.StrongDecline
		}
	}

	switch {
	case effective > schema.NeutralThreshold:
		return schema.Growth
	case effective < -schema.NeutralThreshold:
		return schema.Decline
	default:
		return schema.Neutral
	}
}

// ClassifyDelta handles the sentinel bases before banding: a flat delta
// is always Neutral and a metric with no baseline is Growth, matching
// the classification the conventional +100% would produce.
func (t *TrendClassifier) ClassifyDelta(d schema.DeltaResult, polarity schema.MetricPolarity) (schema.TrendCategory, string) {
	switch d.Basis {
	case schema.FlatBasis:
		return schema.Neutral, schema.TrendLabels[schema.Neutral]
	case schema.NewBasis:
		cat := t.Classify(d.PctChange, polarity)
		return cat, schema.NewMetricLabel
	default:
		cat := t.Classify(d.PctChange, polarity)
		return cat, schema.TrendLabels[cat]
	}
}
