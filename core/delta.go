package core

import "github.com/searchpulse/searchpulse/schema"

// DeltaCalculator computes absolute and percentage change for a pair of
// values. Zero baselines are defined domain cases handled with sentinel
// bases, never divide-by-zero faults.
type DeltaCalculator struct{}

// NewDeltaCalculator creates a DeltaCalculator.
func NewDeltaCalculator() *DeltaCalculator {
	return &DeltaCalculator{}
}

// Compute returns the delta between current and baseline.
//   - baseline == 0 and current == 0: AbsChange 0, FlatBasis ("no change").
//   - baseline == 0 and current != 0: AbsChange current, NewBasis;
//     PctChange is reported as 100 by convention for numeric consumers,
//     renderers show the "+∞" sentinel instead.
//   - otherwise: AbsChange = current - baseline and
//     PctChange = AbsChange / baseline * 100 at full precision.
func (c *DeltaCalculator) Compute(current, baseline float64) schema.DeltaResult {
	if baseline == 0 {
		if current == 0 {
			return schema.DeltaResult{AbsChange: 0, PctChange: 0, Basis: schema.FlatBasis}
		}
		return schema.DeltaResult{AbsChange: current, PctChange: 100, Basis: schema.NewBasis}
	}
	abs := current - baseline
	return schema.DeltaResult{
		AbsChange: abs,
		PctChange: abs / baseline * 100,
		Basis:     schema.MeasuredBasis,
	}
}
