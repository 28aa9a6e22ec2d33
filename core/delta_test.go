package core

import (
	"testing"

	"github.com/searchpulse/searchpulse/schema"
	"github.com/stretchr/testify/assert"
)

func TestDeltaCalculator_Compute(t *testing.T) {
	calc := NewDeltaCalculator()

	tests := []struct {
		name     string
		current  float64
		baseline float64
		wantAbs  float64
		wantPct  float64
		wantBase schema.DeltaBasis
	}{
		{"simple growth", 1200, 1000, 200, 20, schema.MeasuredBasis},
		{"simple decline", 800, 1000, -200, -20, schema.MeasuredBasis},
		{"no change", 500, 500, 0, 0, schema.MeasuredBasis},
		{"fractional values", 3.42, 3.17, 0.25, 0.25 / 3.17 * 100, schema.MeasuredBasis},
		{"both zero is flat", 0, 0, 0, 0, schema.FlatBasis},
		{"zero baseline is new", 45, 0, 45, 100, schema.NewBasis},
		{"drop to zero", 0, 250, -250, -100, schema.MeasuredBasis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Compute(tt.current, tt.baseline)
			assert.InDelta(t, tt.wantAbs, got.AbsChange, 1e-9)
			assert.InDelta(t, tt.wantPct, got.PctChange, 1e-9)
			assert.Equal(t, tt.wantBase, got.Basis)
		})
	}
}

func TestDeltaCalculator_FullPrecision(t *testing.T) {
	calc := NewDeltaCalculator()

	// 1/3 is not representable at two decimals; the raw result must keep
	// full float precision, rounding is a render-time concern.
	got := calc.Compute(4, 3)
	assert.InDelta(t, 100.0/3.0, got.PctChange, 1e-12)
	assert.Equal(t, "33.33", got.PctDisplay(2))
	assert.InDelta(t, 33.33, got.RoundPct(2), 1e-9)
}

func TestDeltaResult_Defined(t *testing.T) {
	calc := NewDeltaCalculator()

	assert.True(t, calc.Compute(10, 5).Defined())
	assert.False(t, calc.Compute(0, 0).Defined())
	assert.False(t, calc.Compute(10, 0).Defined())
}

func TestDeltaResult_SentinelDisplay(t *testing.T) {
	calc := NewDeltaCalculator()

	assert.Equal(t, schema.FlatSentinel, calc.Compute(0, 0).PctDisplay(2))
	assert.Equal(t, schema.NewSentinel, calc.Compute(45, 0).PctDisplay(2))
	assert.Equal(t, "20.00", calc.Compute(1200, 1000).PctDisplay(2))
}
