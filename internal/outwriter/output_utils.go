package outwriter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/schema"
)

// createFormatters returns float and int format helpers for the
// configured precision.
func createFormatters(precision int) (func(float64) string, string) {
	fmtFloat := func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, "%d"
}

// writeJSON marshals a value with indentation and writes it.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// trendCell renders a trend label, colored for console output when
// enabled.
func trendCell(t schema.TrendCategory, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.ColorTrendLabel(t)
	}
	return t.Label()
}

// changeCell renders a signed percent change with directional markers,
// colored by trend when enabled. Sentinels pass through unchanged.
func changeCell(d schema.DeltaResult, t schema.TrendCategory, cfg *contract.Config) string {
	text := d.PctDisplay(cfg.Precision)
	if d.Defined() && d.PctChange > 0 {
		text = "+" + text
	}
	if !cfg.UseColors {
		return text
	}
	switch t {
	case schema.Growth, schema.StrongGrowth:
		return contract.GrowthColor.Sprint(text)
	case schema.Decline, schema.StrongDecline:
		return contract.DeclineColor.Sprint(text)
	default:
		return contract.NeutralColor.Sprint(text)
	}
}
