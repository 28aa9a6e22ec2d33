package core

import (
	"strings"
	"testing"

	"github.com/searchpulse/searchpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEntity(t *testing.T) {
	engine := NewComparisonEngine(schema.ThreeBand, schema.DefaultPolarities)
	set := engine.Compare("acme-dental", []schema.MetricSample{
		{Name: "clicks", CurrentRaw: "1200", PreviousRaw: "1000"},
		{Name: "ctr", CurrentRaw: "3.42", PreviousRaw: "3.17"},
		{Name: "position", CurrentRaw: "8", PreviousRaw: "10"},
	})

	out := SummarizeEntity(set, 2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Performance summary for Acme Dental:", lines[0])
	assert.Equal(t, "↑ Clicks: 1,200 (+20.0%) - Moderate growth", lines[1])
	assert.Contains(t, lines[2], "CTR: 3.42%")
	// Position improved, so the marker points up despite the negative pct
	assert.True(t, strings.HasPrefix(lines[3], "↑ Position: 8.0 (-20.0%)"), "got %q", lines[3])
}

func TestSummarizeEntity_FailedMetric(t *testing.T) {
	set := schema.EntityComparisonSet{
		Entity: "acme",
		Metrics: []schema.MetricComparison{
			{Name: "impressions", Failed: true, FailCause: `unparsable value "n/a"`},
		},
	}

	out := SummarizeEntity(set, 2)
	assert.Contains(t, out, "→ Impressions: skipped")
	assert.Contains(t, out, "n/a")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{45210, "45,210"},
		{1200500, "1,200,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.n))
	}
}

func TestFormatMetricValue(t *testing.T) {
	assert.Equal(t, "3.42%", formatMetricValue("ctr", 3.42, 2))
	assert.Equal(t, "2.1%", formatMetricValue("bounce_rate", 2.1, 1))
	assert.Equal(t, "8.5", formatMetricValue("avg_position", 8.5, 2))
	assert.Equal(t, "45,210", formatMetricValue("impressions", 45210, 2))
}

func TestDisplayEntityName(t *testing.T) {
	assert.Equal(t, "Acme Dental", DisplayEntityName("acme-dental"))
	assert.Equal(t, "North Shore", DisplayEntityName("north_shore"))
	assert.Equal(t, "Solo", DisplayEntityName("solo"))
}
