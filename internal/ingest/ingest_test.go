package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadComparison(t *testing.T) {
	input := "Metric,Current,Previous\n" +
		"Clicks,1200,1000\n" +
		"CTR,3.42%,3.17%\n"

	samples, err := ReadComparison(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "Clicks", samples[0].Name)
	assert.Equal(t, "1200", samples[0].CurrentRaw)
	assert.Equal(t, "1000", samples[0].PreviousRaw)

	// Raw strings are preserved untouched for the engine to parse
	assert.Equal(t, "3.42%", samples[1].CurrentRaw)
}

func TestReadComparison_SkipsBlankRows(t *testing.T) {
	input := "Metric,Current,Previous\n" +
		"Clicks,1200,1000\n" +
		",5,5\n" +
		"   ,6,6\n" +
		"Impressions,45000,44100\n"

	samples, err := ReadComparison(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "Clicks", samples[0].Name)
	assert.Equal(t, "Impressions", samples[1].Name)
}

func TestReadComparison_ExtraColumnsIgnored(t *testing.T) {
	input := "Metric,Current,Previous,Notes\n" +
		"Clicks,1200,1000,promoted\n"

	samples, err := ReadComparison(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "1200", samples[0].CurrentRaw)
}

func TestReadComparison_Errors(t *testing.T) {
	_, err := ReadComparison(strings.NewReader("Metric,Current\nClicks,1200\n"))
	assert.ErrorContains(t, err, "at least 3 columns")

	_, err = ReadComparison(strings.NewReader("Metric,Current,Previous\n"))
	assert.ErrorContains(t, err, "no metric rows")

	_, err = ReadComparison(strings.NewReader(""))
	assert.ErrorContains(t, err, "failed to read header")
}

func TestReadQueries(t *testing.T) {
	input := "query,clicks,impressions,ctr,position\n" +
		"root canal,42,900,4.67%,12.3\n" +
		"teeth whitening,10,\"1,050\",0.95,18\n"

	data, err := ReadQueries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, data.Records, 2)
	assert.Zero(t, data.Skipped)

	first := data.Records[0]
	assert.Equal(t, "root canal", first.Key)
	assert.InDelta(t, 42, first.Clicks, 1e-9)
	assert.InDelta(t, 900, first.Impressions, 1e-9)
	assert.InDelta(t, 4.67, first.CTR, 1e-9)
	assert.InDelta(t, 12.3, first.Position, 1e-9)

	// Thousands separators in quoted fields parse fine
	assert.InDelta(t, 1050, data.Records[1].Impressions, 1e-9)
}

func TestReadQueries_QueryColumnRequired(t *testing.T) {
	_, err := ReadQueries(strings.NewReader("keyword,clicks\nroot canal,42\n"))
	assert.ErrorContains(t, err, "query column is required")
}

func TestReadQueries_MoverPairs(t *testing.T) {
	input := "query,impressions_current,impressions_previous,clicks_current,clicks_previous\n" +
		"root canal,150,100,12,9\n" +
		"teeth whitening,120,100,8,10\n"

	data, err := ReadQueries(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, data.MoverMetrics())

	impressions, err := data.MoverRecords("impressions")
	require.NoError(t, err)
	require.Len(t, impressions, 2)
	assert.Equal(t, "root canal", impressions[0].Key)
	assert.InDelta(t, 150, impressions[0].Current, 1e-9)
	assert.InDelta(t, 100, impressions[0].Previous, 1e-9)

	clicks, err := data.MoverRecords("clicks")
	require.NoError(t, err)
	require.Len(t, clicks, 2)
}

func TestReadQueries_MoverRecordsUnknownMetric(t *testing.T) {
	input := "query,impressions_current,impressions_previous\nroot canal,150,100\n"

	data, err := ReadQueries(strings.NewReader(input))
	require.NoError(t, err)

	_, err = data.MoverRecords("ctr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ctr_current")
	assert.Contains(t, err.Error(), "available: impressions")
}

func TestReadQueries_SkipsMalformedRows(t *testing.T) {
	input := "query,clicks,impressions\n" +
		"root canal,42,900\n" +
		"bad row,abc,900\n" +
		",10,100\n" +
		"teeth whitening,10,850\n"

	data, err := ReadQueries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, data.Records, 2)
	assert.Equal(t, 2, data.Skipped)
	assert.Equal(t, "root canal", data.Records[0].Key)
	assert.Equal(t, "teeth whitening", data.Records[1].Key)
}

func TestReadQueries_AllRowsMalformed(t *testing.T) {
	input := "query,clicks\nbad,abc\nworse,xyz\n"

	_, err := ReadQueries(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable query rows")
	assert.Contains(t, err.Error(), "2 skipped")
}

func TestReadQueries_ExtraColumnsPassThrough(t *testing.T) {
	input := "query,clicks,landing_page,impressions_current,impressions_previous\n" +
		"root canal,42,/services/root-canal,150,100\n"

	data, err := ReadQueries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, data.Records, 1)

	rec := data.Records[0]
	assert.Equal(t, "/services/root-canal", rec.Extra["landing_page"])

	// Mover columns never leak into Extra
	_, ok := rec.Extra["impressions_current"]
	assert.False(t, ok)
}

func TestParseField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"integer", "42", 42, false},
		{"decimal", "3.42", 3.42, false},
		{"percent suffix", "4.67%", 4.67, false},
		{"thousands separator", "1,050", 1050, false},
		{"empty counts as zero", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseField(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
