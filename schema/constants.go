package schema

// Custom string types for type safety.
type (
	// MetricPolarity says whether a higher value of a metric is better.
	MetricPolarity string

	// TrendCategory represents a classified trend band.
	TrendCategory string

	// DeltaBasis distinguishes measured percent changes from the
	// zero-baseline sentinel cases.
	DeltaBasis string

	// Banding selects the trend threshold scheme.
	Banding string

	// Direction selects the ranking direction for top movers.
	Direction string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run store.
	DatabaseBackend string
)

// All metric polarities supported.
const (
	HigherIsBetter MetricPolarity = "higher" // default
	LowerIsBetter  MetricPolarity = "lower"
)

// Trend categories, ordered worst to best for a fixed polarity.
const (
	StrongDecline TrendCategory = "strong_decline"
	Decline       TrendCategory = "decline"
	Neutral       TrendCategory = "neutral"
	Growth        TrendCategory = "growth"
	StrongGrowth  TrendCategory = "strong_growth"
)

// Delta bases. Zero baselines are defined domain cases, never faults.
const (
	MeasuredBasis DeltaBasis = "measured"
	FlatBasis     DeltaBasis = "flat" // baseline == 0 and current == 0
	NewBasis      DeltaBasis = "new"  // baseline == 0 and current > 0
)

// Sentinel strings for undefined percent changes. These never collide
// with a numeric rendering; consumers must special-case them before
// doing arithmetic.
const (
	FlatSentinel = "N/A"
	NewSentinel  = "+∞"
)

// Banding schemes supported.
const (
	ThreeBand Banding = "3" // period-over-period default
	FiveBand  Banding = "5" // year-over-year default
)

// Trend thresholds in percent. Boundary semantics are fixed:
// 5-band: >20 strong_growth, (5,20] growth, [-5,5] neutral,
// [-20,-5) decline, <-20 strong_decline.
// 3-band: >5 growth, [-5,5] neutral, <-5 decline.
const (
	NeutralThreshold = 5.0
	StrongThreshold  = 20.0
)

// Ranking directions supported.
const (
	GrowthDirection  Direction = "growth"
	DeclineDirection Direction = "decline"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidBandings lists all valid banding schemes.
var ValidBandings = map[Banding]struct{}{
	ThreeBand: {},
	FiveBand:  {},
}

// ValidDirections lists all valid ranking directions.
var ValidDirections = map[Direction]struct{}{
	GrowthDirection:  {},
	DeclineDirection: {},
}

// ValidPolarities lists all valid metric polarities.
var ValidPolarities = map[MetricPolarity]struct{}{
	HigherIsBetter: {},
	LowerIsBetter:  {},
}

// ValidStoreBackends lists all valid run store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// TrendLabels is the single lookup table mapping each trend category to
// its human phrase. Banding policy and label text are each defined
// exactly once; every renderer and narrative writer goes through this.
var TrendLabels = map[TrendCategory]string{
	StrongGrowth:  "Strong growth",
	Growth:        "Moderate growth",
	Neutral:       "Stable",
	Decline:       "Moderate decline",
	StrongDecline: "Strong decline",
}

// NewMetricLabel is the phrase used when a metric has no baseline at all.
const NewMetricLabel = "New metric (no baseline data)"

// DefaultPolarities covers the metric names where a drop is an
// improvement. Everything not listed defaults to HigherIsBetter.
var DefaultPolarities = map[string]MetricPolarity{
	"position":     LowerIsBetter,
	"avg_position": LowerIsBetter,
	"bounce_rate":  LowerIsBetter,
}

// AllTrendCategories returns categories ordered worst to best.
var AllTrendCategories = []TrendCategory{StrongDecline, Decline, Neutral, Growth, StrongGrowth}
