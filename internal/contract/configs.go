package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/searchpulse/searchpulse/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 5
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultLowBound    = 11
	DefaultHighBound   = 20
)

// Config holds the validated runtime configuration. It is built from a
// ConfigRawInput by ProcessAndValidate and passed explicitly into each
// component; nothing reads ambient global state.
type Config struct {
	InputFiles []string
	Entity     string // optional entity override for a single input file

	Banding    schema.Banding
	Polarities map[string]schema.MetricPolarity
	Precision  int

	ResultLimit int
	Metric      string // movers: metric column to rank on
	Direction   schema.Direction
	LowBound    float64 // opportunities: rank metric window, inclusive
	HighBound   float64
	Floor       float64 // opportunities: optional extra impressions floor

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // plaintext; prefer env var over config file
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag.
	InputFiles []string

	Entity         string            `mapstructure:"entity"`
	Banding        string            `mapstructure:"banding"`
	YoY            bool              `mapstructure:"yoy"`
	Polarity       map[string]string `mapstructure:"polarity"`
	Precision      int               `mapstructure:"precision"`
	Limit          int               `mapstructure:"limit"`
	Metric         string            `mapstructure:"metric"`
	Direction      string            `mapstructure:"direction"`
	LowBound       float64           `mapstructure:"low-bound"`
	HighBound      float64           `mapstructure:"high-bound"`
	Floor          float64           `mapstructure:"floor"`
	Output         string            `mapstructure:"output"`
	OutputFile     string            `mapstructure:"output-file"`
	Color          string            `mapstructure:"color"`
	Width          int               `mapstructure:"width"`
	StoreBackend   string            `mapstructure:"store-backend"`
	StoreDBConnect string            `mapstructure:"store-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.InputFiles != nil {
		clone.InputFiles = make([]string, len(c.InputFiles))
		copy(clone.InputFiles, c.InputFiles)
	}
	if c.Polarities != nil {
		clone.Polarities = make(map[string]schema.MetricPolarity, len(c.Polarities))
		maps.Copy(clone.Polarities, c.Polarities)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processBanding(cfg, input); err != nil {
		return err
	}
	if err := processPolarities(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processStoreBackend(cfg, input); err != nil {
		return err
	}
	cfg.InputFiles = input.InputFiles
	cfg.Entity = input.Entity
	return nil
}

// processBanding resolves the banding scheme. --yoy switches the default
// to the 5-band year-over-year scheme; an explicit --banding wins.
func processBanding(cfg *Config, input *ConfigRawInput) error {
	banding := schema.Banding(input.Banding)
	if input.Banding == "" {
		banding = schema.ThreeBand
		if input.YoY {
			banding = schema.FiveBand
		}
	}
	if _, ok := schema.ValidBandings[banding]; !ok {
		return fmt.Errorf("invalid banding %q: must be 3 or 5", input.Banding)
	}
	cfg.Banding = banding
	return nil
}

// processPolarities merges configured polarity overrides over the
// built-in defaults, validating every value.
func processPolarities(cfg *Config, input *ConfigRawInput) error {
	merged := make(map[string]schema.MetricPolarity, len(schema.DefaultPolarities)+len(input.Polarity))
	maps.Copy(merged, schema.DefaultPolarities)
	for name, raw := range input.Polarity {
		p := schema.MetricPolarity(strings.ToLower(strings.TrimSpace(raw)))
		if _, ok := schema.ValidPolarities[p]; !ok {
			return fmt.Errorf("invalid polarity %q for metric %q: must be higher or lower", raw, name)
		}
		merged[schema.NormalizeMetricName(name)] = p
	}
	cfg.Polarities = merged
	return nil
}

// validateSimpleInputs handles the scalar options.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4")
	}
	cfg.Precision = input.Precision

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv, json or parquet", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	direction := schema.Direction(strings.ToLower(input.Direction))
	if input.Direction == "" {
		direction = schema.GrowthDirection
	}
	if _, ok := schema.ValidDirections[direction]; !ok {
		return fmt.Errorf("invalid direction %q: must be growth or decline", input.Direction)
	}
	cfg.Direction = direction

	cfg.Metric = schema.NormalizeMetricName(input.Metric)

	if input.LowBound > input.HighBound {
		return fmt.Errorf("low-bound %v exceeds high-bound %v", input.LowBound, input.HighBound)
	}
	cfg.LowBound = input.LowBound
	cfg.HighBound = input.HighBound
	if input.Floor < 0 {
		return fmt.Errorf("floor must be non-negative")
	}
	cfg.Floor = input.Floor

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color option: %w", err)
	}
	cfg.UseColors = useColors

	if input.Width < 0 {
		return fmt.Errorf("width must be non-negative")
	}
	cfg.Width = input.Width
	return nil
}

// processStoreBackend validates the run store configuration.
func processStoreBackend(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if input.StoreBackend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q: must be sqlite, mysql, postgresql or none", input.StoreBackend)
	}
	if (backend == schema.MySQLBackend || backend == schema.PostgreSQLBackend) && input.StoreDBConnect == "" {
		return fmt.Errorf("store-db-connect is required for the %s backend", backend)
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect
	return nil
}
