package contract

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 4
	MaxPrecision       = 9
	DefaultOversample  = 10
	DefaultNTransit    = 3
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a periodogram command.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile string
	TimeUnit  *quantity.Unit
	FluxUnit  *quantity.Unit

	Durations  []float64
	Objective  schema.Objective
	Method     schema.Method
	Oversample int
	Workers    int

	MinimumPeriod   *float64
	MaximumPeriod   *float64
	MinimumNTransit int
	FrequencyFactor float64

	// Fixed ephemeris for the stats, model and mask commands.
	Period      float64
	Duration    float64
	TransitTime float64

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	StoreBackend   schema.StoreBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Durations != nil {
		clone.Durations = make([]float64, len(c.Durations))
		copy(clone.Durations, c.Durations)
	}
	if c.MinimumPeriod != nil {
		v := *c.MinimumPeriod
		clone.MinimumPeriod = &v
	}
	if c.MaximumPeriod != nil {
		v := *c.MaximumPeriod
		clone.MaximumPeriod = &v
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Durations      string `mapstructure:"durations"`
	Objective      string `mapstructure:"objective"`
	Method         string `mapstructure:"method"`
	Oversample     int    `mapstructure:"oversample"`
	Workers        int    `mapstructure:"workers"`
	TimeUnit       string `mapstructure:"time-unit"`
	FluxUnit       string `mapstructure:"flux-unit"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from searchCmd / gridCmd flags ---
	MinPeriod       string  `mapstructure:"min-period"`
	MaxPeriod       string  `mapstructure:"max-period"`
	NTransit        int     `mapstructure:"n-transit"`
	FrequencyFactor float64 `mapstructure:"frequency-factor"`

	// --- Fields from statsCmd / modelCmd / maskCmd flags ---
	Period      float64 `mapstructure:"period"`
	Duration    float64 `mapstructure:"duration"`
	TransitTime float64 `mapstructure:"transit-time"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processUnits(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := processGridBounds(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	cfg.InputFile = strings.TrimSpace(input.InputFileStr)
	cfg.Period = input.Period
	cfg.Duration = input.Duration
	cfg.TransitTime = input.TransitTime
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Objective and Method Validation ---
	cfg.Objective = schema.Objective(strings.ToLower(input.Objective))
	if _, ok := schema.ValidObjectives[cfg.Objective]; !ok {
		return fmt.Errorf("invalid objective '%s'. must be likelihood, snr", input.Objective)
	}
	cfg.Method = schema.Method(strings.ToLower(input.Method))
	if _, ok := schema.ValidMethods[cfg.Method]; !ok {
		return fmt.Errorf("invalid method '%s'. must be auto, fast, slow", input.Method)
	}

	// --- 4. Oversample Validation ---
	if input.Oversample < 1 {
		return fmt.Errorf("oversample must be at least 1 (received %d)", input.Oversample)
	}
	cfg.Oversample = input.Oversample

	// --- 5. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	return nil
}

// processUnits parses the time and flux unit names.
func processUnits(cfg *Config, input *ConfigRawInput) error {
	timeUnit, err := quantity.ParseUnit(strings.ToLower(strings.TrimSpace(input.TimeUnit)))
	if err != nil {
		return fmt.Errorf("invalid --time-unit: %w", err)
	}
	if timeUnit != nil && timeUnit.Dim != quantity.DimTime {
		return fmt.Errorf("--time-unit %q is not a time unit", input.TimeUnit)
	}
	cfg.TimeUnit = timeUnit

	fluxUnit, err := quantity.ParseUnit(strings.ToLower(strings.TrimSpace(input.FluxUnit)))
	if err != nil {
		return fmt.Errorf("invalid --flux-unit: %w", err)
	}
	cfg.FluxUnit = fluxUnit
	return nil
}

// processDurations parses the comma-separated trial duration list.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.Durations)
	if raw == "" {
		return fmt.Errorf("at least one trial duration is required via --durations")
	}
	var durations []float64
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("invalid duration value '%s': %w", part, err)
		}
		if v <= 0 {
			return fmt.Errorf("durations must be positive (received %v)", v)
		}
		durations = append(durations, v)
	}
	if len(durations) == 0 {
		return fmt.Errorf("at least one trial duration is required via --durations")
	}
	cfg.Durations = durations
	return nil
}

// processGridBounds parses the optional explicit period bounds and grid knobs.
func processGridBounds(cfg *Config, input *ConfigRawInput) error {
	parseBound := func(name, raw string) (*float64, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value '%s': %w", name, raw, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%s must be positive (received %v)", name, v)
		}
		return &v, nil
	}

	minP, err := parseBound("--min-period", input.MinPeriod)
	if err != nil {
		return err
	}
	cfg.MinimumPeriod = minP

	maxP, err := parseBound("--max-period", input.MaxPeriod)
	if err != nil {
		return err
	}
	cfg.MaximumPeriod = maxP

	if input.NTransit < 1 {
		return fmt.Errorf("--n-transit must be at least 1 (received %d)", input.NTransit)
	}
	cfg.MinimumNTransit = input.NTransit

	if input.FrequencyFactor <= 0 {
		return fmt.Errorf("--frequency-factor must be positive (received %v)", input.FrequencyFactor)
	}
	cfg.FrequencyFactor = input.FrequencyFactor
	return nil
}

// validateBackendConfigs validates the search store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
