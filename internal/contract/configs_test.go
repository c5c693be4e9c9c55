package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/schema"
)

// validRawInput returns a raw input with all required fields at sane values.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputFileStr:    "lightcurve.csv",
		Durations:       "0.1, 0.16,0.2",
		Objective:       "likelihood",
		Method:          "auto",
		Oversample:      10,
		Workers:         4,
		TimeUnit:        "day",
		FluxUnit:        "",
		Limit:           25,
		Precision:       4,
		Output:          "text",
		Color:           "yes",
		StoreBackend:    "none",
		NTransit:        3,
		FrequencyFactor: 1.0,
	}
}

func TestProcessAndValidateHappyPath(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.MinPeriod = "0.5"
	input.MaxPeriod = "8"

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "lightcurve.csv", cfg.InputFile)
	assert.Equal(t, []float64{0.1, 0.16, 0.2}, cfg.Durations)
	assert.Equal(t, schema.LikelihoodObjective, cfg.Objective)
	assert.Equal(t, schema.AutoMethod, cfg.Method)
	assert.Equal(t, quantity.Day, cfg.TimeUnit)
	assert.Nil(t, cfg.FluxUnit)
	require.NotNil(t, cfg.MinimumPeriod)
	assert.InDelta(t, 0.5, *cfg.MinimumPeriod, 1e-12)
	require.NotNil(t, cfg.MaximumPeriod)
	assert.InDelta(t, 8.0, *cfg.MaximumPeriod, 1e-12)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
}

func TestProcessAndValidateOptionalBounds(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))
	assert.Nil(t, cfg.MinimumPeriod)
	assert.Nil(t, cfg.MaximumPeriod)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"excessive limit", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }},
		{"bad objective", func(in *ConfigRawInput) { in.Objective = "sharpness" }},
		{"bad method", func(in *ConfigRawInput) { in.Method = "binned" }},
		{"zero oversample", func(in *ConfigRawInput) { in.Oversample = 0 }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"unknown time unit", func(in *ConfigRawInput) { in.TimeUnit = "fortnight" }},
		{"flux unit as time unit", func(in *ConfigRawInput) { in.TimeUnit = "mag" }},
		{"empty durations", func(in *ConfigRawInput) { in.Durations = " , " }},
		{"negative duration", func(in *ConfigRawInput) { in.Durations = "0.1,-0.2" }},
		{"garbled duration", func(in *ConfigRawInput) { in.Durations = "0.1,abc" }},
		{"negative min period", func(in *ConfigRawInput) { in.MinPeriod = "-1" }},
		{"garbled max period", func(in *ConfigRawInput) { in.MaxPeriod = "wide" }},
		{"zero n-transit", func(in *ConfigRawInput) { in.NTransit = 0 }},
		{"negative frequency factor", func(in *ConfigRawInput) { in.FrequencyFactor = -2 }},
		{"bad store backend", func(in *ConfigRawInput) { in.StoreBackend = "etcd" }},
		{"mysql without connect", func(in *ConfigRawInput) { in.StoreBackend = "mysql" }},
		{"postgres without host", func(in *ConfigRawInput) {
			in.StoreBackend = "postgresql"
			in.StoreDBConnect = "dbname=periscan"
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validRawInput()
			tc.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.StoreBackend
		connStr string
		ok      bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", true},
		{"none empty", schema.NoneBackend, "", true},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/periscan", true},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/periscan", false},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=periscan", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tc.backend, tc.connStr)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
