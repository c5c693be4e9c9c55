package quantity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertTo covers conversions between units of the same dimension and
// failures across dimensions.
func TestConvertTo(t *testing.T) {
	tests := []struct {
		name     string
		in       Array
		target   *Unit
		expected []float64
		wantErr  bool
	}{
		{
			name:     "hours to days",
			in:       WithUnit([]float64{24, 48}, Hour),
			target:   Day,
			expected: []float64{1, 2},
		},
		{
			name:     "days to seconds",
			in:       WithUnit([]float64{1}, Day),
			target:   Second,
			expected: []float64{86400},
		},
		{
			name:     "same unit is identity",
			in:       WithUnit([]float64{3.5}, Mag),
			target:   Mag,
			expected: []float64{3.5},
		},
		{
			name:    "mag to day fails",
			in:      WithUnit([]float64{1}, Mag),
			target:  Day,
			wantErr: true,
		},
		{
			name:    "mag to dimensionless fails",
			in:      WithUnit([]float64{1}, Mag),
			target:  One,
			wantErr: true,
		},
		{
			name:    "plain to day fails",
			in:      Plain([]float64{1}),
			target:  Day,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.in.ConvertTo(tt.target)
			if tt.wantErr {
				var incompatible *IncompatibleUnitsError
				require.Error(t, err)
				assert.True(t, errors.As(err, &incompatible))
				return
			}
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.expected, out.Values, 1e-12)
			assert.True(t, out.Unit.Equal(tt.target))
		})
	}
}

// TestValidateConsistency checks the reference-based coercion rules used when
// mixing tagged and plain arrays for the same logical role.
func TestValidateConsistency(t *testing.T) {
	t.Run("plain adopts reference unit", func(t *testing.T) {
		out, err := ValidateConsistency(WithUnit([]float64{1}, Mag), Plain([]float64{0.5}))
		require.NoError(t, err)
		assert.True(t, out.Unit.Equal(Mag))
		assert.Equal(t, []float64{0.5}, out.Values)
	})

	t.Run("tagged converts to reference unit", func(t *testing.T) {
		out, err := ValidateConsistency(WithUnit([]float64{1}, Day), WithUnit([]float64{12}, Hour))
		require.NoError(t, err)
		assert.True(t, out.Unit.Equal(Day))
		assert.InDelta(t, 0.5, out.Values[0], 1e-12)
	})

	t.Run("dimensionless against mag reference fails", func(t *testing.T) {
		_, err := ValidateConsistency(WithUnit([]float64{1}, Mag), WithUnit([]float64{1}, One))
		var incompatible *IncompatibleUnitsError
		require.Error(t, err)
		assert.True(t, errors.As(err, &incompatible))
	})

	t.Run("tagged against plain reference fails", func(t *testing.T) {
		_, err := ValidateConsistency(Plain([]float64{1}), WithUnit([]float64{1}, Mag))
		assert.Error(t, err)
	})

	t.Run("dimensionless against plain reference is stripped", func(t *testing.T) {
		out, err := ValidateConsistency(Plain([]float64{1}), WithUnit([]float64{2}, One))
		require.NoError(t, err)
		assert.False(t, out.HasUnit())
		assert.Equal(t, []float64{2}, out.Values)
	})
}

// TestIncompatibleUnitsErrorNamesBothUnits ensures the error message carries
// both unit names for diagnosis.
func TestIncompatibleUnitsErrorNamesBothUnits(t *testing.T) {
	_, err := WithUnit([]float64{1}, Mag).ConvertTo(Day)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mag")
	assert.Contains(t, err.Error(), "day")
}

// TestUnitMul checks the product unit used for squared flux quantities.
func TestUnitMul(t *testing.T) {
	sq := Mag.Mul(Mag)
	require.NotNil(t, sq)
	assert.Equal(t, "mag*mag", sq.Name)
	assert.False(t, sq.Equal(Mag))
	assert.Nil(t, Mag.Mul(nil))

	assert.True(t, One.Mul(One).Equal(One))
	assert.True(t, Mag.Mul(One).Equal(Mag))
	assert.True(t, One.Mul(Mag).Equal(Mag))
}

// TestParseUnit covers the config-facing unit parser.
func TestParseUnit(t *testing.T) {
	tests := []struct {
		in       string
		expected *Unit
		wantErr  bool
	}{
		{in: "", expected: nil},
		{in: "none", expected: nil},
		{in: "day", expected: Day},
		{in: "d", expected: Day},
		{in: "hour", expected: Hour},
		{in: "s", expected: Second},
		{in: "mag", expected: Mag},
		{in: "one", expected: One},
		{in: "parsec", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("parse "+tt.in, func(t *testing.T) {
			u, err := ParseUnit(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, u.Equal(tt.expected))
		})
	}
}

// TestArrayShape checks the logical shape accessors used by the driver's
// shape contract.
func TestArrayShape(t *testing.T) {
	flat := Plain([]float64{1, 2, 3})
	assert.Equal(t, 1, flat.NDim())
	assert.Equal(t, 3, flat.Len())

	grid := Array{Values: []float64{1, 2, 3, 4, 5, 6}, Shape: []int{2, 3}}
	assert.Equal(t, 2, grid.NDim())
}
