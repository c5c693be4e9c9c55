package quantity

// Array is a numeric array with an optional unit and an optional logical
// shape. A nil Unit marks a plain, unitless array. A nil Shape means the
// array is logically one-dimensional with length len(Values).
type Array struct {
	Values []float64
	Unit   *Unit
	Shape  []int
}

// Scalar is a single value with an optional unit.
type Scalar struct {
	Value float64
	Unit  *Unit
}

// Plain wraps a float64 slice as a unitless array.
func Plain(values []float64) Array {
	return Array{Values: values}
}

// WithUnit wraps a float64 slice tagged with the given unit.
func WithUnit(values []float64, u *Unit) Array {
	return Array{Values: values, Unit: u}
}

// FromScalar builds a single-element array from a scalar.
func FromScalar(s Scalar) Array {
	return Array{Values: []float64{s.Value}, Unit: s.Unit}
}

// HasUnit reports whether the array carries a unit.
func (a Array) HasUnit() bool { return a.Unit != nil }

// Len returns the number of values.
func (a Array) Len() int { return len(a.Values) }

// NDim returns the logical dimensionality of the array.
func (a Array) NDim() int {
	if a.Shape == nil {
		return 1
	}
	return len(a.Shape)
}

// Strip returns the raw values, discarding the unit.
func (a Array) Strip() []float64 { return a.Values }

// Copy returns a deep copy of the array's values with the same unit.
func (a Array) Copy() Array {
	out := Array{Unit: a.Unit}
	out.Values = make([]float64, len(a.Values))
	copy(out.Values, a.Values)
	if a.Shape != nil {
		out.Shape = make([]int, len(a.Shape))
		copy(out.Shape, a.Shape)
	}
	return out
}

// ConvertTo converts the array values to the target unit. Converting between
// different dimensions fails with an IncompatibleUnitsError.
func (a Array) ConvertTo(u *Unit) (Array, error) {
	if a.Unit.Equal(u) {
		return a, nil
	}
	if a.Unit == nil || u == nil || a.Unit.Dim != u.Dim {
		return Array{}, &IncompatibleUnitsError{From: a.Unit.String(), To: u.String()}
	}
	factor := a.Unit.Scale / u.Scale
	out := make([]float64, len(a.Values))
	for i, v := range a.Values {
		out[i] = v * factor
	}
	return Array{Values: out, Unit: u, Shape: a.Shape}, nil
}

// ConvertTo converts a scalar to the target unit.
func (s Scalar) ConvertTo(u *Unit) (Scalar, error) {
	arr, err := Array{Values: []float64{s.Value}, Unit: s.Unit}.ConvertTo(u)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Value: arr.Values[0], Unit: u}, nil
}

// ValidateConsistency coerces in against ref's unit state. When ref carries a
// unit, a plain in adopts it unchanged and a unit-bearing in is converted
// (failing if non-convertible). When ref is plain, in must be plain or
// dimensionless; any other unit is rejected.
func ValidateConsistency(ref, in Array) (Array, error) {
	if ref.Unit != nil {
		if in.Unit == nil {
			in.Unit = ref.Unit
			return in, nil
		}
		return in.ConvertTo(ref.Unit)
	}
	if in.Unit != nil {
		if in.Unit.Dim != DimDimensionless {
			return Array{}, &IncompatibleUnitsError{From: in.Unit.String(), To: "none"}
		}
		in.Unit = nil
	}
	return in, nil
}

// ValidateScalarConsistency is ValidateConsistency for a single value.
func ValidateScalarConsistency(ref Array, s Scalar) (Scalar, error) {
	arr, err := ValidateConsistency(ref, FromScalar(s))
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Value: arr.Values[0], Unit: arr.Unit}, nil
}
