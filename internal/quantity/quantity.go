// Package quantity pairs numeric arrays with physical units. It is the thin
// adapter the periodogram engine uses to decide output unit policy: values are
// plain float64 slices, and an optional unit tags what they measure.
package quantity

import "fmt"

// Dimensions supported by the built-in units. Two units are convertible only
// when they share a dimension.
const (
	DimTime          = "time"
	DimMagnitude     = "magnitude"
	DimDimensionless = "dimensionless"
)

// Unit describes a physical unit: a display name, a dimension, and the scale
// factor to that dimension's base unit.
type Unit struct {
	Name  string
	Dim   string
	Scale float64
}

// Built-in units. Time units scale to days; magnitudes form their own
// dimension and are deliberately not convertible to dimensionless values,
// matching the behavior of astronomical magnitude systems.
var (
	Day    = &Unit{Name: "day", Dim: DimTime, Scale: 1.0}
	Hour   = &Unit{Name: "hour", Dim: DimTime, Scale: 1.0 / 24.0}
	Minute = &Unit{Name: "minute", Dim: DimTime, Scale: 1.0 / 1440.0}
	Second = &Unit{Name: "second", Dim: DimTime, Scale: 1.0 / 86400.0}
	Mag    = &Unit{Name: "mag", Dim: DimMagnitude, Scale: 1.0}
	One    = &Unit{Name: "", Dim: DimDimensionless, Scale: 1.0}
)

// IncompatibleUnitsError reports an attempt to combine two non-convertible
// units. Both unit names are included so the caller can see what clashed.
type IncompatibleUnitsError struct {
	From string
	To   string
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("unit %q is not convertible to unit %q", displayName(e.From), displayName(e.To))
}

func displayName(name string) string {
	if name == "" {
		return "dimensionless"
	}
	return name
}

// Equal reports whether two units are the same unit. A nil unit only equals
// another nil unit.
func (u *Unit) Equal(o *Unit) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.Name == o.Name && u.Dim == o.Dim && u.Scale == o.Scale
}

// Mul returns the product unit. It is used for squared flux units on
// log-likelihood outputs when no per-point errors are supplied. Dimensionless
// factors collapse, so a product of dimensionless units stays dimensionless.
func (u *Unit) Mul(o *Unit) *Unit {
	if u == nil || o == nil {
		return nil
	}
	if u.Dim == DimDimensionless {
		return &Unit{Name: o.Name, Dim: o.Dim, Scale: u.Scale * o.Scale}
	}
	if o.Dim == DimDimensionless {
		return &Unit{Name: u.Name, Dim: u.Dim, Scale: u.Scale * o.Scale}
	}
	return &Unit{Name: u.Name + "*" + o.Name, Dim: u.Dim + "*" + o.Dim, Scale: u.Scale * o.Scale}
}

// String returns the unit name, or "dimensionless" for the One unit.
func (u *Unit) String() string {
	if u == nil {
		return "none"
	}
	return displayName(u.Name)
}

// ParseUnit maps a config string to a built-in unit. Empty string and "none"
// mean no unit at all (a plain array).
func ParseUnit(name string) (*Unit, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "day", "d":
		return Day, nil
	case "hour", "h":
		return Hour, nil
	case "minute", "min":
		return Minute, nil
	case "second", "s", "sec":
		return Second, nil
	case "mag":
		return Mag, nil
	case "one", "dimensionless":
		return One, nil
	}
	return nil, fmt.Errorf("unknown unit %q", name)
}
