package schema

// InvalidRangeError reports degenerate or contradictory grid parameters,
// such as a minimum period at or above the maximum, or a non-positive
// duration. It fails fast, before any evaluation work.
type InvalidRangeError struct {
	Msg string
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Msg
}

// ShapeError reports period or duration inputs whose shapes violate the
// evaluation contract, such as a period array with more than one dimension.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return "invalid shape: " + e.Msg
}
