package matrix

import "errors"

// Sentinel errors; match with errors.Is.
var (
	// ErrBadShape is returned when a requested shape has r<=0 or c<=0.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates operands of different shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// Dense is a row-major matrix of float64 values.
type Dense struct {
	r, c int
	data []float64 // len == r*c
}
