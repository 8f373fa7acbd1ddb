// Package matrix provides the dense row-major float64 table shared by the
// shortest-path index and the edge histogram.
//
// Overview:
//
//   - Dense stores r×c values in one flat slice at offset i*c + j.
//   - At and Set are the checked accessors; they return ErrOutOfRange
//     instead of panicking.
//   - Row returns a no-copy window on one row for hot loops that have
//     already validated their indices.
//   - Scale and AddConst update every entry in place.
//
// Complexity:
//
//	NewDense, NewFilled, Clone, Fill, Scale, AddConst  O(r*c)
//	At, Set, Row                                        O(1)
//
// Errors:
//
//	ErrBadShape          - rows or cols not positive.
//	ErrOutOfRange        - index outside the table.
//	ErrDimensionMismatch - CopyFrom between different shapes.
package matrix
