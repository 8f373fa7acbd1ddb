package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// NewDense creates an r×c zero matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFilled creates an r×c matrix with every entry set to v.
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.Fill(v)

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At returns the entry at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns row i as a window on the backing storage: writes through it
// change the matrix. It panics like a slice index when i is out of range.
func (m *Dense) Row(i int) []float64 { return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c] }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// CopyFrom overwrites m with the entries of src.
func (m *Dense) CopyFrom(src *Dense) error {
	if src.r != m.r || src.c != m.c {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, m.r, m.c, src.r, src.c)
	}
	copy(m.data, src.data)

	return nil
}

// Fill sets every entry to v.
func (m *Dense) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Scale multiplies every entry by alpha in place.
func (m *Dense) Scale(alpha float64) { floats.Scale(alpha, m.data) }

// AddConst adds beta to every entry in place.
func (m *Dense) AddConst(beta float64) { floats.AddConst(beta, m.data) }
