package world

import "fmt"

// Matrix is an owned, rectangular, row-major table of float64 values. Each
// row is one analysis frame. The zero value is an empty 0x0 matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zeroed rows x cols matrix. Negative sizes panic.
func NewMatrix(rows, cols int) Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("world: negative matrix size %dx%d", rows, cols))
	}
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// MatrixFromRows copies rows into a new Matrix. Rows of unequal length are
// rejected with ErrJaggedMatrix.
func MatrixFromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}

	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("%w: row %d has %d values, row 0 has %d", ErrJaggedMatrix, i, len(row), cols)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// Rows returns the number of rows (frames).
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns (bins or coded dimensions).
func (m Matrix) Cols() int { return m.cols }

// Row returns row i as a slice aliasing the matrix storage.
func (m Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// Set stores v at row i, column j.
func (m Matrix) Set(i, j int, v float64) {
	m.data[m.index(i, j)] = v
}

func (m Matrix) index(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("world: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

// ToRows returns a deep copy of the matrix as a slice of rows.
func (m Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	return Matrix{rows: m.rows, cols: m.cols, data: append([]float64(nil), m.data...)}
}

// rowViews returns per-row slices over the matrix storage for a single
// backend call. The result must not be retained past that call.
func (m Matrix) rowViews() [][]float64 {
	views := make([][]float64, m.rows)
	for i := range views {
		views[i] = m.Row(i)
	}
	return views
}
