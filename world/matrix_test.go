package world

import (
	"errors"
	"testing"
)

func TestMatrixFromRows(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := MatrixFromRows(rows)
	if err != nil {
		t.Fatalf("MatrixFromRows: %v", err)
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	if got := m.At(1, 2); got != 6 {
		t.Fatalf("At(1, 2) = %v, want 6", got)
	}

	rows[0][0] = 100
	if m.At(0, 0) != 1 {
		t.Fatal("MatrixFromRows must copy its input")
	}
}

func TestMatrixFromRowsRejectsJagged(t *testing.T) {
	_, err := MatrixFromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrJaggedMatrix) {
		t.Fatalf("err = %v, want ErrJaggedMatrix", err)
	}
}

func TestMatrixFromRowsEmpty(t *testing.T) {
	m, err := MatrixFromRows(nil)
	if err != nil {
		t.Fatalf("MatrixFromRows(nil): %v", err)
	}
	if m.Rows() != 0 || m.Cols() != 0 {
		t.Fatalf("shape = %dx%d, want 0x0", m.Rows(), m.Cols())
	}
}

func TestMatrixRowAliasesStorage(t *testing.T) {
	m := NewMatrix(2, 2)
	m.Row(1)[0] = 7
	if m.At(1, 0) != 7 {
		t.Fatal("Row must alias the matrix storage")
	}

	_ = append(m.Row(0), 99)
	if m.At(1, 0) != 7 {
		t.Fatal("appending to a row must not overwrite the next row")
	}
}

func TestMatrixCopies(t *testing.T) {
	m := NewMatrix(1, 2)
	m.Set(0, 1, 3)

	rows := m.ToRows()
	rows[0][1] = 0
	c := m.Clone()
	c.Set(0, 1, 5)

	if m.At(0, 1) != 3 {
		t.Fatalf("source changed to %v", m.At(0, 1))
	}
}

func TestMatrixIndexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("At out of range did not panic")
		}
	}()
	NewMatrix(2, 2).At(0, 2)
}

func TestFrameShape(t *testing.T) {
	tests := []struct {
		name  string
		shape FrameShape
		bins  int
		valid bool
	}{
		{"cheaptrick 44.1k", FrameShape{Frames: 2, FFTSize: 2048}, 1025, true},
		{"minimal", FrameShape{Frames: 1, FFTSize: 2}, 2, true},
		{"no frames", FrameShape{Frames: 0, FFTSize: 2048}, 1025, false},
		{"odd fft", FrameShape{Frames: 1, FFTSize: 1023}, 512, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Bins(); got != tt.bins {
				t.Fatalf("Bins() = %d, want %d", got, tt.bins)
			}
			if err := tt.shape.Validate(); (err == nil) != tt.valid {
				t.Fatalf("Validate() = %v, want valid %v", err, tt.valid)
			}
		})
	}
}

func TestShapeOfAndCheck(t *testing.T) {
	sp := NewMatrix(3, 513)
	shape := ShapeOf(sp)
	if shape != (FrameShape{Frames: 3, FFTSize: 1024}) {
		t.Fatalf("ShapeOf = %+v", shape)
	}

	if err := shape.Check("test", "aperiodicity", NewMatrix(3, 513)); err != nil {
		t.Fatalf("Check on matching matrix: %v", err)
	}

	err := shape.Check("test", "aperiodicity", NewMatrix(3, 1025))
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *ShapeError", err)
	}
	if se.What != "aperiodicity bins" || se.Got != 1025 || se.Want != 513 {
		t.Fatalf("ShapeError = %+v", se)
	}
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatal("ShapeError must match ErrShapeMismatch")
	}

	if err := shape.Check("test", "aperiodicity", NewMatrix(2, 513)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("frame mismatch err = %v, want ErrShapeMismatch", err)
	}
}
