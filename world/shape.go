package world

import "fmt"

// FrameShape is the frame and FFT geometry shared by every per-frame matrix
// of one analysis run. Spectrogram and aperiodicity both have Frames rows
// and Bins() columns.
type FrameShape struct {
	Frames  int
	FFTSize int
}

// Bins returns the number of frequency bins, FFTSize/2+1.
func (s FrameShape) Bins() int {
	return s.FFTSize/2 + 1
}

// Validate reports whether s describes at least one frame of an even FFT
// size of at least 2.
func (s FrameShape) Validate() error {
	if s.Frames < 1 {
		return ErrNoFrames
	}
	if s.FFTSize < 2 || s.FFTSize%2 != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, s.FFTSize)
	}
	return nil
}

// Check reports a *ShapeError when m does not have s's frame and bin
// counts. what names m in the error.
func (s FrameShape) Check(op, what string, m Matrix) error {
	if m.Rows() != s.Frames {
		return shapeError(op, what+" frames", m.Rows(), s.Frames)
	}
	if m.Cols() != s.Bins() {
		return shapeError(op, what+" bins", m.Cols(), s.Bins())
	}
	return nil
}

// ShapeOf derives the frame shape of a spectrogram or aperiodicity matrix:
// FFTSize is (cols-1)*2.
func ShapeOf(m Matrix) FrameShape {
	return FrameShape{Frames: m.Rows(), FFTSize: (m.Cols() - 1) * 2}
}
