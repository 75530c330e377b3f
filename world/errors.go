package world

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports buffers whose frame, bin or dimension counts
	// disagree. Errors of type *ShapeError wrap it.
	ErrShapeMismatch = errors.New("world: shape mismatch")

	// ErrJaggedMatrix reports a table whose rows differ in length.
	ErrJaggedMatrix = errors.New("world: jagged matrix")

	// ErrUninitializedOption reports an option record that was never
	// populated by its backend defaults.
	ErrUninitializedOption = errors.New("world: option record not initialised")

	// ErrNilParameters reports a nil *Parameters or *CodedParameters.
	ErrNilParameters = errors.New("world: nil parameters")

	ErrEmptyWaveform         = errors.New("world: waveform is empty")
	ErrInvalidSampleRate     = errors.New("world: sample rate must be > 0")
	ErrNoFrames              = errors.New("world: no analysis frames")
	ErrInvalidFFTSize        = errors.New("world: fft size must be even and >= 2")
	ErrInvalidDimensions     = errors.New("world: invalid coded dimension count")
	ErrInvalidFramePeriod    = errors.New("world: frame period must be > 0")
	ErrUnsupportedSampleRate = errors.New("world: sample rate too low for aperiodicity coding")
	ErrUnknownEstimator      = errors.New("world: unknown pitch estimator")
)

// ShapeError describes which dimension of which input disagreed.
type ShapeError struct {
	Op   string // stage that rejected the input
	What string // dimension, e.g. "aperiodicity bins"
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("world: %s: %s = %d, want %d", e.Op, e.What, e.Got, e.Want)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func shapeError(op, what string, got, want int) error {
	return &ShapeError{Op: op, What: what, Got: got, Want: want}
}

func validateWaveform(op string, x []float64, fs int) error {
	if len(x) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyWaveform)
	}
	return validateSampleRate(op, fs)
}

func validateSampleRate(op string, fs int) error {
	if fs <= 0 {
		return fmt.Errorf("%s: %w: %d", op, ErrInvalidSampleRate, fs)
	}
	return nil
}

// validateTrack checks a temporal position track against its f0 track and
// returns the shared frame count.
func validateTrack(op string, temporalPositions, f0 []float64) (int, error) {
	if len(f0) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNoFrames)
	}
	if len(temporalPositions) != len(f0) {
		return 0, shapeError(op, "temporal positions", len(temporalPositions), len(f0))
	}
	return len(f0), nil
}

func validateFFTSize(op string, fftSize int) error {
	if fftSize < 2 || fftSize%2 != 0 {
		return fmt.Errorf("%s: %w: %d", op, ErrInvalidFFTSize, fftSize)
	}
	return nil
}
