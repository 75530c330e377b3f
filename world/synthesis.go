package world

import (
	"context"
	"fmt"
)

// SynthesisLength returns the number of samples Synthesis produces for
// frames frames: frames*framePeriod*fs/1000, truncated toward zero. For
// integral frame periods this equals the integer expression exactly.
func SynthesisLength(frames int, framePeriod float64, fs int) int {
	return int(float64(frames) * framePeriod * float64(fs) / 1000.0)
}

// Synthesis renders a waveform from an f0 contour, spectral envelope and
// aperiodicity. sp and ap must share one FrameShape with len(f0) frames; the
// FFT size is derived from their bin count.
func (v *Vocoder) Synthesis(f0 []float64, sp, ap Matrix, framePeriod float64, fs int) ([]float64, error) {
	return v.synthesis(context.Background(), f0, sp, ap, framePeriod, fs)
}

func (v *Vocoder) synthesis(ctx context.Context, f0 []float64, sp, ap Matrix, framePeriod float64, fs int) ([]float64, error) {
	const op = "synthesis"
	var y []float64
	err := v.stage(ctx, op, func() (int, error) {
		if err := validateSampleRate(op, fs); err != nil {
			return 0, err
		}
		if !(framePeriod > 0) {
			return 0, fmt.Errorf("%s: %w: %v", op, ErrInvalidFramePeriod, framePeriod)
		}
		if len(f0) == 0 {
			return 0, fmt.Errorf("%s: %w", op, ErrNoFrames)
		}

		shape, err := validateFrameMatrix(op, "spectrogram", sp)
		if err != nil {
			return 0, err
		}
		if err := shape.Check(op, "aperiodicity", ap); err != nil {
			return 0, err
		}
		if len(f0) != shape.Frames {
			return 0, shapeError(op, "f0 frames", len(f0), shape.Frames)
		}

		y = make([]float64, SynthesisLength(shape.Frames, framePeriod, fs))
		v.backend.Synthesis(f0, sp.rowViews(), ap.rowViews(), shape.FFTSize, framePeriod, fs, y)
		return shape.Frames, nil
	})
	if err != nil {
		return nil, err
	}
	return y, nil
}
