package world

import "context"

// D4C estimates band aperiodicity of x. fftSize must be the size used for
// the paired CheapTrick call so both matrices share a FrameShape. The result
// has len(f0) rows and fftSize/2+1 columns; unvoiced frames hold values just
// below 1.
func (v *Vocoder) D4C(x []float64, fs int, temporalPositions, f0 []float64, fftSize int, option D4COption) (Matrix, error) {
	return v.d4c(context.Background(), x, fs, temporalPositions, f0, fftSize, option)
}

func (v *Vocoder) d4c(ctx context.Context, x []float64, fs int, temporalPositions, f0 []float64, fftSize int, option D4COption) (Matrix, error) {
	const op = "d4c"
	var ap Matrix
	err := v.stage(ctx, op, func() (int, error) {
		if err := requirePopulated(op, "D4COption", option.populated); err != nil {
			return 0, err
		}
		if err := validateWaveform(op, x, fs); err != nil {
			return 0, err
		}
		frames, err := validateTrack(op, temporalPositions, f0)
		if err != nil {
			return 0, err
		}
		if err := validateFFTSize(op, fftSize); err != nil {
			return 0, err
		}

		shape := FrameShape{Frames: frames, FFTSize: fftSize}
		ap = NewMatrix(shape.Frames, shape.Bins())
		raw := option.D4COption
		v.backend.D4C(x, fs, temporalPositions, f0, fftSize, &raw, ap.rowViews())
		return frames, nil
	})
	if err != nil {
		return Matrix{}, err
	}
	return ap, nil
}
