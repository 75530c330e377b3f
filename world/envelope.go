package world

import (
	"context"
	"fmt"
)

// CheapTrickFFTSize returns the FFT size CheapTrick uses at fs for option's
// f0 floor.
func (v *Vocoder) CheapTrickFFTSize(fs int, option CheapTrickOption) int {
	raw := option.CheapTrickOption
	return v.backend.GetFFTSizeForCheapTrick(fs, &raw)
}

// CheapTrickF0Floor returns the lowest f0 an fftSize-point CheapTrick
// analysis represents at fs.
func (v *Vocoder) CheapTrickF0Floor(fs, fftSize int) float64 {
	return v.backend.GetF0FloorForCheapTrick(fs, fftSize)
}

// CheapTrick estimates the spectral envelope of x. The FFT size is resolved
// from option.F0Floor immediately before the call and written back into
// option, so option.FFTSize afterwards matches the result's bins. The
// result has len(f0) rows and FFTSize/2+1 columns.
func (v *Vocoder) CheapTrick(x []float64, fs int, temporalPositions, f0 []float64, option *CheapTrickOption) (Matrix, error) {
	return v.cheapTrick(context.Background(), x, fs, temporalPositions, f0, option)
}

func (v *Vocoder) cheapTrick(ctx context.Context, x []float64, fs int, temporalPositions, f0 []float64, option *CheapTrickOption) (Matrix, error) {
	const op = "cheaptrick"
	var sp Matrix
	err := v.stage(ctx, op, func() (int, error) {
		if option == nil {
			return 0, fmt.Errorf("%s: %w: nil CheapTrickOption", op, ErrUninitializedOption)
		}
		if err := requirePopulated(op, "CheapTrickOption", option.populated); err != nil {
			return 0, err
		}
		if err := validateWaveform(op, x, fs); err != nil {
			return 0, err
		}
		frames, err := validateTrack(op, temporalPositions, f0)
		if err != nil {
			return 0, err
		}

		fftSize := v.backend.GetFFTSizeForCheapTrick(fs, &option.CheapTrickOption)
		if err := validateFFTSize(op, fftSize); err != nil {
			return 0, err
		}
		option.FFTSize = int32(fftSize)

		shape := FrameShape{Frames: frames, FFTSize: fftSize}
		sp = NewMatrix(shape.Frames, shape.Bins())
		raw := option.CheapTrickOption
		v.backend.CheapTrick(x, fs, temporalPositions, f0, &raw, sp.rowViews())
		return frames, nil
	})
	if err != nil {
		return Matrix{}, err
	}
	return sp, nil
}
