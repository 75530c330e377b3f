package world

import (
	"context"
	"fmt"
)

// NumberOfAperiodicities returns the coded aperiodicity dimension at fs. It
// depends on fs alone.
func (v *Vocoder) NumberOfAperiodicities(fs int) int {
	return v.backend.GetNumberOfAperiodicities(fs)
}

func (v *Vocoder) codedAperiodicityDims(op string, fs int) (int, error) {
	if err := validateSampleRate(op, fs); err != nil {
		return 0, err
	}
	dims := v.backend.GetNumberOfAperiodicities(fs)
	if dims < 1 {
		return 0, fmt.Errorf("%s: %w: %d Hz", op, ErrUnsupportedSampleRate, fs)
	}
	return dims, nil
}

// validateFrameMatrix checks that m can be read as a spectrogram or
// aperiodicity matrix and returns its shape.
func validateFrameMatrix(op, what string, m Matrix) (FrameShape, error) {
	if m.Rows() < 1 {
		return FrameShape{}, fmt.Errorf("%s: %w: empty %s", op, ErrNoFrames, what)
	}
	shape := ShapeOf(m)
	if m.Cols() < 2 {
		return FrameShape{}, fmt.Errorf("%s: %w: %s has %d bins", op, ErrInvalidFFTSize, what, m.Cols())
	}
	return shape, nil
}

// CodeAperiodicity reduces ap to NumberOfAperiodicities(fs) band values per
// frame, in dB. The FFT size and frame count are taken from ap.
func (v *Vocoder) CodeAperiodicity(ap Matrix, fs int) (Matrix, error) {
	return v.codeAperiodicity(context.Background(), ap, fs)
}

func (v *Vocoder) codeAperiodicity(ctx context.Context, ap Matrix, fs int) (Matrix, error) {
	const op = "code_aperiodicity"
	var coded Matrix
	err := v.stage(ctx, op, func() (int, error) {
		dims, err := v.codedAperiodicityDims(op, fs)
		if err != nil {
			return 0, err
		}
		shape, err := validateFrameMatrix(op, "aperiodicity", ap)
		if err != nil {
			return 0, err
		}

		coded = NewMatrix(shape.Frames, dims)
		v.backend.CodeAperiodicity(ap.rowViews(), shape.Frames, fs, shape.FFTSize, coded.rowViews())
		return shape.Frames, nil
	})
	if err != nil {
		return Matrix{}, err
	}
	return coded, nil
}

// DecodeAperiodicity expands coded band aperiodicity back to fftSize/2+1
// bins. coded must have exactly NumberOfAperiodicities(fs) columns.
func (v *Vocoder) DecodeAperiodicity(coded Matrix, fs, fftSize int) (Matrix, error) {
	return v.decodeAperiodicity(context.Background(), coded, fs, fftSize)
}

func (v *Vocoder) decodeAperiodicity(ctx context.Context, coded Matrix, fs, fftSize int) (Matrix, error) {
	const op = "decode_aperiodicity"
	var ap Matrix
	err := v.stage(ctx, op, func() (int, error) {
		dims, err := v.codedAperiodicityDims(op, fs)
		if err != nil {
			return 0, err
		}
		if err := validateFFTSize(op, fftSize); err != nil {
			return 0, err
		}
		if coded.Rows() < 1 {
			return 0, fmt.Errorf("%s: %w", op, ErrNoFrames)
		}
		if coded.Cols() != dims {
			return 0, shapeError(op, "coded aperiodicity dimensions", coded.Cols(), dims)
		}

		shape := FrameShape{Frames: coded.Rows(), FFTSize: fftSize}
		ap = NewMatrix(shape.Frames, shape.Bins())
		v.backend.DecodeAperiodicity(coded.rowViews(), shape.Frames, fs, fftSize, ap.rowViews())
		return shape.Frames, nil
	})
	if err != nil {
		return Matrix{}, err
	}
	return ap, nil
}

// CodeSpectralEnvelope reduces sp to dims coefficients per frame. dims must
// be in [1, FFTSize/2] where FFTSize is derived from sp.
func (v *Vocoder) CodeSpectralEnvelope(sp Matrix, fs, dims int) (Matrix, error) {
	return v.codeSpectralEnvelope(context.Background(), sp, fs, dims)
}

func (v *Vocoder) codeSpectralEnvelope(ctx context.Context, sp Matrix, fs, dims int) (Matrix, error) {
	const op = "code_spectral_envelope"
	var coded Matrix
	err := v.stage(ctx, op, func() (int, error) {
		if err := validateSampleRate(op, fs); err != nil {
			return 0, err
		}
		shape, err := validateFrameMatrix(op, "spectrogram", sp)
		if err != nil {
			return 0, err
		}
		if err := validateDimensions(op, dims, shape.FFTSize); err != nil {
			return 0, err
		}

		coded = NewMatrix(shape.Frames, dims)
		v.backend.CodeSpectralEnvelope(sp.rowViews(), shape.Frames, fs, shape.FFTSize, dims, coded.rowViews())
		return shape.Frames, nil
	})
	if err != nil {
		return Matrix{}, err
	}
	return coded, nil
}

// DecodeSpectralEnvelope expands coded back to fftSize/2+1 bins. The coded
// dimension is read from coded.Cols().
func (v *Vocoder) DecodeSpectralEnvelope(coded Matrix, fs, fftSize int) (Matrix, error) {
	return v.decodeSpectralEnvelope(context.Background(), coded, fs, fftSize)
}

func (v *Vocoder) decodeSpectralEnvelope(ctx context.Context, coded Matrix, fs, fftSize int) (Matrix, error) {
	const op = "decode_spectral_envelope"
	var sp Matrix
	err := v.stage(ctx, op, func() (int, error) {
		if err := validateSampleRate(op, fs); err != nil {
			return 0, err
		}
		if err := validateFFTSize(op, fftSize); err != nil {
			return 0, err
		}
		if coded.Rows() < 1 {
			return 0, fmt.Errorf("%s: %w", op, ErrNoFrames)
		}
		dims := coded.Cols()
		if err := validateDimensions(op, dims, fftSize); err != nil {
			return 0, err
		}

		shape := FrameShape{Frames: coded.Rows(), FFTSize: fftSize}
		sp = NewMatrix(shape.Frames, shape.Bins())
		v.backend.DecodeSpectralEnvelope(coded.rowViews(), shape.Frames, fs, fftSize, dims, sp.rowViews())
		return shape.Frames, nil
	})
	if err != nil {
		return Matrix{}, err
	}
	return sp, nil
}

func validateDimensions(op string, dims, fftSize int) error {
	if dims < 1 || dims > fftSize/2 {
		return fmt.Errorf("%s: %w: %d not in [1, %d]", op, ErrInvalidDimensions, dims, fftSize/2)
	}
	return nil
}
