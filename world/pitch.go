package world

import (
	"context"
	"fmt"
)

// SamplesForDio returns the number of frames Dio produces for xLength
// samples at fs with the given frame period.
func (v *Vocoder) SamplesForDio(fs, xLength int, framePeriod float64) int {
	return v.backend.GetSamplesForDIO(fs, xLength, framePeriod)
}

// SamplesForHarvest returns the number of frames Harvest produces.
func (v *Vocoder) SamplesForHarvest(fs, xLength int, framePeriod float64) int {
	return v.backend.GetSamplesForHarvest(fs, xLength, framePeriod)
}

// Dio estimates the f0 contour of x. It returns one temporal position (s)
// and one f0 value (Hz, 0 when unvoiced) per frame.
func (v *Vocoder) Dio(x []float64, fs int, option DioOption) (temporalPositions, f0 []float64, err error) {
	return v.dio(context.Background(), x, fs, option)
}

func (v *Vocoder) dio(ctx context.Context, x []float64, fs int, option DioOption) (temporalPositions, f0 []float64, err error) {
	const op = "dio"
	err = v.stage(ctx, op, func() (int, error) {
		if err := requirePopulated(op, "DioOption", option.populated); err != nil {
			return 0, err
		}
		if err := validateWaveform(op, x, fs); err != nil {
			return 0, err
		}

		frames := v.backend.GetSamplesForDIO(fs, len(x), option.FramePeriod)
		if frames < 1 {
			return 0, fmt.Errorf("%s: %w for frame period %v", op, ErrNoFrames, option.FramePeriod)
		}

		temporalPositions = make([]float64, frames)
		f0 = make([]float64, frames)
		raw := option.DioOption
		v.backend.Dio(x, fs, &raw, temporalPositions, f0)
		return frames, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return temporalPositions, f0, nil
}

// Harvest estimates the f0 contour of x with the slower, more robust
// estimator. Its output has the same layout as Dio's.
func (v *Vocoder) Harvest(x []float64, fs int, option HarvestOption) (temporalPositions, f0 []float64, err error) {
	return v.harvest(context.Background(), x, fs, option)
}

func (v *Vocoder) harvest(ctx context.Context, x []float64, fs int, option HarvestOption) (temporalPositions, f0 []float64, err error) {
	const op = "harvest"
	err = v.stage(ctx, op, func() (int, error) {
		if err := requirePopulated(op, "HarvestOption", option.populated); err != nil {
			return 0, err
		}
		if err := validateWaveform(op, x, fs); err != nil {
			return 0, err
		}

		frames := v.backend.GetSamplesForHarvest(fs, len(x), option.FramePeriod)
		if frames < 1 {
			return 0, fmt.Errorf("%s: %w for frame period %v", op, ErrNoFrames, option.FramePeriod)
		}

		temporalPositions = make([]float64, frames)
		f0 = make([]float64, frames)
		raw := option.HarvestOption
		v.backend.Harvest(x, fs, &raw, temporalPositions, f0)
		return frames, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return temporalPositions, f0, nil
}

// StoneMask refines a coarse f0 contour. The result has len(f0) values and
// unvoiced frames stay exactly 0.
func (v *Vocoder) StoneMask(x []float64, fs int, temporalPositions, f0 []float64) ([]float64, error) {
	return v.stoneMask(context.Background(), x, fs, temporalPositions, f0)
}

func (v *Vocoder) stoneMask(ctx context.Context, x []float64, fs int, temporalPositions, f0 []float64) ([]float64, error) {
	const op = "stonemask"
	var refined []float64
	err := v.stage(ctx, op, func() (int, error) {
		if err := validateWaveform(op, x, fs); err != nil {
			return 0, err
		}
		frames, err := validateTrack(op, temporalPositions, f0)
		if err != nil {
			return 0, err
		}

		refined = make([]float64, frames)
		v.backend.StoneMask(x, fs, temporalPositions, f0, refined)

		// Unvoiced frames stay exactly 0 whatever the backend wrote.
		for i, f := range f0 {
			if f == 0 {
				refined[i] = 0
			}
		}
		return frames, nil
	})
	if err != nil {
		return nil, err
	}
	return refined, nil
}
