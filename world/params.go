package world

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-world/internal/observe"
)

// Parameters is the full analysis of one waveform: everything Synthesis
// needs to render it again.
type Parameters struct {
	SampleRate        int
	FramePeriod       float64 // ms
	TemporalPositions []float64
	F0                []float64
	Spectrogram       Matrix
	Aperiodicity      Matrix
}

// Shape returns the frame shape of the spectrogram.
func (p *Parameters) Shape() FrameShape {
	return ShapeOf(p.Spectrogram)
}

// Validate checks that every per-frame field agrees on the frame count and
// that spectrogram and aperiodicity share bins.
func (p *Parameters) Validate() error {
	const op = "parameters"
	if p == nil {
		return fmt.Errorf("%s: %w", op, ErrNilParameters)
	}
	if err := validateSampleRate(op, p.SampleRate); err != nil {
		return err
	}
	if !(p.FramePeriod > 0) {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidFramePeriod, p.FramePeriod)
	}
	frames, err := validateTrack(op, p.TemporalPositions, p.F0)
	if err != nil {
		return err
	}
	shape, err := validateFrameMatrix(op, "spectrogram", p.Spectrogram)
	if err != nil {
		return err
	}
	if shape.Frames != frames {
		return shapeError(op, "spectrogram frames", shape.Frames, frames)
	}
	return shape.Check(op, "aperiodicity", p.Aperiodicity)
}

// Analyze runs the full analysis chain on x: f0 estimation (Dio or Harvest
// per cfg), StoneMask refinement unless cfg.SkipRefinement, CheapTrick, and
// D4C with CheapTrick's FFT size. Fresh option records are created for the
// call. ctx is checked between stages; a running stage is not interrupted.
func (v *Vocoder) Analyze(ctx context.Context, x []float64, fs int, cfg AnalysisConfig) (*Parameters, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, span := observe.StartSpan(ctx, v.tracer, "world.analyze")
	defer span.End()

	var (
		tp, f0      []float64
		framePeriod float64
		err         error
	)
	switch cfg.estimator() {
	case EstimatorHarvest:
		opt := v.NewHarvestOption()
		cfg.Harvest.apply(&opt)
		framePeriod = opt.FramePeriod
		tp, f0, err = v.harvest(ctx, x, fs, opt)
	default:
		opt := v.NewDioOption()
		cfg.Dio.apply(&opt)
		framePeriod = opt.FramePeriod
		tp, f0, err = v.dio(ctx, x, fs, opt)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.SkipRefinement {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f0, err = v.stoneMask(ctx, x, fs, tp, f0); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctOpt := v.NewCheapTrickOption(fs)
	cfg.CheapTrick.apply(&ctOpt)
	sp, err := v.cheapTrick(ctx, x, fs, tp, f0, &ctOpt)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d4cOpt := v.NewD4COption()
	cfg.D4C.apply(&d4cOpt)
	ap, err := v.d4c(ctx, x, fs, tp, f0, int(ctOpt.FFTSize), d4cOpt)
	if err != nil {
		return nil, err
	}

	return &Parameters{
		SampleRate:        fs,
		FramePeriod:       framePeriod,
		TemporalPositions: tp,
		F0:                f0,
		Spectrogram:       sp,
		Aperiodicity:      ap,
	}, nil
}

// Resynthesize renders p back into a waveform.
func (v *Vocoder) Resynthesize(ctx context.Context, p *Parameters) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.synthesis(ctx, p.F0, p.Spectrogram, p.Aperiodicity, p.FramePeriod, p.SampleRate)
}

// CodedParameters is the compact form of Parameters: band aperiodicity and a
// truncated envelope representation. FFTSize records the bin geometry to
// decode back to.
type CodedParameters struct {
	SampleRate        int
	FramePeriod       float64
	FFTSize           int
	TemporalPositions []float64
	F0                []float64
	CodedSpectrogram  Matrix
	CodedAperiodicity Matrix
}

// Encode codes p's envelope to dims coefficients and its aperiodicity to
// NumberOfAperiodicities(p.SampleRate) bands.
func (v *Vocoder) Encode(ctx context.Context, p *Parameters, dims int) (*CodedParameters, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	codedSp, err := v.codeSpectralEnvelope(ctx, p.Spectrogram, p.SampleRate, dims)
	if err != nil {
		return nil, err
	}
	codedAp, err := v.codeAperiodicity(ctx, p.Aperiodicity, p.SampleRate)
	if err != nil {
		return nil, err
	}

	return &CodedParameters{
		SampleRate:        p.SampleRate,
		FramePeriod:       p.FramePeriod,
		FFTSize:           p.Shape().FFTSize,
		TemporalPositions: append([]float64(nil), p.TemporalPositions...),
		F0:                append([]float64(nil), p.F0...),
		CodedSpectrogram:  codedSp,
		CodedAperiodicity: codedAp,
	}, nil
}

// Decode expands c back to full-resolution Parameters. Values are lossy;
// shapes are exact.
func (v *Vocoder) Decode(ctx context.Context, c *CodedParameters) (*Parameters, error) {
	if c == nil {
		return nil, fmt.Errorf("decode: %w", ErrNilParameters)
	}
	if c.CodedSpectrogram.Rows() != c.CodedAperiodicity.Rows() {
		return nil, shapeError("decode", "coded aperiodicity frames", c.CodedAperiodicity.Rows(), c.CodedSpectrogram.Rows())
	}

	sp, err := v.decodeSpectralEnvelope(ctx, c.CodedSpectrogram, c.SampleRate, c.FFTSize)
	if err != nil {
		return nil, err
	}
	ap, err := v.decodeAperiodicity(ctx, c.CodedAperiodicity, c.SampleRate, c.FFTSize)
	if err != nil {
		return nil, err
	}

	p := &Parameters{
		SampleRate:        c.SampleRate,
		FramePeriod:       c.FramePeriod,
		TemporalPositions: append([]float64(nil), c.TemporalPositions...),
		F0:                append([]float64(nil), c.F0...),
		Spectrogram:       sp,
		Aperiodicity:      ap,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// AnalyzeChannels analyses each channel concurrently, at most GOMAXPROCS at
// a time. The first failure cancels the remaining channels and is returned.
func (v *Vocoder) AnalyzeChannels(ctx context.Context, channels [][]float64, fs int, cfg AnalysisConfig) ([]*Parameters, error) {
	out := make([]*Parameters, len(channels))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, x := range channels {
		g.Go(func() error {
			p, err := v.Analyze(ctx, x, fs, cfg)
			if err != nil {
				return fmt.Errorf("channel %d: %w", i, err)
			}
			out[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
