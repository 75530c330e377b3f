package world

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/cwbudde/algo-world/internal/testutil"
)

const testRate = 16000

func testSignal() []float64 {
	return testutil.PulseTrain(150, testRate, 0.3, testRate/4)
}

func TestAnalyzeResynthesize(t *testing.T) {
	tv := newTestVocoder(t)
	ctx := context.Background()
	x := testSignal()

	p, err := tv.Analyze(ctx, x, testRate, AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	frames := tv.SamplesForDio(testRate, len(x), 5)
	if got := p.Shape(); got.Frames != frames || got.FFTSize != 1024 {
		t.Fatalf("shape = %+v, want %d frames of 1024", got, frames)
	}
	if p.FramePeriod != 5 || p.SampleRate != testRate {
		t.Fatalf("parameters = %v ms at %d Hz", p.FramePeriod, p.SampleRate)
	}

	y, err := tv.Resynthesize(ctx, p)
	if err != nil {
		t.Fatalf("Resynthesize: %v", err)
	}
	if want := SynthesisLength(frames, 5, testRate); len(y) != want {
		t.Fatalf("len(y) = %d, want %d", len(y), want)
	}
	testutil.RequireFinite(t, y)

	want := []string{"Dio", "StoneMask", "CheapTrick", "D4C", "Synthesis"}
	if got := tv.backend.Calls(); !slices.Equal(got, want) {
		t.Fatalf("backend calls = %v, want %v", got, want)
	}

	var analyze bool
	for _, s := range tv.spans.GetSpans() {
		if s.Name == "world.analyze" {
			analyze = true
		}
	}
	if !analyze {
		t.Fatal("no world.analyze span")
	}
}

func TestAnalyzeHarvestWithoutRefinement(t *testing.T) {
	tv := newTestVocoder(t)
	x := testSignal()
	framePeriod := 10.0

	cfg := AnalysisConfig{
		Estimator:      EstimatorHarvest,
		SkipRefinement: true,
		Harvest:        HarvestOverrides{FramePeriod: &framePeriod},
	}
	p, err := tv.Analyze(context.Background(), x, testRate, cfg)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := []string{"Harvest", "CheapTrick", "D4C"}
	if got := tv.backend.Calls(); !slices.Equal(got, want) {
		t.Fatalf("backend calls = %v, want %v", got, want)
	}
	if p.FramePeriod != 10 || len(p.F0) != tv.SamplesForHarvest(testRate, len(x), 10) {
		t.Fatalf("frame period %v with %d frames", p.FramePeriod, len(p.F0))
	}
}

func TestAnalyzeCheapTrickFloorOverride(t *testing.T) {
	tv := newTestVocoder(t)
	floor := 150.0

	p, err := tv.Analyze(context.Background(), testSignal(), testRate, AnalysisConfig{
		CheapTrick: CheapTrickOverrides{F0Floor: &floor},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// 3*16000/150+1 = 321, so the FFT size drops to 512.
	if got := p.Shape().FFTSize; got != 512 {
		t.Fatalf("FFTSize = %d, want 512", got)
	}
	if err := p.Shape().Check("test", "aperiodicity", p.Aperiodicity); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeRejectsUnknownEstimator(t *testing.T) {
	tv := newTestVocoder(t)
	_, err := tv.Analyze(context.Background(), testSignal(), testRate, AnalysisConfig{Estimator: "yin"})
	if !errors.Is(err, ErrUnknownEstimator) {
		t.Fatalf("err = %v, want ErrUnknownEstimator", err)
	}
	tv.requireNoBackendCalls(t)
}

func TestAnalyzeCanceled(t *testing.T) {
	tv := newTestVocoder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tv.Analyze(ctx, testSignal(), testRate, AnalysisConfig{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := tv.backend.Calls(); !slices.Equal(got, []string{"Dio"}) {
		t.Fatalf("backend calls = %v, want only Dio", got)
	}
}

func TestParametersValidate(t *testing.T) {
	valid := func() *Parameters {
		return &Parameters{
			SampleRate:        testRate,
			FramePeriod:       5,
			TemporalPositions: []float64{0, 0.005},
			F0:                []float64{0, 120},
			Spectrogram:       NewMatrix(2, 513),
			Aperiodicity:      NewMatrix(2, 513),
		}
	}

	tests := []struct {
		name   string
		mutate func(p *Parameters)
		want   error
	}{
		{"valid", func(*Parameters) {}, nil},
		{"sample rate", func(p *Parameters) { p.SampleRate = 0 }, ErrInvalidSampleRate},
		{"frame period", func(p *Parameters) { p.FramePeriod = -5 }, ErrInvalidFramePeriod},
		{"no frames", func(p *Parameters) { p.F0, p.TemporalPositions = nil, nil }, ErrNoFrames},
		{"positions", func(p *Parameters) { p.TemporalPositions = p.TemporalPositions[:1] }, ErrShapeMismatch},
		{"spectrogram frames", func(p *Parameters) { p.Spectrogram = NewMatrix(3, 513) }, ErrShapeMismatch},
		{"aperiodicity bins", func(p *Parameters) { p.Aperiodicity = NewMatrix(2, 1025) }, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	tv := newTestVocoder(t)
	ctx := context.Background()

	p, err := tv.Analyze(ctx, testSignal(), testRate, AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	c, err := tv.Encode(ctx, p, 40)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	frames := len(p.F0)
	if c.FFTSize != 1024 || c.CodedSpectrogram.Rows() != frames || c.CodedSpectrogram.Cols() != 40 {
		t.Fatalf("coded spectrogram %dx%d, fft %d", c.CodedSpectrogram.Rows(), c.CodedSpectrogram.Cols(), c.FFTSize)
	}
	if c.CodedAperiodicity.Rows() != frames || c.CodedAperiodicity.Cols() != tv.NumberOfAperiodicities(testRate) {
		t.Fatalf("coded aperiodicity %dx%d", c.CodedAperiodicity.Rows(), c.CodedAperiodicity.Cols())
	}

	d, err := tv.Decode(ctx, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Shape() != p.Shape() {
		t.Fatalf("decoded shape %+v, want %+v", d.Shape(), p.Shape())
	}
	testutil.RequireSliceNearlyEqual(t, d.F0, p.F0, 0)
	testutil.RequireRowsFinite(t, d.Spectrogram.ToRows())

	y, err := tv.Resynthesize(ctx, d)
	if err != nil {
		t.Fatalf("Resynthesize: %v", err)
	}
	testutil.RequireFinite(t, y)

	c.F0[0] = -1
	if p.F0[0] == -1 {
		t.Fatal("coded parameters alias the analysis f0")
	}
}

func TestDecodeFrameMismatch(t *testing.T) {
	tv := newTestVocoder(t)
	c := &CodedParameters{
		SampleRate:        testRate,
		FramePeriod:       5,
		FFTSize:           1024,
		TemporalPositions: []float64{0, 0.005},
		F0:                []float64{0, 0},
		CodedSpectrogram:  NewMatrix(2, 40),
		CodedAperiodicity: NewMatrix(3, 1),
	}
	if _, err := tv.Decode(context.Background(), c); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
	tv.requireNoBackendCalls(t)
}

func TestEncodeUnsupportedRate(t *testing.T) {
	tv := newTestVocoder(t)
	p := &Parameters{
		SampleRate:        8000,
		FramePeriod:       5,
		TemporalPositions: []float64{0},
		F0:                []float64{0},
		Spectrogram:       NewMatrix(1, 257),
		Aperiodicity:      NewMatrix(1, 257),
	}
	if _, err := tv.Encode(context.Background(), p, 20); !errors.Is(err, ErrUnsupportedSampleRate) {
		t.Fatalf("err = %v, want ErrUnsupportedSampleRate", err)
	}
}

func TestAnalyzeChannels(t *testing.T) {
	tv := newTestVocoder(t)
	ctx := context.Background()
	channels := [][]float64{
		testSignal(),
		testutil.DeterministicSine(220, testRate, 0.4, testRate/4),
		testutil.Silence(testRate / 4),
	}

	got, err := tv.AnalyzeChannels(ctx, channels, testRate, AnalysisConfig{})
	if err != nil {
		t.Fatalf("AnalyzeChannels: %v", err)
	}
	if len(got) != len(channels) {
		t.Fatalf("got %d results, want %d", len(got), len(channels))
	}

	for i, x := range channels {
		want, err := tv.Analyze(ctx, x, testRate, AnalysisConfig{})
		if err != nil {
			t.Fatalf("Analyze(%d): %v", i, err)
		}
		testutil.RequireSliceNearlyEqual(t, got[i].F0, want.F0, 0)
		for k := range want.Spectrogram.Rows() {
			testutil.RequireSliceNearlyEqual(t, got[i].Spectrogram.Row(k), want.Spectrogram.Row(k), 0)
			testutil.RequireSliceNearlyEqual(t, got[i].Aperiodicity.Row(k), want.Aperiodicity.Row(k), 0)
		}
	}
}

func TestAnalyzeChannelsError(t *testing.T) {
	tv := newTestVocoder(t)
	channels := [][]float64{testSignal(), nil}

	_, err := tv.AnalyzeChannels(context.Background(), channels, testRate, AnalysisConfig{})
	if !errors.Is(err, ErrEmptyWaveform) {
		t.Fatalf("err = %v, want ErrEmptyWaveform", err)
	}
	if !strings.Contains(err.Error(), "channel 1") {
		t.Fatalf("err = %v, want channel index", err)
	}
}

func TestNilParameters(t *testing.T) {
	tv := newTestVocoder(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"validate", func() error { return (*Parameters)(nil).Validate() }},
		{"resynthesize", func() error {
			_, err := tv.Resynthesize(ctx, nil)
			return err
		}},
		{"encode", func() error {
			_, err := tv.Encode(ctx, nil, 40)
			return err
		}},
		{"decode", func() error {
			_, err := tv.Decode(ctx, nil)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrNilParameters) {
				t.Fatalf("err = %v, want ErrNilParameters", err)
			}
		})
	}
	tv.requireNoBackendCalls(t)
}
