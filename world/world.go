package world

import (
	"context"
	"sync"
)

var (
	defaultVocoder     *Vocoder
	defaultVocoderOnce sync.Once
)

// Default returns the package-level Vocoder used by the package functions.
// It uses the build-selected backend, slog.Default, and the global
// OpenTelemetry providers.
func Default() *Vocoder {
	defaultVocoderOnce.Do(func() {
		v, err := New()
		if err != nil {
			panic("world: failed to create default vocoder: " + err.Error())
		}
		defaultVocoder = v
	})
	return defaultVocoder
}

// NewDioOption returns Dio defaults from the default backend.
func NewDioOption() DioOption { return Default().NewDioOption() }

// NewHarvestOption returns Harvest defaults from the default backend.
func NewHarvestOption() HarvestOption { return Default().NewHarvestOption() }

// NewCheapTrickOption returns CheapTrick defaults for fs from the default
// backend.
func NewCheapTrickOption(fs int) CheapTrickOption { return Default().NewCheapTrickOption(fs) }

// NewD4COption returns D4C defaults from the default backend.
func NewD4COption() D4COption { return Default().NewD4COption() }

// Dio runs Vocoder.Dio on the default vocoder.
func Dio(x []float64, fs int, option DioOption) (temporalPositions, f0 []float64, err error) {
	return Default().Dio(x, fs, option)
}

// Harvest runs Vocoder.Harvest on the default vocoder.
func Harvest(x []float64, fs int, option HarvestOption) (temporalPositions, f0 []float64, err error) {
	return Default().Harvest(x, fs, option)
}

// StoneMask runs Vocoder.StoneMask on the default vocoder.
func StoneMask(x []float64, fs int, temporalPositions, f0 []float64) ([]float64, error) {
	return Default().StoneMask(x, fs, temporalPositions, f0)
}

// CheapTrick runs Vocoder.CheapTrick on the default vocoder.
func CheapTrick(x []float64, fs int, temporalPositions, f0 []float64, option *CheapTrickOption) (Matrix, error) {
	return Default().CheapTrick(x, fs, temporalPositions, f0, option)
}

// D4C runs Vocoder.D4C on the default vocoder.
func D4C(x []float64, fs int, temporalPositions, f0 []float64, fftSize int, option D4COption) (Matrix, error) {
	return Default().D4C(x, fs, temporalPositions, f0, fftSize, option)
}

// CodeAperiodicity runs Vocoder.CodeAperiodicity on the default vocoder.
func CodeAperiodicity(ap Matrix, fs int) (Matrix, error) {
	return Default().CodeAperiodicity(ap, fs)
}

// DecodeAperiodicity runs Vocoder.DecodeAperiodicity on the default vocoder.
func DecodeAperiodicity(coded Matrix, fs, fftSize int) (Matrix, error) {
	return Default().DecodeAperiodicity(coded, fs, fftSize)
}

// CodeSpectralEnvelope runs Vocoder.CodeSpectralEnvelope on the default
// vocoder.
func CodeSpectralEnvelope(sp Matrix, fs, dims int) (Matrix, error) {
	return Default().CodeSpectralEnvelope(sp, fs, dims)
}

// DecodeSpectralEnvelope runs Vocoder.DecodeSpectralEnvelope on the default
// vocoder.
func DecodeSpectralEnvelope(coded Matrix, fs, fftSize int) (Matrix, error) {
	return Default().DecodeSpectralEnvelope(coded, fs, fftSize)
}

// Synthesis runs Vocoder.Synthesis on the default vocoder.
func Synthesis(f0 []float64, sp, ap Matrix, framePeriod float64, fs int) ([]float64, error) {
	return Default().Synthesis(f0, sp, ap, framePeriod, fs)
}

// Analyze runs Vocoder.Analyze on the default vocoder.
func Analyze(ctx context.Context, x []float64, fs int, cfg AnalysisConfig) (*Parameters, error) {
	return Default().Analyze(ctx, x, fs, cfg)
}

// Resynthesize runs Vocoder.Resynthesize on the default vocoder.
func Resynthesize(ctx context.Context, p *Parameters) ([]float64, error) {
	return Default().Resynthesize(ctx, p)
}

// SamplesForDio returns the Dio frame count from the default backend.
func SamplesForDio(fs, xLength int, framePeriod float64) int {
	return Default().SamplesForDio(fs, xLength, framePeriod)
}

// SamplesForHarvest returns the Harvest frame count from the default backend.
func SamplesForHarvest(fs, xLength int, framePeriod float64) int {
	return Default().SamplesForHarvest(fs, xLength, framePeriod)
}

// CheapTrickFFTSize returns the CheapTrick FFT size from the default backend.
func CheapTrickFFTSize(fs int, option CheapTrickOption) int {
	return Default().CheapTrickFFTSize(fs, option)
}

// CheapTrickF0Floor returns the lowest f0 an fftSize-point CheapTrick
// analysis represents, from the default backend.
func CheapTrickF0Floor(fs, fftSize int) float64 {
	return Default().CheapTrickF0Floor(fs, fftSize)
}

// NumberOfAperiodicities returns the coded aperiodicity dimension at fs.
func NumberOfAperiodicities(fs int) int {
	return Default().NumberOfAperiodicities(fs)
}
