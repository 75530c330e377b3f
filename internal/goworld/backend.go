package goworld

import (
	"math"

	"github.com/cwbudde/algo-world/binding"
)

var _ binding.Backend = Backend{}

// Backend implements binding.Backend in pure Go. The zero value is ready to
// use.
type Backend struct{}

// New returns a pure-Go backend.
func New() Backend {
	return Backend{}
}

// Name returns "goworld".
func (Backend) Name() string {
	return "goworld"
}

// InitializeDioOption populates option with the Dio defaults.
func (Backend) InitializeDioOption(option *binding.DioOption) {
	option.F0Floor = floorF0
	option.F0Ceil = ceilF0
	option.ChannelsInOctave = 2.0
	option.FramePeriod = defaultFramePeriod
	option.Speed = 1
	option.AllowedRange = 0.1
}

// InitializeHarvestOption populates option with the Harvest defaults.
func (Backend) InitializeHarvestOption(option *binding.HarvestOption) {
	option.F0Floor = floorF0
	option.F0Ceil = ceilF0
	option.FramePeriod = defaultFramePeriod
}

// InitializeCheapTrickOption populates option with the CheapTrick defaults
// for fs, including the derived FFT size.
func (b Backend) InitializeCheapTrickOption(fs int, option *binding.CheapTrickOption) {
	option.Q1 = -0.15
	option.F0Floor = floorF0
	option.FFTSize = int32(b.GetFFTSizeForCheapTrick(fs, option))
}

// InitializeD4COption populates option with the D4C defaults.
func (Backend) InitializeD4COption(option *binding.D4COption) {
	option.Threshold = 0.85
}

// GetSamplesForDIO returns the number of frames Dio produces for xLength
// samples. A non-positive frame period yields 0.
func (Backend) GetSamplesForDIO(fs, xLength int, framePeriod float64) int {
	return samplesForFramePeriod(fs, xLength, framePeriod)
}

// GetSamplesForHarvest returns the number of frames Harvest produces for
// xLength samples. A non-positive frame period yields 0.
func (Backend) GetSamplesForHarvest(fs, xLength int, framePeriod float64) int {
	return samplesForFramePeriod(fs, xLength, framePeriod)
}

func samplesForFramePeriod(fs, xLength int, framePeriod float64) int {
	if fs <= 0 || !(framePeriod > 0) || math.IsInf(framePeriod, 0) {
		return 0
	}
	frames := 1000.0 * float64(xLength) / float64(fs) / framePeriod
	if frames >= math.MaxInt32 {
		return 0
	}
	return int(frames) + 1
}

// GetFFTSizeForCheapTrick returns the FFT size CheapTrick needs to cover
// three periods of option.F0Floor. A non-positive floor yields 0.
func (Backend) GetFFTSizeForCheapTrick(fs int, option *binding.CheapTrickOption) int {
	if fs <= 0 || !(option.F0Floor > 0) {
		return 0
	}
	exponent := int(math.Log(3.0*float64(fs)/option.F0Floor+1) / math.Ln2)
	return int(math.Pow(2.0, 1.0+float64(exponent)))
}

// GetF0FloorForCheapTrick returns the lowest f0 an fftSize-point CheapTrick
// analysis can represent.
func (Backend) GetF0FloorForCheapTrick(fs, fftSize int) float64 {
	return 3.0 * float64(fs) / (float64(fftSize) - 3.0)
}

// GetNumberOfAperiodicities returns the coded aperiodicity dimension for fs:
// one band every 3 kHz up to 15 kHz, staying 3 kHz below Nyquist.
func (Backend) GetNumberOfAperiodicities(fs int) int {
	return int(math.Min(upperLimit, float64(fs)/2.0-frequencyInterval) / frequencyInterval)
}
