//go:build cgo_world

package cworld

/*
#cgo LDFLAGS: -lworld -lstdc++ -lm

#include <world/cheaptrick.h>
#include <world/codec.h>
#include <world/d4c.h>
#include <world/dio.h>
#include <world/harvest.h>
#include <world/stonemask.h>
#include <world/synthesis.h>

static void world_code_aperiodicity(double **ap, int f0_length, int fs, int fft_size, double **coded) {
    CodeAperiodicity((const double * const *)ap, f0_length, fs, fft_size, coded);
}

static void world_decode_aperiodicity(double **coded, int f0_length, int fs, int fft_size, double **ap) {
    DecodeAperiodicity((const double * const *)coded, f0_length, fs, fft_size, ap);
}

static void world_code_spectral_envelope(double **sp, int f0_length, int fs, int fft_size, int dims, double **coded) {
    CodeSpectralEnvelope((const double * const *)sp, f0_length, fs, fft_size, dims, coded);
}

static void world_decode_spectral_envelope(double **coded, int f0_length, int fs, int fft_size, int dims, double **sp) {
    DecodeSpectralEnvelope((const double * const *)coded, f0_length, fs, fft_size, dims, sp);
}

static void world_synthesis(const double *f0, int f0_length, double **sp, double **ap,
    int fft_size, double frame_period, int fs, int y_length, double *y) {
    Synthesis(f0, f0_length, (const double * const *)sp, (const double * const *)ap,
        fft_size, frame_period, fs, y_length, y);
}
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/cwbudde/algo-world/binding"
)

var _ binding.Backend = Backend{}

// Backend calls into libworld. The zero value is ready to use.
type Backend struct{}

// New returns a native backend.
func New() Backend {
	return Backend{}
}

// Name returns "cworld".
func (Backend) Name() string {
	return "cworld"
}

// doubles returns a C view of x, or nil for an empty slice.
func doubles(x []float64) *C.double {
	if len(x) == 0 {
		return nil
	}
	return (*C.double)(unsafe.Pointer(&x[0]))
}

// withRows pins every row of each table, exposes it to fn as a C array of
// row pointers, and unpins on return.
func withRows(fn func(tables ...**C.double), tables ...[][]float64) {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	views := make([]**C.double, len(tables))
	for i, rows := range tables {
		if len(rows) == 0 {
			continue
		}
		ptrs := make([]*C.double, len(rows))
		for j, row := range rows {
			if len(row) == 0 {
				continue
			}
			pinner.Pin(&row[0])
			ptrs[j] = (*C.double)(unsafe.Pointer(&row[0]))
		}
		pinner.Pin(&ptrs[0])
		views[i] = &ptrs[0]
	}

	fn(views...)
}

func (Backend) InitializeDioOption(option *binding.DioOption) {
	var c C.DioOption
	C.InitializeDioOption(&c)
	*option = dioFromC(&c)
}

func (Backend) GetSamplesForDIO(fs, xLength int, framePeriod float64) int {
	return int(C.GetSamplesForDIO(C.int(fs), C.int(xLength), C.double(framePeriod)))
}

func (Backend) Dio(x []float64, fs int, option *binding.DioOption, temporalPositions, f0 []float64) {
	c := dioToC(option)
	C.Dio(doubles(x), C.int(len(x)), C.int(fs), &c, doubles(temporalPositions), doubles(f0))
}

func (Backend) InitializeHarvestOption(option *binding.HarvestOption) {
	var c C.HarvestOption
	C.InitializeHarvestOption(&c)
	*option = binding.HarvestOption{
		F0Floor:     float64(c.f0_floor),
		F0Ceil:      float64(c.f0_ceil),
		FramePeriod: float64(c.frame_period),
	}
}

func (Backend) GetSamplesForHarvest(fs, xLength int, framePeriod float64) int {
	return int(C.GetSamplesForHarvest(C.int(fs), C.int(xLength), C.double(framePeriod)))
}

func (Backend) Harvest(x []float64, fs int, option *binding.HarvestOption, temporalPositions, f0 []float64) {
	c := C.HarvestOption{
		f0_floor:     C.double(option.F0Floor),
		f0_ceil:      C.double(option.F0Ceil),
		frame_period: C.double(option.FramePeriod),
	}
	C.Harvest(doubles(x), C.int(len(x)), C.int(fs), &c, doubles(temporalPositions), doubles(f0))
}

func (Backend) StoneMask(x []float64, fs int, temporalPositions, f0, refinedF0 []float64) {
	C.StoneMask(doubles(x), C.int(len(x)), C.int(fs), doubles(temporalPositions),
		doubles(f0), C.int(len(f0)), doubles(refinedF0))
}

func (Backend) InitializeCheapTrickOption(fs int, option *binding.CheapTrickOption) {
	var c C.CheapTrickOption
	C.InitializeCheapTrickOption(C.int(fs), &c)
	*option = cheapTrickFromC(&c)
}

func (Backend) GetFFTSizeForCheapTrick(fs int, option *binding.CheapTrickOption) int {
	c := cheapTrickToC(option)
	return int(C.GetFFTSizeForCheapTrick(C.int(fs), &c))
}

func (Backend) GetF0FloorForCheapTrick(fs, fftSize int) float64 {
	return float64(C.GetF0FloorForCheapTrick(C.int(fs), C.int(fftSize)))
}

func (Backend) CheapTrick(x []float64, fs int, temporalPositions, f0 []float64, option *binding.CheapTrickOption, spectrogram [][]float64) {
	c := cheapTrickToC(option)
	withRows(func(t ...**C.double) {
		C.CheapTrick(doubles(x), C.int(len(x)), C.int(fs), doubles(temporalPositions),
			doubles(f0), C.int(len(f0)), &c, t[0])
	}, spectrogram)
}

func (Backend) InitializeD4COption(option *binding.D4COption) {
	var c C.D4COption
	C.InitializeD4COption(&c)
	option.Threshold = float64(c.threshold)
}

func (Backend) D4C(x []float64, fs int, temporalPositions, f0 []float64, fftSize int, option *binding.D4COption, aperiodicity [][]float64) {
	c := C.D4COption{threshold: C.double(option.Threshold)}
	withRows(func(t ...**C.double) {
		C.D4C(doubles(x), C.int(len(x)), C.int(fs), doubles(temporalPositions),
			doubles(f0), C.int(len(f0)), C.int(fftSize), &c, t[0])
	}, aperiodicity)
}

func (Backend) GetNumberOfAperiodicities(fs int) int {
	return int(C.GetNumberOfAperiodicities(C.int(fs)))
}

func (Backend) CodeAperiodicity(aperiodicity [][]float64, f0Length, fs, fftSize int, coded [][]float64) {
	withRows(func(t ...**C.double) {
		C.world_code_aperiodicity(t[0], C.int(f0Length), C.int(fs), C.int(fftSize), t[1])
	}, aperiodicity, coded)
}

func (Backend) DecodeAperiodicity(coded [][]float64, f0Length, fs, fftSize int, aperiodicity [][]float64) {
	withRows(func(t ...**C.double) {
		C.world_decode_aperiodicity(t[0], C.int(f0Length), C.int(fs), C.int(fftSize), t[1])
	}, coded, aperiodicity)
}

func (Backend) CodeSpectralEnvelope(spectrogram [][]float64, f0Length, fs, fftSize, numberOfDimensions int, coded [][]float64) {
	withRows(func(t ...**C.double) {
		C.world_code_spectral_envelope(t[0], C.int(f0Length), C.int(fs), C.int(fftSize),
			C.int(numberOfDimensions), t[1])
	}, spectrogram, coded)
}

func (Backend) DecodeSpectralEnvelope(coded [][]float64, f0Length, fs, fftSize, numberOfDimensions int, spectrogram [][]float64) {
	withRows(func(t ...**C.double) {
		C.world_decode_spectral_envelope(t[0], C.int(f0Length), C.int(fs), C.int(fftSize),
			C.int(numberOfDimensions), t[1])
	}, coded, spectrogram)
}

func (Backend) Synthesis(f0 []float64, spectrogram, aperiodicity [][]float64, fftSize int, framePeriod float64, fs int, y []float64) {
	withRows(func(t ...**C.double) {
		C.world_synthesis(doubles(f0), C.int(len(f0)), t[0], t[1], C.int(fftSize),
			C.double(framePeriod), C.int(fs), C.int(len(y)), doubles(y))
	}, spectrogram, aperiodicity)
}

func dioToC(option *binding.DioOption) C.DioOption {
	return C.DioOption{
		f0_floor:           C.double(option.F0Floor),
		f0_ceil:            C.double(option.F0Ceil),
		channels_in_octave: C.double(option.ChannelsInOctave),
		frame_period:       C.double(option.FramePeriod),
		speed:              C.int(option.Speed),
		allowed_range:      C.double(option.AllowedRange),
	}
}

func dioFromC(c *C.DioOption) binding.DioOption {
	return binding.DioOption{
		F0Floor:          float64(c.f0_floor),
		F0Ceil:           float64(c.f0_ceil),
		ChannelsInOctave: float64(c.channels_in_octave),
		FramePeriod:      float64(c.frame_period),
		Speed:            int32(c.speed),
		AllowedRange:     float64(c.allowed_range),
	}
}

func cheapTrickToC(option *binding.CheapTrickOption) C.CheapTrickOption {
	return C.CheapTrickOption{
		q1:       C.double(option.Q1),
		f0_floor: C.double(option.F0Floor),
		fft_size: C.int(option.FFTSize),
	}
}

func cheapTrickFromC(c *C.CheapTrickOption) binding.CheapTrickOption {
	return binding.CheapTrickOption{
		Q1:      float64(c.q1),
		F0Floor: float64(c.f0_floor),
		FFTSize: int32(c.fft_size),
	}
}
