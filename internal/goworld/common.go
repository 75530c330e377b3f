package goworld

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	floorF0            = 71.0
	ceilF0             = 800.0
	defaultF0          = 500.0
	defaultFramePeriod = 5.0

	safeGuardMinimum = 0.000000000001
	epsilon          = 0.00000000000000022204460492503131

	frequencyInterval = 3000.0
	upperLimit        = 15000.0

	unvoicedAperiodicity = 1 - safeGuardMinimum
)

// fftWorkspace owns the buffers of one transform size for the duration of a
// single backend call.
type fftWorkspace struct {
	size int
	plan *algofft.Plan[complex128]
	time []complex128
	freq []complex128
	re   []float64
	im   []float64
}

func newFFTWorkspace(size int) *fftWorkspace {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		panic(fmt.Sprintf("goworld: FFT plan of size %d: %v", size, err))
	}

	bins := size/2 + 1

	return &fftWorkspace{
		size: size,
		plan: plan,
		time: make([]complex128, size),
		freq: make([]complex128, size),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
	}
}

func (w *fftWorkspace) forward() {
	if err := w.plan.Forward(w.freq, w.time); err != nil {
		panic(fmt.Sprintf("goworld: forward FFT failed: %v", err))
	}
}

func (w *fftWorkspace) inverse() {
	if err := w.plan.Inverse(w.time, w.freq); err != nil {
		panic(fmt.Sprintf("goworld: inverse FFT failed: %v", err))
	}
}

// powerSpectrum writes |FFT(frame)|^2 for bins 0..size/2 into dst. frame is
// zero-padded to the transform size.
func (w *fftWorkspace) powerSpectrum(dst, frame []float64) {
	for i := range w.time {
		if i < len(frame) {
			w.time[i] = complex(frame[i], 0)
		} else {
			w.time[i] = 0
		}
	}

	w.forward()

	bins := w.size/2 + 1
	for k := range bins {
		w.re[k] = real(w.freq[k])
		w.im[k] = imag(w.freq[k])
	}

	vecmath.Power(dst[:bins], w.re, w.im)
}

// loadSymmetric fills time with a real, even spectrum built from the
// half-spectrum half (bins 0..size/2).
func (w *fftWorkspace) loadSymmetric(half []float64) {
	bins := w.size/2 + 1
	for k := range bins {
		w.time[k] = complex(half[k], 0)
	}
	for k := bins; k < w.size; k++ {
		w.time[k] = w.time[w.size-k]
	}
}

// minimumPhase turns a log-amplitude half spectrum into the complex spectrum
// of the corresponding minimum-phase response, left in w.freq.
func (w *fftWorkspace) minimumPhase(logAmplitude []float64) {
	w.loadSymmetric(logAmplitude)

	// Real cepstrum: the spectrum is even, so forward and inverse agree up to
	// scale and the normalised inverse gives the cepstrum directly.
	w.freq, w.time = w.time, w.freq
	w.inverse()
	w.freq, w.time = w.time, w.freq

	half := w.size / 2
	for n := 1; n < half; n++ {
		w.freq[n] *= 2
	}
	for n := half + 1; n < w.size; n++ {
		w.freq[n] = 0
	}

	copy(w.time, w.freq)
	w.forward()

	for k := range w.freq {
		w.freq[k] = cmplx.Exp(w.freq[k])
	}
}

// segment copies x[start:start+len(dst)] into dst, zero-filling positions
// that fall outside x.
func segment(dst, x []float64, start int) {
	for i := range dst {
		idx := start + i
		if idx < 0 || idx >= len(x) {
			dst[i] = 0
			continue
		}
		dst[i] = x[idx]
	}
}

func energy(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// silent reports whether the RMS of x is at or below the safeguard minimum.
func silent(x []float64) bool {
	return energy(x) <= float64(len(x))*safeGuardMinimum*safeGuardMinimum
}

// nacf returns the normalised correlation between buf[:w] and buf[lag:lag+w].
func nacf(buf []float64, w, lag int) float64 {
	a := buf[:w]
	b := buf[lag : lag+w]
	den := math.Sqrt(energy(a) * energy(b))
	if den <= 0 {
		return 0
	}
	return dot(a, b) / den
}

// parabolicOffset returns the vertex offset of the parabola through
// (-1, a), (0, b), (1, c), clamped to [-0.5, 0.5].
func parabolicOffset(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	off := 0.5 * (a - c) / den
	return math.Max(-0.5, math.Min(0.5, off))
}

// hannWindow returns an n-point Hann window that excludes the zero end
// points, normalised to unit energy.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i+1)/float64(n+1))
	}
	vecmath.ScaleBlock(w, w, 1/math.Sqrt(energy(w)))
	return w
}

// interp1 linearly interpolates y(x) at xi into yi. x must be increasing;
// queries outside the axis take the nearest end value.
func interp1(x, y, xi, yi []float64) {
	last := len(x) - 1
	for i, q := range xi {
		switch {
		case q <= x[0]:
			yi[i] = y[0]
		case q >= x[last]:
			yi[i] = y[last]
		default:
			j := sort.SearchFloat64s(x, q)
			x0, x1 := x[j-1], x[j]
			if x1 == x0 {
				yi[i] = y[j]
				continue
			}
			t := (q - x0) / (x1 - x0)
			yi[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// newRandom returns the fixed-seed generator used for safeguard noise and
// synthesis excitation. Every call starts from the same state.
func newRandom() *rand.Rand {
	return rand.New(rand.NewPCG(0x5eed, 0x5eed))
}

// frequencyAxis returns the centre frequency of each bin of an fftSize-point
// transform.
func frequencyAxis(fs, fftSize int) []float64 {
	bins := fftSize/2 + 1
	axis := make([]float64, bins)
	df := float64(fs) / float64(fftSize)
	for k := range axis {
		axis[k] = float64(k) * df
	}
	return axis
}

// resampleHalfSpectrum maps src, a half spectrum of one transform size, onto
// dst, a half spectrum of another, by linear interpolation over normalised
// frequency. Equal lengths copy.
func resampleHalfSpectrum(dst, src []float64) {
	if len(dst) == len(src) {
		copy(dst, src)
		return
	}
	axis := make([]float64, len(src))
	for k := range axis {
		axis[k] = float64(k) / float64(len(src)-1)
	}
	query := make([]float64, len(dst))
	for k := range query {
		query[k] = float64(k) / float64(len(dst)-1)
	}
	interp1(axis, src, query, dst)
}
