package goworld

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-world/binding"
)

// CheapTrick estimates the power spectral envelope of every frame. Each row
// of spectrogram must hold option.FFTSize/2+1 bins.
func (b Backend) CheapTrick(x []float64, fs int, temporalPositions, f0 []float64, option *binding.CheapTrickOption, spectrogram [][]float64) {
	fftSize := int(option.FFTSize)
	floor := b.GetF0FloorForCheapTrick(fs, fftSize)

	ct := newCheapTrick(fs, nextPowerOf2(fftSize), option.Q1)

	for i := range f0 {
		current := f0[i]
		if !(current > floor) {
			current = defaultF0
		}
		ct.frame(x, temporalPositions[i], current)
		resampleHalfSpectrum(spectrogram[i], ct.envelope)
	}
}

type cheapTrick struct {
	fs   float64
	q1   float64
	ws   *fftWorkspace
	rng  *rand.Rand
	axis []float64

	frameBuf []float64
	power    []float64
	envelope []float64
}

func newCheapTrick(fs, size int, q1 float64) *cheapTrick {
	bins := size/2 + 1
	return &cheapTrick{
		fs:       float64(fs),
		q1:       q1,
		ws:       newFFTWorkspace(size),
		rng:      newRandom(),
		axis:     frequencyAxis(fs, size),
		frameBuf: make([]float64, size),
		power:    make([]float64, bins),
		envelope: make([]float64, bins),
	}
}

func (c *cheapTrick) frame(x []float64, t, f0 float64) {
	c.windowedWaveform(x, t, f0)
	c.ws.powerSpectrum(c.power, c.frameBuf)
	c.correctDC(f0)
	c.smooth(2.0 * f0 / 3.0)

	for k := range c.power {
		c.power[k] += math.Abs(c.rng.NormFloat64()) * epsilon
	}

	c.lifter(f0)
}

// windowedWaveform extracts three periods around t under a unit-energy
// cosine window and removes the window-weighted mean.
func (c *cheapTrick) windowedWaveform(x []float64, t, f0 float64) {
	span := 1.5 * c.fs / f0
	half := int(math.Round(span))
	length := min(2*half+1, len(c.frameBuf))
	center := int(math.Round(t * c.fs))

	window := make([]float64, length)
	for i := range window {
		pos := float64(i-half) / span
		window[i] = 0.5*math.Cos(math.Pi*pos) + 0.5
	}
	norm := math.Sqrt(energy(window))

	buf := c.frameBuf
	clear(buf)
	segment(buf[:length], x, center-half)

	var weighted, total float64
	for i := range window {
		window[i] /= norm
		buf[i] = buf[i]*window[i] + c.rng.NormFloat64()*safeGuardMinimum
		weighted += buf[i]
		total += window[i]
	}
	mean := weighted / total
	for i := range window {
		buf[i] -= window[i] * mean
	}
}

// correctDC folds the mirror image of the spectrum about f0 onto the bins
// below f0.
func (c *cheapTrick) correctDC(f0 float64) {
	df := c.axis[1]
	upper := min(len(c.power), int(f0/df)+1)
	if upper <= 0 {
		return
	}

	query := make([]float64, upper)
	for k := range query {
		query[k] = f0 - c.axis[k]
	}
	replica := make([]float64, upper)
	interp1(c.axis, c.power, query, replica)

	for k := range upper {
		c.power[k] += replica[k]
	}
}

// smooth replaces the power spectrum by its moving average over width Hz,
// mirroring the spectrum about DC and Nyquist.
func (c *cheapTrick) smooth(width float64) {
	bins := len(c.power)
	df := c.axis[1]
	ext := min(bins-1, int(width/df)+2)
	n := bins + 2*ext

	cumAxis := make([]float64, n+1)
	cum := make([]float64, n+1)
	cumAxis[0] = (float64(-ext) - 0.5) * df
	for i := range n {
		k := i - ext
		switch {
		case k < 0:
			k = -k
		case k >= bins:
			k = 2*(bins-1) - k
		}
		cum[i+1] = cum[i] + c.power[k]*df
		cumAxis[i+1] = (float64(i-ext) + 0.5) * df
	}

	lo := make([]float64, bins)
	hi := make([]float64, bins)
	for k := range bins {
		lo[k] = c.axis[k] - width/2
		hi[k] = c.axis[k] + width/2
	}
	interp1(cumAxis, cum, lo, lo)
	interp1(cumAxis, cum, hi, hi)

	for k := range bins {
		c.power[k] = (hi[k] - lo[k]) / width
	}
}

// lifter smooths the log spectrum in the cepstral domain and compensates
// the resulting high-quefrency loss with q1, leaving the envelope in
// c.envelope.
func (c *cheapTrick) lifter(f0 float64) {
	ws := c.ws
	bins := len(c.power)
	for k := range bins {
		c.envelope[k] = math.Log(c.power[k])
	}

	ws.loadSymmetric(c.envelope)
	ws.freq, ws.time = ws.time, ws.freq
	ws.inverse()

	for n := range ws.size {
		q := n
		if q > ws.size/2 {
			q = ws.size - q
		}
		quefrency := float64(q) / c.fs
		smoothing := 1.0
		if q > 0 {
			arg := math.Pi * f0 * quefrency
			smoothing = math.Sin(arg) / arg
		}
		compensation := 1 - 2*c.q1 + 2*c.q1*math.Cos(2*math.Pi*f0*quefrency)
		ws.time[n] *= complex(smoothing*compensation, 0)
	}

	ws.forward()

	for k := range bins {
		c.envelope[k] = math.Exp(real(ws.freq[k]))
	}
}
