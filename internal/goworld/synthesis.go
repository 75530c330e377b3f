package goworld

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"
)

// Synthesis renders a waveform into y by overlap-adding one minimum-phase
// response per excitation pulse. Voiced pulses carry the periodic part
// sqrt(sp*(1-ap^2)) plus pulse-length noise shaped by sqrt(sp*ap^2);
// unvoiced pulses, placed at 500 Hz, carry only the noise part.
func (Backend) Synthesis(f0 []float64, spectrogram, aperiodicity [][]float64, fftSize int, framePeriod float64, fs int, y []float64) {
	clear(y)
	if len(f0) == 0 || len(y) == 0 {
		return
	}

	s := newSynthesizer(nextPowerOf2(fftSize))
	fsf := float64(fs)

	for pos := 0; pos < len(y); {
		frame := float64(pos) / fsf * 1000 / framePeriod
		current, nearest := pulseF0(f0, frame)

		voiced := current > 0
		if !voiced {
			current = defaultF0
		}
		period := int(min(max(math.Round(fsf/current), 1), float64(len(y))))

		resampleHalfSpectrum(s.sp, spectrogram[nearest])
		resampleHalfSpectrum(s.ap, aperiodicity[nearest])

		s.response(voiced, period)

		n := min(s.ws.size, len(y)-pos)
		vecmath.AddBlockInPlace(y[pos:pos+n], s.out[:n])

		pos += period
	}
}

// pulseF0 returns the f0 at fractional frame index frame and the nearest
// frame. Neighbouring voiced frames are interpolated linearly.
func pulseF0(f0 []float64, frame float64) (float64, int) {
	last := len(f0) - 1
	nearest := min(last, int(math.Round(frame)))
	lo := min(last, int(math.Floor(frame)))
	hi := min(last, lo+1)

	if f0[lo] > 0 && f0[hi] > 0 {
		t := frame - float64(lo)
		if lo == hi {
			t = 0
		}
		return f0[lo] + t*(f0[hi]-f0[lo]), nearest
	}
	return f0[nearest], nearest
}

type synthesizer struct {
	ws  *fftWorkspace
	rng *rand.Rand

	sp, ap   []float64
	logAmp   []float64
	shaping  []complex128
	out      []float64
	noiseBuf []float64
}

func newSynthesizer(size int) *synthesizer {
	bins := size/2 + 1
	return &synthesizer{
		ws:       newFFTWorkspace(size),
		rng:      newRandom(),
		sp:       make([]float64, bins),
		ap:       make([]float64, bins),
		logAmp:   make([]float64, bins),
		shaping:  make([]complex128, size),
		out:      make([]float64, size),
		noiseBuf: make([]float64, size),
	}
}

// response leaves the combined pulse response in s.out.
func (s *synthesizer) response(voiced bool, period int) {
	clear(s.out)
	ws := s.ws

	if voiced {
		for k := range s.logAmp {
			a := s.ap[k]
			s.logAmp[k] = amplitudeLog(s.sp[k] * (1 - a*a))
		}
		ws.minimumPhase(s.logAmp)
		ws.inverse()
		for n := range s.out {
			s.out[n] = real(ws.time[n])
		}
	}

	for k := range s.logAmp {
		a := s.ap[k]
		s.logAmp[k] = amplitudeLog(s.sp[k] * a * a)
	}
	ws.minimumPhase(s.logAmp)
	copy(s.shaping, ws.freq)

	length := min(period, ws.size)
	gain := 1 / math.Sqrt(float64(period))
	clear(s.noiseBuf)
	var noiseMean float64
	for n := range length {
		s.noiseBuf[n] = s.rng.NormFloat64()
		noiseMean += s.noiseBuf[n]
	}
	noiseMean /= float64(length)
	for n := range ws.time {
		ws.time[n] = 0
		if n < length {
			ws.time[n] = complex((s.noiseBuf[n]-noiseMean)*gain, 0)
		}
	}

	ws.forward()
	for k := range ws.freq {
		ws.freq[k] *= s.shaping[k]
	}
	ws.inverse()

	for n := range s.out {
		s.out[n] += real(ws.time[n])
	}
}

// amplitudeLog returns the log of the amplitude for power p, floored at the
// safeguard minimum.
func amplitudeLog(p float64) float64 {
	return mathLog(math.Max(mathSqrt(math.Max(p, 0)), safeGuardMinimum))
}
