package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PulseTrain generates a band-limited sawtooth at freqHz: the sum of every
// harmonic below Nyquist with 1/k amplitude. Its flat harmonic comb makes it
// a stand-in for a voiced excitation.
func PulseTrain(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	harmonics := int(sampleRate / 2 / freqHz)
	for k := 1; k <= harmonics; k++ {
		step := 2 * math.Pi * freqHz * float64(k) / sampleRate
		gain := amplitude / float64(k)
		for i := range out {
			out[i] += gain * math.Sin(step*float64(i))
		}
	}
	return out
}

// Silence returns length zero samples.
func Silence(length int) []float64 {
	return make([]float64, length)
}

// Rows returns a rows x cols table filled with value.
func Rows(rows, cols int, value float64) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		row := make([]float64, cols)
		for j := range row {
			row[j] = value
		}
		out[i] = row
	}
	return out
}
