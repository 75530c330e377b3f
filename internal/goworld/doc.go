// Package goworld is a pure-Go implementation of the WORLD backend contract
// declared in package binding.
//
// It follows the shape contract of the native library exactly (frame counts,
// FFT sizes, coded dimensions, unvoiced conventions) and approximates the
// numerics with simpler estimators:
//
//   - Dio: normalised autocorrelation on a decimated signal, searched band by
//     band with ChannelsInOctave bands per octave.
//   - Harvest: YIN cumulative-mean-normalised difference at full rate.
//   - StoneMask: autocorrelation peak refinement around the coarse period.
//   - CheapTrick: pitch-adaptive windowing, linear smoothing and cepstral
//     liftering.
//   - D4C: band aperiodicity from harmonic and valley energy every 3 kHz.
//   - Codec: banded aperiodicity in dB and a mel-warped DCT of the log
//     envelope.
//   - Synthesis: minimum-phase pulse responses plus shaped noise, overlap-add.
//
// All routines are deterministic: noise is drawn from a fixed-seed generator
// created per call. Nothing is cached between calls, so a single Backend value
// may be shared by any number of goroutines.
//
// FFTs run on github.com/MeKo-Christian/algo-fft; block arithmetic goes
// through github.com/cwbudde/algo-vecmath. Building with the fastmath tag
// switches the synthesis amplitude path to github.com/meko-christian/algo-approx.
package goworld
