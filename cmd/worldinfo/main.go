// Command worldinfo prints the vocoder's default option records and the
// buffer shapes an analysis would produce.
//
// Usage:
//
//	worldinfo [flags]
//
// Examples:
//
//	worldinfo
//	worldinfo -fs 16000 -samples 48000
//	worldinfo -fs 44100 -f0-floor 150 -dims 60
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-world/world"
)

type settings struct {
	fs          int
	samples     int
	framePeriod float64
	f0Floor     float64
	dims        int
}

func main() {
	var s settings
	flag.IntVar(&s.fs, "fs", 44100, "sample rate in Hz")
	flag.IntVar(&s.samples, "samples", 44100, "waveform length in samples")
	flag.Float64Var(&s.framePeriod, "frame-period", math.NaN(), "frame period in ms (default: backend default)")
	flag.Float64Var(&s.f0Floor, "f0-floor", math.NaN(), "CheapTrick f0 floor in Hz (default: backend default)")
	flag.IntVar(&s.dims, "dims", 60, "coded spectral envelope dimensions")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: worldinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints default WORLD options and derived analysis shapes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if s.fs <= 0 || s.samples <= 0 {
		fmt.Fprintf(os.Stderr, "error: -fs and -samples must be > 0\n")
		os.Exit(2)
	}

	v, err := world.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printInfo(os.Stdout, v, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printInfo(w io.Writer, v *world.Vocoder, s settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	dio := v.NewDioOption()
	harvest := v.NewHarvestOption()
	ct := v.NewCheapTrickOption(s.fs)
	d4c := v.NewD4COption()

	if !math.IsNaN(s.framePeriod) {
		dio.FramePeriod = s.framePeriod
		harvest.FramePeriod = s.framePeriod
	}
	if !math.IsNaN(s.f0Floor) {
		ct.F0Floor = s.f0Floor
	}

	fftSize := v.CheapTrickFFTSize(s.fs, ct)
	dioFrames := v.SamplesForDio(s.fs, s.samples, dio.FramePeriod)
	harvestFrames := v.SamplesForHarvest(s.fs, s.samples, harvest.FramePeriod)
	shape := world.FrameShape{Frames: dioFrames, FFTSize: fftSize}

	rows := [][2]string{
		{"backend", v.Backend()},
		{"sample rate [Hz]", fmt.Sprint(s.fs)},
		{"samples", fmt.Sprint(s.samples)},
		{"", ""},
		{"dio f0 floor [Hz]", fmt.Sprintf("%.2f", dio.F0Floor)},
		{"dio f0 ceil [Hz]", fmt.Sprintf("%.2f", dio.F0Ceil)},
		{"dio channels in octave", fmt.Sprintf("%.2f", dio.ChannelsInOctave)},
		{"dio frame period [ms]", fmt.Sprintf("%.2f", dio.FramePeriod)},
		{"dio speed", fmt.Sprint(dio.Speed)},
		{"dio allowed range", fmt.Sprintf("%.3f", dio.AllowedRange)},
		{"harvest f0 floor [Hz]", fmt.Sprintf("%.2f", harvest.F0Floor)},
		{"harvest f0 ceil [Hz]", fmt.Sprintf("%.2f", harvest.F0Ceil)},
		{"harvest frame period [ms]", fmt.Sprintf("%.2f", harvest.FramePeriod)},
		{"cheaptrick q1", fmt.Sprintf("%.2f", ct.Q1)},
		{"cheaptrick f0 floor [Hz]", fmt.Sprintf("%.2f", ct.F0Floor)},
		{"d4c threshold", fmt.Sprintf("%.2f", d4c.Threshold)},
		{"", ""},
		{"dio frames", fmt.Sprint(dioFrames)},
		{"harvest frames", fmt.Sprint(harvestFrames)},
		{"fft size", fmt.Sprint(fftSize)},
		{"bins", fmt.Sprint(shape.Bins())},
		{"lowest f0 for fft size [Hz]", fmt.Sprintf("%.2f", v.CheapTrickF0Floor(s.fs, fftSize))},
		{"coded aperiodicities", fmt.Sprint(v.NumberOfAperiodicities(s.fs))},
		{"coded envelope dims", dimsLabel(s.dims, fftSize)},
		{"synthesis samples", fmt.Sprint(world.SynthesisLength(dioFrames, dio.FramePeriod, s.fs))},
	}

	for _, r := range rows {
		if r[0] == "" {
			if _, err := fmt.Fprintln(tw); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func dimsLabel(dims, fftSize int) string {
	if dims < 1 || dims > fftSize/2 {
		return fmt.Sprintf("%d (out of range [1, %d])", dims, fftSize/2)
	}
	return fmt.Sprint(dims)
}
