package goworld

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-world/binding"
	"github.com/cwbudde/algo-world/internal/testutil"
)

func dioOption(t *testing.T) *binding.DioOption {
	t.Helper()
	var opt binding.DioOption
	New().InitializeDioOption(&opt)
	return &opt
}

func harvestOption(t *testing.T) *binding.HarvestOption {
	t.Helper()
	var opt binding.HarvestOption
	New().InitializeHarvestOption(&opt)
	return &opt
}

func TestPitchOnSilence(t *testing.T) {
	const fs = 44100
	x := testutil.Silence(256)
	b := New()

	run := map[string]func(tp, f0 []float64){
		"dio": func(tp, f0 []float64) { b.Dio(x, fs, dioOption(t), tp, f0) },
		"harvest": func(tp, f0 []float64) {
			b.Harvest(x, fs, harvestOption(t), tp, f0)
		},
	}

	for name, analyze := range run {
		t.Run(name, func(t *testing.T) {
			frames := b.GetSamplesForDIO(fs, len(x), 5)
			tp := make([]float64, frames)
			f0 := make([]float64, frames)
			analyze(tp, f0)

			testutil.RequireSliceNearlyEqual(t, tp, []float64{0, 0.005}, 1e-15)
			testutil.RequireSliceNearlyEqual(t, f0, []float64{0, 0}, 0)
		})
	}
}

func TestPitchOnSine(t *testing.T) {
	const (
		fs   = 16000
		freq = 200.0
	)
	x := testutil.DeterministicSine(freq, fs, 0.5, fs/2)
	b := New()

	tests := []struct {
		name    string
		analyze func(tp, f0 []float64)
	}{
		{"dio", func(tp, f0 []float64) { b.Dio(x, fs, dioOption(t), tp, f0) }},
		{"harvest", func(tp, f0 []float64) { b.Harvest(x, fs, harvestOption(t), tp, f0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := b.GetSamplesForHarvest(fs, len(x), 5)
			tp := make([]float64, frames)
			f0 := make([]float64, frames)
			tt.analyze(tp, f0)

			median, voiced := testutil.MedianVoiced(f0)
			if voiced < frames/2 {
				t.Fatalf("only %d of %d frames voiced", voiced, frames)
			}
			if math.Abs(median-freq) > 0.02*freq {
				t.Fatalf("median f0 = %v, want %v", median, freq)
			}
			for i, v := range f0 {
				if v != 0 && (v < 71 || v > 800) {
					t.Fatalf("f0[%d] = %v outside [71, 800]", i, v)
				}
			}
		})
	}
}

func TestDioSpeedKeepsFrameGrid(t *testing.T) {
	const fs = 16000
	x := testutil.DeterministicSine(200, fs, 0.5, fs/2)
	opt := dioOption(t)
	opt.Speed = 4

	b := New()
	frames := b.GetSamplesForDIO(fs, len(x), opt.FramePeriod)
	tp := make([]float64, frames)
	f0 := make([]float64, frames)
	b.Dio(x, fs, opt, tp, f0)

	for i, v := range tp {
		if math.Abs(v-float64(i)*0.005) > 1e-12 {
			t.Fatalf("tp[%d] = %v, want %v", i, v, float64(i)*0.005)
		}
	}
	median, _ := testutil.MedianVoiced(f0)
	if math.Abs(median-200) > 0.05*200 {
		t.Fatalf("median f0 = %v, want about 200", median)
	}
}

func TestPitchWithInvalidRangeIsUnvoiced(t *testing.T) {
	const fs = 16000
	x := testutil.DeterministicSine(200, fs, 0.5, 1600)

	opt := dioOption(t)
	opt.F0Ceil = opt.F0Floor

	b := New()
	frames := b.GetSamplesForDIO(fs, len(x), opt.FramePeriod)
	tp := make([]float64, frames)
	f0 := make([]float64, frames)
	b.Dio(x, fs, opt, tp, f0)

	for i, v := range f0 {
		if v != 0 {
			t.Fatalf("f0[%d] = %v, want 0", i, v)
		}
	}
}

func TestStoneMask(t *testing.T) {
	const fs = 16000
	x := testutil.DeterministicSine(200, fs, 0.5, fs/2)

	tp := []float64{0.1, 0.2, 0.25, 0.3}
	f0 := []float64{195, 0, 204, 0}
	refined := make([]float64, len(f0))
	New().StoneMask(x, fs, tp, f0, refined)

	for i := range f0 {
		if f0[i] == 0 {
			if refined[i] != 0 {
				t.Fatalf("refined[%d] = %v, want unvoiced 0", i, refined[i])
			}
			continue
		}
		if math.Abs(refined[i]-200) > 2 {
			t.Fatalf("refined[%d] = %v, want about 200", i, refined[i])
		}
	}
}

func TestStoneMaskOnSilenceKeepsEstimate(t *testing.T) {
	x := testutil.Silence(1600)
	f0 := []float64{150}
	refined := make([]float64, 1)
	New().StoneMask(x, 16000, []float64{0.05}, f0, refined)

	if refined[0] != 150 {
		t.Fatalf("refined = %v, want 150", refined[0])
	}
}

func TestStoneMaskKeepsUnresolvableF0(t *testing.T) {
	const fs = 16000
	x := testutil.DeterministicSine(200, fs, 0.5, fs/2)

	f0 := []float64{1e-9, 1e-3, 2, math.Inf(1)}
	tp := []float64{0.1, 0.2, 0.25, 0.3}
	refined := make([]float64, len(f0))
	New().StoneMask(x, fs, tp, f0, refined)

	for i := range f0 {
		if refined[i] != f0[i] {
			t.Fatalf("refined[%d] = %v, want %v unchanged", i, refined[i], f0[i])
		}
	}
}
