package goworld

import (
	"testing"

	"github.com/cwbudde/algo-world/internal/testutil"
)

func TestSynthesis(t *testing.T) {
	tests := []struct {
		name    string
		f0      []float64
		fftSize int
		ap      float64
		length  int
	}{
		{"unvoiced", []float64{0, 0}, 2048, unvoicedAperiodicity, 441},
		{"voiced", []float64{200, 200, 210, 220, 0, 0, 180, 180, 180, 180}, 2048, 0.01, 2205},
		{"non power of two", []float64{150, 150, 150}, 1200, 0.1, 661},
		{"sub-hertz f0", []float64{1e-9, 1e-9}, 2048, 0.01, 441},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := tt.fftSize/2 + 1
			sp := testutil.Rows(len(tt.f0), bins, 1e-3)
			ap := testutil.Rows(len(tt.f0), bins, tt.ap)
			y := make([]float64, tt.length)

			New().Synthesis(tt.f0, sp, ap, tt.fftSize, 5, 44100, y)

			testutil.RequireFinite(t, y)
			if energy(y) == 0 {
				t.Fatal("synthesised signal is silent")
			}
		})
	}
}

func TestSynthesisIsDeterministic(t *testing.T) {
	f0 := []float64{120, 125, 0, 130}
	sp := testutil.Rows(len(f0), 513, 1e-2)
	ap := testutil.Rows(len(f0), 513, 0.2)

	a := make([]float64, 320)
	b := make([]float64, 320)
	New().Synthesis(f0, sp, ap, 1024, 5, 16000, a)
	New().Synthesis(f0, sp, ap, 1024, 5, 16000, b)

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestSynthesisOverwritesOutput(t *testing.T) {
	f0 := []float64{0}
	sp := testutil.Rows(1, 513, 0)
	ap := testutil.Rows(1, 513, unvoicedAperiodicity)

	y := testutil.Rows(1, 80, 5)[0]
	New().Synthesis(f0, sp, ap, 1024, 5, 16000, y)

	for i, v := range y {
		if v > 1e-6 || v < -1e-6 {
			t.Fatalf("y[%d] = %v, want near zero for a zero envelope", i, v)
		}
	}
}

func TestPulseF0(t *testing.T) {
	f0 := []float64{100, 200, 0, 300}

	tests := []struct {
		frame   float64
		want    float64
		nearest int
	}{
		{0, 100, 0},
		{0.5, 150, 1},
		{1.4, 200, 1},
		{2.6, 300, 3},
		{10, 300, 3},
	}

	for _, tt := range tests {
		got, nearest := pulseF0(f0, tt.frame)
		if got != tt.want || nearest != tt.nearest {
			t.Fatalf("pulseF0(%v) = (%v, %d), want (%v, %d)", tt.frame, got, nearest, tt.want, tt.nearest)
		}
	}
}
