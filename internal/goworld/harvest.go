package goworld

import (
	"math"

	"github.com/cwbudde/algo-world/binding"
)

// harvestThreshold is the YIN absolute threshold on the cumulative mean
// normalised difference.
const harvestThreshold = 0.15

// Harvest estimates f0 with the YIN difference function on the full-rate
// signal. temporalPositions and f0 must hold GetSamplesForHarvest frames.
func (Backend) Harvest(x []float64, fs int, option *binding.HarvestOption, temporalPositions, f0 []float64) {
	for i := range f0 {
		temporalPositions[i] = float64(i) * option.FramePeriod / 1000.0
		f0[i] = 0
	}

	if !(option.F0Floor > 0) || !(option.F0Ceil > option.F0Floor) {
		return
	}

	fsf := float64(fs)
	minLag := max(2, int(math.Floor(fsf/option.F0Ceil)))
	maxLag := int(math.Ceil(fsf / option.F0Floor))
	if maxLag <= minLag {
		return
	}

	w := maxLag
	buf := make([]float64, w+maxLag+2)
	diff := make([]float64, maxLag+2)

	for i := range f0 {
		center := int(math.Round(temporalPositions[i] * fsf))
		segment(buf, x, center-(w+maxLag)/2)

		f := yinFrame(buf, w, minLag, maxLag, diff, fsf)
		if f < option.F0Floor || f > option.F0Ceil {
			f = 0
		}
		f0[i] = f
	}
}

// yinFrame returns the f0 of one analysis buffer, or 0 when no lag passes
// the threshold.
func yinFrame(buf []float64, w, minLag, maxLag int, diff []float64, fs float64) float64 {
	if silent(buf) {
		return 0
	}

	diff[0] = 1
	var running float64
	for tau := 1; tau <= maxLag+1; tau++ {
		var d float64
		for n := range w {
			delta := buf[n] - buf[n+tau]
			d += delta * delta
		}
		running += d
		if running > 0 {
			diff[tau] = d * float64(tau) / running
		} else {
			diff[tau] = 1
		}
	}

	best := -1
	for tau := minLag; tau <= maxLag; tau++ {
		if diff[tau] >= harvestThreshold {
			continue
		}
		for tau < maxLag && diff[tau+1] < diff[tau] {
			tau++
		}
		best = tau
		break
	}
	if best < 0 {
		return 0
	}

	period := float64(best) + parabolicOffset(diff[best-1], diff[best], diff[best+1])
	return fs / period
}
