package goworld

import "math"

// stoneMaskRange bounds both the lag search and the accepted correction,
// relative to the coarse estimate.
const stoneMaskRange = 0.1

// StoneMask refines each voiced f0 by climbing to the nearest
// autocorrelation peak around the coarse period. Values that are not
// positive, including the unvoiced 0, are copied unchanged.
func (Backend) StoneMask(x []float64, fs int, temporalPositions, f0, refinedF0 []float64) {
	fsf := float64(fs)
	for i := range f0 {
		if !(f0[i] > 0) {
			refinedF0[i] = f0[i]
			continue
		}
		refinedF0[i] = refineF0(x, fsf, temporalPositions[i], f0[i])
	}
}

func refineF0(x []float64, fs, t, f0 float64) float64 {
	period := fs / f0
	if !(period*(1+stoneMaskRange) < float64(len(x))) {
		return f0
	}
	lag0 := int(math.Round(period))
	lo := max(1, int(math.Floor(period*(1-stoneMaskRange))))
	hi := int(math.Ceil(period * (1 + stoneMaskRange)))
	if lag0 < 2 || hi <= lo {
		return f0
	}

	w := 3 * lag0
	buf := make([]float64, w+hi+2)
	segment(buf, x, int(math.Round(t*fs))-(w+hi)/2)
	if silent(buf) {
		return f0
	}

	score := func(lag int) float64 { return nacf(buf, w, lag) }

	best := lag0
	for best-1 >= lo && score(best-1) > score(best) {
		best--
	}
	for best+1 <= hi && score(best+1) > score(best) {
		best++
	}

	period = float64(best) + parabolicOffset(score(best-1), score(best), score(best+1))
	refined := fs / period
	if math.IsNaN(refined) || math.Abs(refined-f0) > stoneMaskRange*f0 {
		return f0
	}
	return refined
}
