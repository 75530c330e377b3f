package goworld

import (
	"math"

	"github.com/cwbudde/algo-world/binding"
)

const (
	// dioVoicingThreshold is the minimum normalised autocorrelation of the
	// winning candidate for a frame to be voiced.
	dioVoicingThreshold = 0.5

	// dioCandidateRatio keeps candidates within this fraction of the best
	// score; the shortest surviving lag wins, which avoids subharmonics.
	dioCandidateRatio = 0.9

	maxDioSpeed = 12
)

// lagBand is an inclusive range of autocorrelation lags.
type lagBand struct {
	lo, hi int
}

// Dio estimates f0 with a band-split normalised autocorrelation search.
// temporalPositions and f0 must hold GetSamplesForDIO frames.
func (Backend) Dio(x []float64, fs int, option *binding.DioOption, temporalPositions, f0 []float64) {
	for i := range f0 {
		temporalPositions[i] = float64(i) * option.FramePeriod / 1000.0
		f0[i] = 0
	}

	if !(option.F0Floor > 0) || !(option.F0Ceil > option.F0Floor) {
		return
	}

	speed := int(option.Speed)
	speed = max(1, min(maxDioSpeed, speed))

	xd := decimate(x, speed)
	fsd := float64(fs) / float64(speed)

	minLag := max(2, int(math.Floor(fsd/option.F0Ceil)))
	maxLag := int(math.Ceil(fsd / option.F0Floor))
	if maxLag <= minLag {
		return
	}

	w := maxLag
	buf := make([]float64, w+maxLag+2)
	scores := make([]float64, maxLag+2)
	bands := dioBands(minLag, maxLag, option.ChannelsInOctave)

	for i := range f0 {
		center := int(math.Round(temporalPositions[i] * fsd))
		segment(buf, xd, center-(w+maxLag)/2)
		f0[i] = dioFrame(buf, w, minLag, maxLag, bands, scores, fsd, option)
	}

	fixDioContour(f0, option.AllowedRange)
}

// decimate averages blocks of factor samples.
func decimate(x []float64, factor int) []float64 {
	if factor <= 1 {
		return x
	}

	out := make([]float64, (len(x)+factor-1)/factor)
	for i := range out {
		start := i * factor
		end := min(start+factor, len(x))
		var sum float64
		for _, v := range x[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// dioBands splits [minLag, maxLag] into channelsInOctave bands per octave,
// starting from the longest lag.
func dioBands(minLag, maxLag int, channelsInOctave float64) []lagBand {
	if !(channelsInOctave >= 1) {
		channelsInOctave = 1
	}
	ratio := math.Pow(2, 1/channelsInOctave)

	var bands []lagBand
	for hi := maxLag; hi >= minLag; {
		lo := max(minLag, int(math.Ceil(float64(hi)/ratio)))
		bands = append(bands, lagBand{lo: lo, hi: hi})
		hi = lo - 1
	}
	return bands
}

func dioFrame(buf []float64, w, minLag, maxLag int, bands []lagBand, scores []float64,
	fsd float64, option *binding.DioOption,
) float64 {
	if silent(buf) {
		return 0
	}

	for lag := minLag - 1; lag <= maxLag+1; lag++ {
		scores[lag] = nacf(buf, w, lag)
	}

	// Best local maximum per band.
	candidates := make([]int, 0, len(bands))
	best := 0.0
	for _, band := range bands {
		pick := -1
		for lag := band.lo; lag <= band.hi; lag++ {
			if scores[lag] < scores[lag-1] || scores[lag] < scores[lag+1] {
				continue
			}
			if pick < 0 || scores[lag] > scores[pick] {
				pick = lag
			}
		}
		if pick < 0 {
			continue
		}
		candidates = append(candidates, pick)
		best = math.Max(best, scores[pick])
	}

	if best < dioVoicingThreshold {
		return 0
	}

	lag := -1
	for _, c := range candidates {
		if scores[c] >= dioCandidateRatio*best && (lag < 0 || c < lag) {
			lag = c
		}
	}

	period := float64(lag) + parabolicOffset(scores[lag-1], scores[lag], scores[lag+1])
	f := fsd / period
	if f < option.F0Floor || f > option.F0Ceil {
		return 0
	}
	return f
}

// fixDioContour removes voiced frames that disagree with both neighbours by
// more than allowedRange, and voiced frames isolated between unvoiced ones.
func fixDioContour(f0 []float64, allowedRange float64) {
	if len(f0) < 3 {
		return
	}

	fixed := make([]float64, len(f0))
	copy(fixed, f0)

	for i := 1; i < len(f0)-1; i++ {
		cur, prev, next := f0[i], f0[i-1], f0[i+1]
		if cur == 0 {
			continue
		}
		if prev == 0 && next == 0 {
			fixed[i] = 0
			continue
		}
		if !(allowedRange > 0) || prev == 0 || next == 0 {
			continue
		}
		if math.Abs(cur-prev)/prev > allowedRange && math.Abs(cur-next)/next > allowedRange {
			fixed[i] = 0
		}
	}

	copy(f0, fixed)
}
