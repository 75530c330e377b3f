package goworld

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-world/binding"
)

const (
	loveTrainLow  = 100.0
	loveTrainMid  = 4000.0
	loveTrainHigh = 7900.0

	// d4cPeriods is the analysis window length in pitch periods.
	d4cPeriods = 8.0

	minAperiodicity = 0.001
	floorCodedDB    = -60.0
)

// D4C estimates band aperiodicity for every frame. Rows whose f0 is not
// positive, or which the LoveTrain voicing check rejects, are filled with
// the unvoiced value 1-1e-12. Each row must hold fftSize/2+1 bins.
func (b Backend) D4C(x []float64, fs int, temporalPositions, f0 []float64, fftSize int, option *binding.D4COption, aperiodicity [][]float64) {
	for i := range aperiodicity {
		row := aperiodicity[i]
		for k := range row {
			row[k] = unvoicedAperiodicity
		}
	}

	size := nextPowerOf2(int(d4cPeriods*float64(fs)/floorF0) + 1)
	d := &d4c{
		fs:     float64(fs),
		ws:     newFFTWorkspace(size),
		axis:   frequencyAxis(fs, size),
		power:  make([]float64, size/2+1),
		bands:  b.GetNumberOfAperiodicities(fs),
		target: frequencyAxis(fs, fftSize),
	}

	for i := range f0 {
		if !(f0[i] > 0) {
			continue
		}
		d.analyze(x, temporalPositions[i], f0[i])
		if d.loveTrain() <= option.Threshold {
			continue
		}
		d.bandAperiodicity(f0[i], aperiodicity[i])
	}
}

type d4c struct {
	fs     float64
	ws     *fftWorkspace
	axis   []float64
	power  []float64
	bands  int
	target []float64
}

// analyze leaves the power spectrum of an eight-period Hann-windowed frame
// around t in d.power.
func (d *d4c) analyze(x []float64, t, f0 float64) {
	length := min(d.ws.size, int(math.Round(d4cPeriods*d.fs/f0)))
	window := hannWindow(length)

	frame := make([]float64, length)
	segment(frame, x, int(math.Round(t*d.fs))-length/2)
	vecmath.MulBlockInPlace(frame, window)

	d.ws.powerSpectrum(d.power, frame)
}

// loveTrain returns the share of 100 Hz..7.9 kHz power that lies below
// 4 kHz. Voiced frames concentrate their energy low.
func (d *d4c) loveTrain() float64 {
	nyquist := d.fs / 2
	var low, total float64
	for k, f := range d.axis {
		if f < loveTrainLow || f > math.Min(loveTrainHigh, nyquist) {
			continue
		}
		total += d.power[k]
		if f <= loveTrainMid {
			low += d.power[k]
		}
	}
	if total <= 0 {
		return 0
	}
	return low / total
}

// bandAperiodicity measures the inter-harmonic power share in each 3 kHz
// band and interpolates the band values, in dB, onto row.
func (d *d4c) bandAperiodicity(f0 float64, row []float64) {
	coarseAxis := make([]float64, d.bands+2)
	coarse := make([]float64, d.bands+2)
	coarse[0] = floorCodedDB
	for j := range d.bands {
		center := frequencyInterval * float64(j+1)
		coarseAxis[j+1] = center
		coarse[j+1] = 20 * math.Log10(d.bandValue(f0, center))
	}
	coarseAxis[d.bands+1] = d.fs / 2
	coarse[d.bands+1] = -safeGuardMinimum

	interp1(coarseAxis, coarse, d.target, row)
	for k := range row {
		row[k] = math.Pow(10, row[k]/20)
	}
}

func (d *d4c) bandValue(f0, center float64) float64 {
	lo := center - frequencyInterval/2
	hi := center + frequencyInterval/2
	var valley, total float64
	for k, f := range d.axis {
		if f < lo || f > hi {
			continue
		}
		total += d.power[k]
		nearest := math.Round(f/f0) * f0
		if math.Abs(f-nearest) > f0/4 {
			valley += d.power[k]
		}
	}
	if !(total > 0) {
		return unvoicedAperiodicity
	}
	return math.Max(minAperiodicity, math.Min(unvoicedAperiodicity, math.Sqrt(valley/total)))
}
