package goworld

import "math"

const (
	melLowFrequency = 40.0

	// unvoicedCodedMean is the mean coded value above which a decoded frame
	// is treated as unvoiced.
	unvoicedCodedMean = -0.5
)

// CodeAperiodicity samples each row at the band centres 3, 6, ... kHz and
// stores the values in dB. coded rows hold GetNumberOfAperiodicities(fs)
// values.
func (b Backend) CodeAperiodicity(aperiodicity [][]float64, f0Length, fs, fftSize int, coded [][]float64) {
	bands := b.GetNumberOfAperiodicities(fs)
	axis := frequencyAxis(fs, fftSize)
	centers := bandCenters(bands)
	values := make([]float64, bands)

	for i := range f0Length {
		interp1(axis, aperiodicity[i], centers, values)
		for j, v := range values {
			coded[i][j] = 20 * math.Log10(v)
		}
	}
}

// DecodeAperiodicity expands coded band values back to fftSize/2+1 bins.
// Rows whose mean is above -0.5 dB decode to the unvoiced value 1-1e-12.
func (b Backend) DecodeAperiodicity(coded [][]float64, f0Length, fs, fftSize int, aperiodicity [][]float64) {
	bands := b.GetNumberOfAperiodicities(fs)
	axis := frequencyAxis(fs, fftSize)

	coarseAxis := make([]float64, bands+2)
	copy(coarseAxis[1:], bandCenters(bands))
	coarseAxis[bands+1] = float64(fs) / 2
	coarse := make([]float64, bands+2)

	for i := range f0Length {
		row := aperiodicity[i]
		if bands == 0 || mean(coded[i][:bands]) > unvoicedCodedMean {
			for k := range row {
				row[k] = unvoicedAperiodicity
			}
			continue
		}

		coarse[0] = floorCodedDB
		copy(coarse[1:], coded[i][:bands])
		coarse[bands+1] = -safeGuardMinimum

		interp1(coarseAxis, coarse, axis, row)
		for k := range row {
			row[k] = math.Pow(10, row[k]/20)
		}
	}
}

func bandCenters(bands int) []float64 {
	centers := make([]float64, bands)
	for j := range centers {
		centers[j] = frequencyInterval * float64(j+1)
	}
	return centers
}

func mean(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// melScale holds the mel-spaced frequencies and DCT basis shared by the
// envelope coder and decoder.
type melScale struct {
	frequencies []float64
	basis       [][]float64
}

// newMelScale builds fftSize/2 mel-spaced points from 40 Hz to Nyquist and
// the first dims rows of the orthonormal DCT-II over them.
func newMelScale(fs, fftSize, dims int) *melScale {
	points := fftSize / 2
	lo := hzToMel(melLowFrequency)
	hi := hzToMel(float64(fs) / 2)

	step := 0.0
	if points > 1 {
		step = (hi - lo) / float64(points-1)
	}
	frequencies := make([]float64, points)
	for n := range frequencies {
		frequencies[n] = melToHz(lo + float64(n)*step)
	}

	basis := make([][]float64, dims)
	for d := range basis {
		scale := math.Sqrt(2 / float64(points))
		if d == 0 {
			scale = math.Sqrt(1 / float64(points))
		}
		row := make([]float64, points)
		for n := range row {
			row[n] = scale * math.Cos(math.Pi*(float64(n)+0.5)*float64(d)/float64(points))
		}
		basis[d] = row
	}

	return &melScale{frequencies: frequencies, basis: basis}
}

func hzToMel(f float64) float64 {
	return 1127.01048 * math.Log(1+f/700)
}

func melToHz(m float64) float64 {
	return 700 * (math.Exp(m/1127.01048) - 1)
}

// CodeSpectralEnvelope reduces each row to numberOfDimensions mel-cepstral
// coefficients: the log envelope is resampled on a mel axis and projected
// onto the leading DCT-II basis vectors.
func (Backend) CodeSpectralEnvelope(spectrogram [][]float64, f0Length, fs, fftSize, numberOfDimensions int, coded [][]float64) {
	mel := newMelScale(fs, fftSize, numberOfDimensions)
	axis := frequencyAxis(fs, fftSize)

	logEnvelope := make([]float64, len(axis))
	sampled := make([]float64, len(mel.frequencies))

	for i := range f0Length {
		for k, v := range spectrogram[i] {
			logEnvelope[k] = math.Log(v + safeGuardMinimum)
		}
		interp1(axis, logEnvelope, mel.frequencies, sampled)
		for d, basis := range mel.basis {
			coded[i][d] = dot(basis, sampled)
		}
	}
}

// DecodeSpectralEnvelope inverts CodeSpectralEnvelope with the truncated
// DCT-III and maps the mel axis back onto fftSize/2+1 bins.
func (Backend) DecodeSpectralEnvelope(coded [][]float64, f0Length, fs, fftSize, numberOfDimensions int, spectrogram [][]float64) {
	mel := newMelScale(fs, fftSize, numberOfDimensions)
	axis := frequencyAxis(fs, fftSize)

	sampled := make([]float64, len(mel.frequencies))

	for i := range f0Length {
		clear(sampled)
		for d, basis := range mel.basis {
			c := coded[i][d]
			for n := range sampled {
				sampled[n] += c * basis[n]
			}
		}

		row := spectrogram[i]
		interp1(mel.frequencies, sampled, axis, row)
		for k := range row {
			row[k] = math.Exp(row[k]) - safeGuardMinimum
			if row[k] < 0 {
				row[k] = 0
			}
		}
	}
}
