package binding

// Backend is the contract of a WORLD numerical backend.
//
// Parameter order follows the native routines. Slices stand in for the
// native pointer plus length pairs: x is the waveform, temporalPositions and
// f0 are parallel per-frame slices, and matrices are passed as row views of
// frame-count rows. Output buffers are pre-allocated by the caller and
// written in place. No method reports errors; a mis-shaped call is undefined
// behaviour.
//
// Implementations must be safe for concurrent use on disjoint buffers.
type Backend interface {
	// Name identifies the implementation, e.g. "goworld" or "cworld".
	Name() string

	InitializeDioOption(option *DioOption)
	GetSamplesForDIO(fs, xLength int, framePeriod float64) int
	Dio(x []float64, fs int, option *DioOption, temporalPositions, f0 []float64)

	InitializeHarvestOption(option *HarvestOption)
	GetSamplesForHarvest(fs, xLength int, framePeriod float64) int
	Harvest(x []float64, fs int, option *HarvestOption, temporalPositions, f0 []float64)

	StoneMask(x []float64, fs int, temporalPositions, f0, refinedF0 []float64)

	InitializeCheapTrickOption(fs int, option *CheapTrickOption)
	GetFFTSizeForCheapTrick(fs int, option *CheapTrickOption) int
	GetF0FloorForCheapTrick(fs, fftSize int) float64
	CheapTrick(x []float64, fs int, temporalPositions, f0 []float64, option *CheapTrickOption, spectrogram [][]float64)

	InitializeD4COption(option *D4COption)
	D4C(x []float64, fs int, temporalPositions, f0 []float64, fftSize int, option *D4COption, aperiodicity [][]float64)

	GetNumberOfAperiodicities(fs int) int
	CodeAperiodicity(aperiodicity [][]float64, f0Length, fs, fftSize int, codedAperiodicity [][]float64)
	DecodeAperiodicity(codedAperiodicity [][]float64, f0Length, fs, fftSize int, aperiodicity [][]float64)
	CodeSpectralEnvelope(spectrogram [][]float64, f0Length, fs, fftSize, numberOfDimensions int, codedSpectralEnvelope [][]float64)
	DecodeSpectralEnvelope(codedSpectralEnvelope [][]float64, f0Length, fs, fftSize, numberOfDimensions int, spectrogram [][]float64)

	Synthesis(f0 []float64, spectrogram, aperiodicity [][]float64, fftSize int, framePeriod float64, fs int, y []float64)
}
