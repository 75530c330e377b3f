package binding

// DioOption mirrors the native DioOption struct.
//
//	typedef struct {
//	  double f0_floor;
//	  double f0_ceil;
//	  double channels_in_octave;
//	  double frame_period;  // msec
//	  int speed;            // (1, 2, ..., 12)
//	  double allowed_range; // threshold used for fixing the F0 contour
//	} DioOption;
type DioOption struct {
	F0Floor          float64
	F0Ceil           float64
	ChannelsInOctave float64
	FramePeriod      float64
	Speed            int32
	AllowedRange     float64
}

// HarvestOption mirrors the native HarvestOption struct.
type HarvestOption struct {
	F0Floor     float64
	F0Ceil      float64
	FramePeriod float64
}

// CheapTrickOption mirrors the native CheapTrickOption struct.
//
// FFTSize is derived from the sample rate and F0Floor. It is written by
// Backend.InitializeCheapTrickOption and must be refreshed through
// Backend.GetFFTSizeForCheapTrick whenever F0Floor changes.
type CheapTrickOption struct {
	Q1      float64
	F0Floor float64
	FFTSize int32
}

// D4COption mirrors the native D4COption struct.
type D4COption struct {
	Threshold float64
}
