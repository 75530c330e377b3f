// Package world is a shape-safe pipeline over a WORLD vocoder backend:
// f0 estimation (Dio, Harvest), f0 refinement (StoneMask), spectral envelope
// (CheapTrick), aperiodicity (D4C), compact coding of both, and synthesis.
//
// Every stage allocates its own outputs. Frame counts come from the
// backend's shape queries and bin counts from the resolved FFT size, never
// from the caller, and every input matrix is checked against the shape it
// must have before the backend sees it. Mismatches are reported as
// *ShapeError, which matches ErrShapeMismatch under errors.Is.
//
// Option records are created by the New*Option factories, which populate
// them from the backend's defaults; after that, fields may be overridden by
// plain assignment and are passed through unchecked. A zero-value record is
// rejected with ErrUninitializedOption.
//
// The backend is pure Go by default. Building with the cgo_world tag links
// the native WORLD library instead.
//
// A typical round trip:
//
//	p, err := world.Analyze(ctx, x, fs, world.AnalysisConfig{})
//	...
//	y, err := world.Resynthesize(ctx, p)
package world
