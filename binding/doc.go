// Package binding declares the calling contract of the WORLD vocoder
// routines: the configuration records with their native field layout and the
// [Backend] interface listing every routine in native parameter order.
//
// Nothing in this package validates shapes or values. A Backend trusts the
// buffers it is handed; supplying a temporal-position slice that is shorter
// than the f0 slice, or a matrix whose rows are shorter than fftSize/2+1, is
// undefined behaviour in the native implementation. Package world is the
// layer that derives every shape and makes such calls unreachable.
//
// # Configuration records
//
// Each record mirrors its C struct field for field (double → float64,
// int → int32), so a record can be handed to the native library by copying
// fields or by reinterpreting memory. Records are only meaningful after the
// backend's Initialize* routine has populated them; the defaults belong to the
// backend and are not duplicated here.
package binding
