// Package cworld implements the binding.Backend contract on top of the
// native WORLD library through cgo.
//
// The package only builds with the cgo_world tag and needs the WORLD headers
// (<world/dio.h> and friends) and libworld on the compiler search paths:
//
//	CGO_CFLAGS=-I/opt/world/include CGO_LDFLAGS=-L/opt/world/lib \
//	    go test -tags cgo_world ./...
//
// Tables cross the boundary as arrays of row pointers. Each row stays in Go
// memory, pinned for the duration of the call; the pointer array itself is
// built per call and never retained.
package cworld
