//go:build cgo_world

package world

import (
	"github.com/cwbudde/algo-world/binding"
	"github.com/cwbudde/algo-world/internal/cworld"
)

func defaultBackend() binding.Backend {
	return cworld.New()
}
