package world

import (
	"fmt"

	"github.com/cwbudde/algo-world/binding"
)

// DioOption configures Dio. Obtain one from NewDioOption, then override
// fields by assignment. Overrides are not validated.
type DioOption struct {
	binding.DioOption
	populated bool
}

// HarvestOption configures Harvest. Obtain one from NewHarvestOption.
type HarvestOption struct {
	binding.HarvestOption
	populated bool
}

// CheapTrickOption configures CheapTrick. Obtain one from
// NewCheapTrickOption. FFTSize is re-resolved from F0Floor on every
// CheapTrick call, so overriding it directly has no effect.
type CheapTrickOption struct {
	binding.CheapTrickOption
	populated bool
}

// D4COption configures D4C. Obtain one from NewD4COption.
type D4COption struct {
	binding.D4COption
	populated bool
}

// NewDioOption returns Dio defaults from the vocoder's backend.
func (v *Vocoder) NewDioOption() DioOption {
	var opt DioOption
	v.backend.InitializeDioOption(&opt.DioOption)
	opt.populated = true
	return opt
}

// NewHarvestOption returns Harvest defaults from the vocoder's backend.
func (v *Vocoder) NewHarvestOption() HarvestOption {
	var opt HarvestOption
	v.backend.InitializeHarvestOption(&opt.HarvestOption)
	opt.populated = true
	return opt
}

// NewCheapTrickOption returns CheapTrick defaults for fs from the vocoder's
// backend, including the FFT size derived from fs.
func (v *Vocoder) NewCheapTrickOption(fs int) CheapTrickOption {
	var opt CheapTrickOption
	v.backend.InitializeCheapTrickOption(fs, &opt.CheapTrickOption)
	opt.populated = true
	return opt
}

// NewD4COption returns D4C defaults from the vocoder's backend.
func (v *Vocoder) NewD4COption() D4COption {
	var opt D4COption
	v.backend.InitializeD4COption(&opt.D4COption)
	opt.populated = true
	return opt
}

func requirePopulated(op, name string, populated bool) error {
	if !populated {
		return fmt.Errorf("%s: %w: %s", op, ErrUninitializedOption, name)
	}
	return nil
}
