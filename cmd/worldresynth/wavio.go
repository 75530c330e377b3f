package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// pcm is a decoded WAV file as planar float channels in [-1, 1].
type pcm struct {
	sampleRate int
	bitDepth   int
	channels   [][]float64
}

var errNotWAV = errors.New("not a valid WAV file")

func readWAV(path string) (*pcm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, errNotWAV)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%s: no channels", path)
	}

	bitDepth := int(dec.BitDepth)
	return &pcm{
		sampleRate: buf.Format.SampleRate,
		bitDepth:   bitDepth,
		channels:   deinterleave(buf.Data, buf.Format.NumChannels, fullScale(bitDepth), pcmOffset(bitDepth)),
	}, nil
}

func writeWAV(path string, p *pcm) error {
	if len(p.channels) == 0 {
		return errors.New("no channels to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, p.sampleRate, p.bitDepth, len(p.channels), 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(p.channels), SampleRate: p.sampleRate},
		Data:           interleave(p.channels, fullScale(p.bitDepth), pcmOffset(p.bitDepth)),
		SourceBitDepth: p.bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fullScale(bitDepth int) float64 {
	if bitDepth < 2 {
		bitDepth = 16
	}
	return float64(int64(1) << (bitDepth - 1))
}

// pcmOffset returns the zero level of the stored samples. 8-bit WAV is
// unsigned and centred on 128.
func pcmOffset(bitDepth int) int {
	if bitDepth == 8 {
		return 128
	}
	return 0
}

func deinterleave(data []int, numChannels int, scale float64, offset int) [][]float64 {
	frames := len(data) / numChannels
	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = make([]float64, frames)
	}
	for i := range frames {
		for c := range numChannels {
			out[c][i] = float64(data[i*numChannels+c]-offset) / scale
		}
	}
	return out
}

// interleave quantizes planar channels, clipping to full scale, and shifts
// them by offset. Channels shorter than the longest are padded with silence.
func interleave(channels [][]float64, scale float64, offset int) []int {
	frames := 0
	for _, ch := range channels {
		frames = max(frames, len(ch))
	}

	hi := scale - 1
	lo := -scale
	out := make([]int, frames*len(channels))
	for i := range frames {
		for c, ch := range channels {
			k := i*len(channels) + c
			if i >= len(ch) {
				out[k] = offset
				continue
			}
			v := math.Round(ch[i] * scale)
			out[k] = int(min(max(v, lo), hi)) + offset
		}
	}
	return out
}
