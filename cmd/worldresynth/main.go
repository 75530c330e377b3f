// Command worldresynth analyses a WAV file with the WORLD vocoder and
// renders it back, optionally through the coded parameter representation.
//
// Usage:
//
//	worldresynth [flags] -in input.wav -out output.wav
//
// Examples:
//
//	worldresynth -in voice.wav -out voice-resynth.wav
//	worldresynth -in voice.wav -out coded.wav -dims 60
//	worldresynth -config harvest.yaml -v -in voice.wav -out out.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-world/world"
)

type options struct {
	in         string
	out        string
	configPath string
	dims       int
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "input WAV path")
	flag.StringVar(&o.out, "out", "", "output WAV path")
	flag.StringVar(&o.configPath, "config", "", "optional YAML analysis config")
	flag.IntVar(&o.dims, "dims", 0, "code the spectral envelope to this many dimensions before synthesis (0 disables coding)")
	flag.BoolVar(&o.verbose, "v", false, "log per-stage diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: worldresynth [flags] -in input.wav -out output.wav\n\n")
		fmt.Fprintf(os.Stderr, "Analyses a WAV file and resynthesizes it with the WORLD vocoder.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if o.in == "" || o.out == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, logger); err != nil {
		logger.Error("resynthesis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, logger *slog.Logger) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}

	v, err := world.New(world.WithLogger(logger))
	if err != nil {
		return err
	}

	in, err := readWAV(o.in)
	if err != nil {
		return err
	}
	logger.Info("read input", "path", o.in, "sample_rate", in.sampleRate,
		"channels", len(in.channels), "bit_depth", in.bitDepth, "backend", v.Backend())

	params, err := v.AnalyzeChannels(ctx, in.channels, in.sampleRate, cfg)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	out := &pcm{
		sampleRate: in.sampleRate,
		bitDepth:   in.bitDepth,
		channels:   make([][]float64, len(params)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range params {
		g.Go(func() error {
			y, err := render(gctx, v, p, o.dims)
			if err != nil {
				return fmt.Errorf("channel %d: %w", i, err)
			}
			out.channels[i] = y
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeWAV(o.out, out); err != nil {
		return err
	}
	logger.Info("wrote output", "path", o.out, "frames", len(params[0].F0), "dims", o.dims)
	return nil
}

func render(ctx context.Context, v *world.Vocoder, p *world.Parameters, dims int) ([]float64, error) {
	if dims > 0 {
		coded, err := v.Encode(ctx, p, dims)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		if p, err = v.Decode(ctx, coded); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	}
	return v.Resynthesize(ctx, p)
}

func loadConfig(path string) (world.AnalysisConfig, error) {
	if path == "" {
		return world.AnalysisConfig{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return world.AnalysisConfig{}, err
	}
	defer f.Close()

	cfg, err := world.LoadAnalysisConfig(f)
	if err != nil {
		return world.AnalysisConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
