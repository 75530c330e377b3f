// Package observe provides OpenTelemetry metrics and tracing for the vocoder
// pipeline.
//
// Instruments are created against a [metric.MeterProvider]. A package-level
// default ([DefaultMetrics]) uses the global provider; tests should use
// [NewMetrics] with their own provider to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all vocoder metrics.
const meterName = "github.com/cwbudde/algo-world"

// Metrics holds the metric instruments for pipeline stages. All fields are
// safe for concurrent use.
type Metrics struct {
	// StageDuration tracks the wall time of one stage call. Use with
	// attributes stage and backend.
	StageDuration metric.Float64Histogram

	// StageCalls counts stage calls by stage, backend and status.
	StageCalls metric.Int64Counter

	// StageErrors counts rejected stage calls by stage and reason.
	StageErrors metric.Int64Counter

	// Frames counts analysed or synthesised frames by stage.
	Frames metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) for
// per-stage compute times, from single short frames to minutes of audio.
var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.StageDuration, err = m.Float64Histogram("world.stage.duration",
		metric.WithDescription("Latency of one vocoder pipeline stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.StageCalls, err = m.Int64Counter("world.stage.calls",
		metric.WithDescription("Total stage calls by stage, backend, and status."),
	); err != nil {
		return nil, err
	}
	if met.StageErrors, err = m.Int64Counter("world.stage.errors",
		metric.WithDescription("Total rejected stage calls by stage and reason."),
	); err != nil {
		return nil, err
	}
	if met.Frames, err = m.Int64Counter("world.frames",
		metric.WithDescription("Total frames processed by stage."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordStage records one finished stage call: its duration, the call
// counter with status "ok" or "error", and on success the frame count.
func (m *Metrics) RecordStage(ctx context.Context, stage, backend string, elapsed time.Duration, frames int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.StageDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("backend", backend),
		),
	)
	m.StageCalls.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("backend", backend),
			attribute.String("status", status),
		),
	)
	if err == nil && frames > 0 {
		m.Frames.Add(ctx, int64(frames),
			metric.WithAttributes(attribute.String("stage", stage)),
		)
	}
}

// RecordStageError records a rejected stage call.
func (m *Metrics) RecordStageError(ctx context.Context, stage, reason string) {
	m.StageErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("reason", reason),
		),
	)
}
