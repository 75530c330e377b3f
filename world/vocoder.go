package world

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cwbudde/algo-world/binding"
	"github.com/cwbudde/algo-world/internal/observe"
)

// Vocoder runs pipeline stages against one backend. It holds no per-call
// state and is safe for concurrent use; option records and matrices passed
// to it are not.
type Vocoder struct {
	backend binding.Backend
	logger  *slog.Logger
	metrics *observe.Metrics
	tracer  trace.Tracer
}

// Option configures a Vocoder at construction time.
type Option func(*Vocoder) error

// WithBackend replaces the build-selected backend.
func WithBackend(b binding.Backend) Option {
	return func(v *Vocoder) error {
		if b == nil {
			return errors.New("world: backend must not be nil")
		}
		v.backend = b
		return nil
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(v *Vocoder) error {
		if l != nil {
			v.logger = l
		}
		return nil
	}
}

// WithMeterProvider records stage metrics on mp instead of the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(v *Vocoder) error {
		m, err := observe.NewMetrics(mp)
		if err != nil {
			return err
		}
		v.metrics = m
		return nil
	}
}

// WithTracerProvider records stage spans on tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(v *Vocoder) error {
		v.tracer = observe.Tracer(tp)
		return nil
	}
}

// New returns a Vocoder using the default backend unless WithBackend is
// given.
func New(opts ...Option) (*Vocoder, error) {
	v := &Vocoder{backend: defaultBackend()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(v)
		if err != nil {
			return nil, err
		}
	}

	if v.logger == nil {
		v.logger = slog.Default()
	}
	if v.metrics == nil {
		v.metrics = observe.DefaultMetrics()
	}
	if v.tracer == nil {
		v.tracer = observe.Tracer(nil)
	}

	return v, nil
}

// Backend returns the name of the backend in use.
func (v *Vocoder) Backend() string {
	return v.backend.Name()
}

// stage runs fn inside a span, records its duration and outcome, and logs
// the result at debug level. fn returns the number of frames it produced.
func (v *Vocoder) stage(ctx context.Context, name string, fn func() (int, error)) error {
	backend := v.backend.Name()
	ctx, span := observe.StartSpan(ctx, v.tracer, "world."+name,
		trace.WithAttributes(attribute.String("backend", backend)))
	defer span.End()

	start := time.Now()
	frames, err := fn()
	elapsed := time.Since(start)

	v.metrics.RecordStage(ctx, name, backend, elapsed, frames, err)
	log := observe.Logger(ctx, v.logger)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		v.metrics.RecordStageError(ctx, name, errorReason(err))
		log.Debug("stage rejected", "stage", name, "backend", backend, "error", err)
		return err
	}

	span.SetAttributes(attribute.Int("frames", frames))
	log.Debug("stage done", "stage", name, "backend", backend, "frames", frames, "elapsed", elapsed)
	return nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrShapeMismatch), errors.Is(err, ErrJaggedMatrix):
		return "shape"
	case errors.Is(err, ErrUninitializedOption):
		return "option"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "input"
	}
}
