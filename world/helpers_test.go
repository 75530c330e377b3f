package world

import (
	"context"
	"sync"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/cwbudde/algo-world/binding"
	"github.com/cwbudde/algo-world/internal/goworld"
)

// recordingBackend delegates to the pure-Go backend and records which
// computation routines were reached.
type recordingBackend struct {
	goworld.Backend

	mu    sync.Mutex
	calls []string
}

var _ binding.Backend = (*recordingBackend)(nil)

func (r *recordingBackend) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recordingBackend) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingBackend) Dio(x []float64, fs int, option *binding.DioOption, tp, f0 []float64) {
	r.record("Dio")
	r.Backend.Dio(x, fs, option, tp, f0)
}

func (r *recordingBackend) Harvest(x []float64, fs int, option *binding.HarvestOption, tp, f0 []float64) {
	r.record("Harvest")
	r.Backend.Harvest(x, fs, option, tp, f0)
}

func (r *recordingBackend) StoneMask(x []float64, fs int, tp, f0, refined []float64) {
	r.record("StoneMask")
	r.Backend.StoneMask(x, fs, tp, f0, refined)
}

func (r *recordingBackend) CheapTrick(x []float64, fs int, tp, f0 []float64, option *binding.CheapTrickOption, sp [][]float64) {
	r.record("CheapTrick")
	r.Backend.CheapTrick(x, fs, tp, f0, option, sp)
}

func (r *recordingBackend) D4C(x []float64, fs int, tp, f0 []float64, fftSize int, option *binding.D4COption, ap [][]float64) {
	r.record("D4C")
	r.Backend.D4C(x, fs, tp, f0, fftSize, option, ap)
}

func (r *recordingBackend) CodeAperiodicity(ap [][]float64, f0Length, fs, fftSize int, coded [][]float64) {
	r.record("CodeAperiodicity")
	r.Backend.CodeAperiodicity(ap, f0Length, fs, fftSize, coded)
}

func (r *recordingBackend) DecodeAperiodicity(coded [][]float64, f0Length, fs, fftSize int, ap [][]float64) {
	r.record("DecodeAperiodicity")
	r.Backend.DecodeAperiodicity(coded, f0Length, fs, fftSize, ap)
}

func (r *recordingBackend) CodeSpectralEnvelope(sp [][]float64, f0Length, fs, fftSize, dims int, coded [][]float64) {
	r.record("CodeSpectralEnvelope")
	r.Backend.CodeSpectralEnvelope(sp, f0Length, fs, fftSize, dims, coded)
}

func (r *recordingBackend) DecodeSpectralEnvelope(coded [][]float64, f0Length, fs, fftSize, dims int, sp [][]float64) {
	r.record("DecodeSpectralEnvelope")
	r.Backend.DecodeSpectralEnvelope(coded, f0Length, fs, fftSize, dims, sp)
}

func (r *recordingBackend) Synthesis(f0 []float64, sp, ap [][]float64, fftSize int, framePeriod float64, fs int, y []float64) {
	r.record("Synthesis")
	r.Backend.Synthesis(f0, sp, ap, fftSize, framePeriod, fs, y)
}

type testVocoder struct {
	*Vocoder
	backend *recordingBackend
	reader  *sdkmetric.ManualReader
	spans   *tracetest.InMemoryExporter
}

// newTestVocoder returns a Vocoder over a recording backend with its own
// metric reader and span exporter.
func newTestVocoder(t *testing.T) *testVocoder {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
		_ = tp.Shutdown(context.Background())
	})

	backend := &recordingBackend{}
	v, err := New(
		WithBackend(backend),
		WithMeterProvider(mp),
		WithTracerProvider(tp),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &testVocoder{Vocoder: v, backend: backend, reader: reader, spans: exp}
}

func (tv *testVocoder) requireNoBackendCalls(t *testing.T) {
	t.Helper()
	if calls := tv.backend.Calls(); len(calls) != 0 {
		t.Fatalf("backend reached: %v", calls)
	}
}
