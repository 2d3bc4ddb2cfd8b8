package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLogger_AddsTraceAndRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	ctx = WithRequestID(ctx, "req-123")
	log.InfoContext(ctx, "listing tournaments")
	span.End()

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}

	if rec["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("trace_id mismatch: %v", rec["trace_id"])
	}
	if rec["request_id"] != "req-123" {
		t.Fatalf("request_id mismatch: %v", rec["request_id"])
	}
}

func TestLogger_ReleaseSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	log.Debug("noisy")

	if buf.Len() != 0 {
		t.Fatalf("debug record written outside dev: %s", buf.String())
	}
}

func TestObserveDB_CountsErrorsByClass(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("tournament.get_documents", func() error { return nil })
	err := p.ObserveDB("tournament.get_documents", func() error { return apperr.ErrStorageUnavailable })

	if !errors.Is(err, apperr.ErrStorageUnavailable) {
		t.Fatalf("ObserveDB must return the callback error, got %v", err)
	}

	got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("tournament.get_documents", "unavailable"))
	if got != 1 {
		t.Fatalf("expected 1 unavailable error, got %v", got)
	}
}

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("read: %w", context.DeadlineExceeded), "timeout"},
		{errors.New("connection refused"), "connection"},
		{errors.New("something odd"), "unknown"},
	}

	for _, tt := range tests {
		if got := classifyDBErr(tt.err); got != tt.want {
			t.Fatalf("classifyDBErr(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserveSeed_NilSafe(t *testing.T) {
	var p *Prom
	p.ObserveSeed("ok")
	p.ObserveCache("hit")

	p = NewProm(prometheus.NewRegistry())
	p.ObserveSeed("error")

	if got := testutil.ToFloat64(p.SeedInserts.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected 1 seed error, got %v", got)
	}
}

func TestInitTracer_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracerConfig{ServiceName: "tourneyhub"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown failed: %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "AlwaysOffSampler"},
		{1, "AlwaysOnSampler"},
		{3, "AlwaysOnSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}

	for _, tc := range tests {
		desc := samplerFor(tc.ratio).Description()
		if !strings.HasPrefix(desc, "ParentBased{root:"+tc.want) {
			t.Fatalf("ratio %v: got %q, want root %q", tc.ratio, desc, tc.want)
		}
	}
}
