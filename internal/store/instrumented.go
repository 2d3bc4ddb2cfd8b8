package store

import (
	"context"

	"github.com/geocoder89/tourneyhub/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/geocoder89/tourneyhub/internal/store"

// Instrumented records latency, errors and a span for every call to the
// wrapped store.
type Instrumented struct {
	next   Store
	prom   *observability.Prom
	tracer trace.Tracer
	system string
}

func NewInstrumented(next Store, prom *observability.Prom, system string) *Instrumented {
	return &Instrumented{
		next:   next,
		prom:   prom,
		tracer: otel.Tracer(tracerName),
		system: system,
	}
}

func (s *Instrumented) observe(ctx context.Context, op, collection string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "store."+op, trace.WithAttributes(
		attribute.String("db.system", s.system),
		attribute.String("db.collection.name", collection),
	))
	defer span.End()

	label := op
	if collection != "" {
		label = collection + "." + op
	}

	run := func() error { return fn(ctx) }

	var err error
	if s.prom != nil {
		err = s.prom.ObserveDB(label, run)
	} else {
		err = run()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (s *Instrumented) CreateDocument(ctx context.Context, collection string, record interface{}) (key interface{}, err error) {
	err = s.observe(ctx, "create_document", collection, func(ctx context.Context) error {
		key, err = s.next.CreateDocument(ctx, collection, record)
		return err
	})
	return
}

func (s *Instrumented) GetDocuments(ctx context.Context, collection string, filter map[string]interface{}, limit int) (docs []Document, err error) {
	err = s.observe(ctx, "get_documents", collection, func(ctx context.Context) error {
		docs, err = s.next.GetDocuments(ctx, collection, filter, limit)
		return err
	})
	return
}

func (s *Instrumented) CollectionNames(ctx context.Context) (names []string, err error) {
	err = s.observe(ctx, "list_collections", "", func(ctx context.Context) error {
		names, err = s.next.CollectionNames(ctx)
		return err
	})
	return
}

func (s *Instrumented) Ping(ctx context.Context) error {
	return s.observe(ctx, "ping", "", s.next.Ping)
}

func (s *Instrumented) Name() string { return s.next.Name() }

func (s *Instrumented) Close(ctx context.Context) error { return s.next.Close(ctx) }
