package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/runid"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := newSubscriber(tp.Tracer("gqlfront"))
	unsubscribe := sub.register()

	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

type documentKey struct {
	run  int64
	file string
}

type subscriber struct {
	tracer        trace.Tracer
	compileSpans  sync.Map // run id -> trace.Span
	schemaSpans   sync.Map // run id -> trace.Span
	documentSpans sync.Map // documentKey -> trace.Span
}

func newSubscriber(tracer trace.Tracer) *subscriber {
	return &subscriber{tracer: tracer}
}

// parent returns ctx carrying the compile span of the run, if any.
func (s *subscriber) parent(ctx context.Context, rid int64) context.Context {
	if v, ok := s.compileSpans.Load(rid); ok {
		return trace.ContextWithSpan(ctx, v.(trace.Span))
	}
	return ctx
}

func (s *subscriber) register() (unsubscribe func()) {
	var unsubs []func()
	unsubs = append(unsubs, eventbus.Subscribe(func(ctx context.Context, e events.CompileStart) {
		rid, _ := runid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "gqlfront.compile")
		span.SetAttributes(
			attribute.Int64("gqlfront.run_id", rid),
			attribute.Int("gqlfront.schema_files", len(e.SchemaFiles)),
			attribute.Int("gqlfront.document_files", len(e.DocumentFiles)),
		)
		s.compileSpans.Store(rid, span)
	}))

	unsubs = append(unsubs, eventbus.Subscribe(func(ctx context.Context, e events.CompileFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.compileSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("graphql.operation_count", e.Operations),
			attribute.Int("graphql.fragment_count", e.Fragments),
		)
		end(span, e.Err)
	}))

	unsubs = append(unsubs, eventbus.Subscribe(func(ctx context.Context, e events.SchemaAssembleStart) {
		rid, _ := runid.FromContext(ctx)
		_, span := s.tracer.Start(s.parent(ctx, rid), "gqlfront.schema.assemble")
		span.SetAttributes(attribute.StringSlice("gqlfront.files", e.Files))
		s.schemaSpans.Store(rid, span)
	}))

	unsubs = append(unsubs, eventbus.Subscribe(func(ctx context.Context, e events.SchemaAssembleFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.schemaSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("graphql.type_count", e.Types))
		end(span, e.Err)
	}))

	unsubs = append(unsubs, eventbus.Subscribe(func(ctx context.Context, e events.DocumentBuildStart) {
		rid, _ := runid.FromContext(ctx)
		_, span := s.tracer.Start(s.parent(ctx, rid), "gqlfront.document.build")
		span.SetAttributes(attribute.String("gqlfront.file", e.File))
		s.documentSpans.Store(documentKey{run: rid, file: e.File}, span)
	}))

	unsubs = append(unsubs, eventbus.Subscribe(func(ctx context.Context, e events.DocumentBuildFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.documentSpans.LoadAndDelete(documentKey{run: rid, file: e.File})
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("graphql.operation_count", e.Operations),
			attribute.Int("graphql.fragment_count", e.Fragments),
		)
		end(span, e.Err)
	}))

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
