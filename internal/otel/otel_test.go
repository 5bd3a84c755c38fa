package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/runid"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup("", "gqlfront")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestCompileSpans(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	unsubscribe := newSubscriber(tp.Tracer("test")).register()
	defer unsubscribe()

	ctx, _ := runid.NewContext(context.Background())
	eventbus.Publish(ctx, events.CompileStart{SchemaFiles: []string{"schema.graphqls"}, DocumentFiles: []string{"a.graphql"}})
	eventbus.Publish(ctx, events.SchemaAssembleStart{Files: []string{"schema.graphqls"}})
	eventbus.Publish(ctx, events.SchemaAssembleFinish{Files: []string{"schema.graphqls"}, Types: 12})
	eventbus.Publish(ctx, events.DocumentBuildStart{File: "a.graphql"})
	eventbus.Publish(ctx, events.DocumentBuildFinish{File: "a.graphql", Err: errors.New("boom")})
	eventbus.Publish(ctx, events.CompileFinish{Err: errors.New("boom")})

	ended := rec.Ended()
	require.Len(t, ended, 3)
	names := []string{ended[0].Name(), ended[1].Name(), ended[2].Name()}
	require.Equal(t, []string{"gqlfront.schema.assemble", "gqlfront.document.build", "gqlfront.compile"}, names)

	compile := ended[2]
	require.Equal(t, compile.SpanContext().SpanID(), ended[0].Parent().SpanID())
	require.Equal(t, compile.SpanContext().SpanID(), ended[1].Parent().SpanID())
	require.Equal(t, codes.Error, ended[1].Status().Code)
	require.Equal(t, codes.Unset, ended[0].Status().Code)
}

func TestFinishWithoutStartIsIgnored(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	unsubscribe := newSubscriber(tp.Tracer("test")).register()
	defer unsubscribe()

	ctx, _ := runid.NewContext(context.Background())
	eventbus.Publish(ctx, events.DocumentBuildFinish{File: "a.graphql"})
	eventbus.Publish(ctx, events.CompileFinish{})
	require.Empty(t, rec.Ended())
}
