package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// The global Tracer delegates to the first provider installed, so the whole
// package shares one recording provider and each test resets the exporter.
var testExporter = tracetest.NewInMemoryExporter()

func init() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(testExporter),
	))
}

func findAttr(attrs []attribute.KeyValue, key attribute.Key) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value.AsString(), true
		}
	}
	return "", false
}

func TestTraceRedisOperation(t *testing.T) {
	testExporter.Reset()

	_, span := TraceRedisOperation(context.Background(), "get")
	span.End()

	spans := testExporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "redis.get", spans[0].Name)

	system, ok := findAttr(spans[0].Attributes, "db.system")
	require.True(t, ok)
	assert.Equal(t, "redis", system)
}

func TestTraceRepositoryMethod(t *testing.T) {
	testExporter.Reset()

	_, span := TraceRepositoryMethod(context.Background(), "GetByID", "posts")
	span.End()

	spans := testExporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "repository.GetByID", spans[0].Name)

	table, ok := findAttr(spans[0].Attributes, "db.table")
	require.True(t, ok)
	assert.Equal(t, "posts", table)
}

func TestRecordErrorInContext(t *testing.T) {
	testExporter.Reset()

	ctx, span := TraceRepositoryMethod(context.Background(), "Create", "posts")
	RecordErrorInContext(ctx, errors.New("connection refused"))
	span.End()

	spans := testExporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)

	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestRecordErrorInContextWithoutSpan(t *testing.T) {
	// Recording on a context with no active span must not panic.
	RecordErrorInContext(context.Background(), errors.New("boom"))
}
