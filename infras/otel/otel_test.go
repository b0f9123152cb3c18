package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"seatq/infras/otel"
)

func TestScope_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	tracer := otel.NewWithProvider(provider)

	_, scope := tracer.NewScope(context.Background(), "service", "service.JoinQueue")
	scope.SetAttributes(map[string]any{
		"party_size": 4,
		"seq":        uint64(9),
		"seated":     true,
		"table":      "t-1",
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("commit conflict"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "service.JoinQueue", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "commit conflict", span.Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(4), attrs["party_size"].AsInt64())
	assert.Equal(t, int64(9), attrs["seq"].AsInt64())
	assert.True(t, attrs["seated"].AsBool())
	assert.Equal(t, "t-1", attrs["table"].AsString())
}
