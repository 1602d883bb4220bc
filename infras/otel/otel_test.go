package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecodash/infras/otel"
	"ecodash/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScopeRecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	tracer := otel.NewWithProvider(provider)

	_, scope := tracer.NewScope(context.Background(), "service", "service.reservation.Schedule")
	scope.SetAttributes(map[string]any{
		"space_id": "A1",
		"limit":    10,
		"active":   true,
		"ids":      []string{"a", "b"},
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("time conflict with existing reservation"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "service.reservation.Schedule", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "time conflict with existing reservation", span.Status().Description)
	assert.Contains(t, span.Attributes(), attribute.String("space_id", "A1"))
	assert.Contains(t, span.Attributes(), attribute.Int("limit", 10))
	assert.Contains(t, span.Attributes(), attribute.Bool("active", true))
	assert.Contains(t, span.Attributes(), attribute.StringSlice("ids", []string{"a", "b"}))

	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestScopeWithoutErrorKeepsStatusUnset(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	_, scope := tracer.NewScope(context.Background(), "handler", "handler.reservation.Get")
	scope.AddEvent("filters.parsed")
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "filters.parsed", spans[0].Events()[0].Name)
}

func TestScopeTagsDomainFailures(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	_, scope := tracer.NewScope(context.Background(), "service", "service.reservation.Schedule")
	scope.SetAttribute("start", time.Date(2030, 1, 1, 17, 0, 0, 0, time.FixedZone("WIB", 7*60*60)))
	scope.TraceIfError(failure.Conflict("time conflict with existing reservation"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("failure.kind", "conflict"))
	assert.Contains(t, span.Attributes(), attribute.String("start", "2030-01-01T10:00:00Z"))
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "time conflict with existing reservation", span.Events()[0].Name)
}
