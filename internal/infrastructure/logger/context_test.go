package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		l := zap.NewExample()
		assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
	})

	t.Run("falls back to nop", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestRequestAndUserID(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "user-1", UserID(ctx))
	assert.Empty(t, RequestID(context.Background()))
	assert.Empty(t, UserID(context.Background()))
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", TraceID(spanContext(t)))
}

func TestL_AddsCorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(spanContext(t), zap.New(core))
	ctx = WithRequestID(ctx, "req-42")
	ctx = WithUserID(ctx, "user-7")

	L(ctx).Info("dashboard loaded")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "user-7", fields["user_id"])
}

func TestEnrich_EmptyContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	Enrich(context.Background(), zap.New(core)).Info("plain")

	require.Equal(t, 1, recorded.Len())
	assert.Empty(t, recorded.All()[0].Context)
}

func TestEnrich_NilBase(t *testing.T) {
	assert.NotPanics(t, func() {
		Enrich(WithRequestID(context.Background(), "r"), nil).Info("dropped")
	})
}
