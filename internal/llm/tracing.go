package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/website1975/vatly12CTST/internal/llm"

// TracingProvider wraps a Provider with one span per Generate call.
// Spans go to the global tracer provider, which is a no-op unless
// telemetry is enabled.
type TracingProvider struct {
	inner    Provider
	provider string
	tracer   trace.Tracer
}

// WithTracing wraps p with tracing.
func WithTracing(p Provider, providerName string) Provider {
	return &TracingProvider{
		inner:    p,
		provider: providerName,
		tracer:   otel.Tracer(tracerName),
	}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := t.tracer.Start(ctx, "llm.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", t.provider),
			attribute.String("llm.model", t.inner.ModelID()),
			attribute.String("llm.purpose", PurposeFrom(ctx)),
			attribute.String("lesson.id", LessonFrom(ctx)),
			attribute.Int("llm.messages", len(req.Messages)),
			attribute.Bool("llm.structured", req.Schema != nil),
		),
	)
	defer span.End()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Kind(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
		attribute.String("llm.stop_reason", resp.StopReason),
	)
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}
