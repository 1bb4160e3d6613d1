// Package telemetry configures OpenTelemetry tracing for LLM calls.
package telemetry

import (
	"context"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/config"
)

const serviceName = "vatly12"

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Init installs a global tracer provider when tracing is enabled. Spans go
// to the OTLP/HTTP endpoint when one is set, else to fallback as pretty
// JSON. The returned Shutdown is never nil.
func Init(ctx context.Context, cfg config.TelemetryConfig, version string, fallback io.Writer, log *zap.Logger) (Shutdown, error) {
	if !cfg.Enabled {
		return noop, nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(version),
	))
	if err != nil {
		log.Warn("otel resource init failed (continuing)", zap.Error(err))
	}

	exporter, err := newExporter(ctx, cfg.Endpoint, fallback)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("otel tracing initialized", zap.String("endpoint", cfg.Endpoint), zap.Float64("sample_ratio", cfg.SampleRatio))
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, endpoint string, fallback io.Writer) (sdktrace.SpanExporter, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		return stdouttrace.New(stdouttrace.WithWriter(fallback), stdouttrace.WithPrettyPrint())
	}
	if strings.Contains(endpoint, "://") {
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	}
	return otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
