package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"bluebook/internal/config"
	"bluebook/pkg/contracts"
)

const (
	ServiceName = "bluebook"
	TracerName  = "bluebook"
)

// Tracing holds the tracer used for one run and the provider that must be
// shut down to flush it.
type Tracing struct {
	Provider *sdktrace.TracerProvider
	Tracer   trace.Tracer
}

// InitializeTracing sets up OpenTelemetry tracing. The "stdout" exporter
// writes pretty-printed spans to w; "none" installs a no-op tracer.
func InitializeTracing(cfg config.TracingConfig, w io.Writer, logger *slog.Logger) (*Tracing, error) {
	if logger == nil {
		logger = GetLogger()
	}

	switch cfg.Exporter {
	case config.TraceExporterNone, "":
		return &Tracing{Tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	case config.TraceExporterStdout:
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	otel.SetTracerProvider(tp)

	logger.Debug("Tracing initialized",
		slog.String("exporter", cfg.Exporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return &Tracing{
		Provider: tp,
		Tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(contracts.Version)),
	}, nil
}

// Shutdown flushes pending spans. Safe on a no-op Tracing.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.Provider == nil {
		return nil
	}
	return t.Provider.Shutdown(ctx)
}

// StartSpan starts a span named name on tracer, falling back to the global
// tracer provider when tracer is nil.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
