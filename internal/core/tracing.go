package core

import (
	"context"
	"fmt"

	"badge/internal/configuration"
	"badge/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// InitTracing installs an OTLP/HTTP tracer provider. The returned function flushes pending
// spans and is a no-op when tracing is disabled.
func InitTracing(ctx context.Context, config models.AppConfiguration, instanceID string) (func(context.Context) error, error) {
	if !config.Tracing.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.Tracing.Endpoint)}
	if config.Tracing.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", configuration.AppName),
		attribute.String("service.version", config.Version),
		attribute.String("service.instance.id", instanceID),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.Tracing.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	zap.L().Info("Tracing enabled",
		zap.String("endpoint", config.Tracing.Endpoint),
		zap.Float64("sample_ratio", config.Tracing.SampleRatio))

	return provider.Shutdown, nil
}
