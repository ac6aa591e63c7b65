package opentelemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkMetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"google.golang.org/grpc/encoding/gzip"
)

const gracePeriod = 5 * time.Second

// Init installs the global tracer and meter providers. The returned func flushes and stops them.
func Init(ctx context.Context, cfg Config) (func() error, error) {
	if !cfg.Enabled {
		return func() error { return nil }, nil
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	}
	for k, v := range cfg.Labels {
		attrs = append(attrs, attribute.String(k, v))
	}
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(attrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating resource: %w", err)
	}

	// providers are stopped in reverse start order and every failure is reported
	var shutdowns []func() error
	shutdownAll := func() error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i]())
		}
		return errors.Join(errs...)
	}

	if cfg.Exporter == ExporterOTLP {
		shutdownMetric, err := initGlobalMetrics(ctx, res, cfg)
		if err != nil {
			shutdownAll() //nolint:errcheck
			return nil, fmt.Errorf("error initiating metrics: %w", err)
		}
		shutdowns = append(shutdowns, shutdownMetric)

		if err := host.Start(); err != nil {
			shutdownAll() //nolint:errcheck
			return nil, fmt.Errorf("error starting host metrics: %w", err)
		}
		if err := runtime.Start(); err != nil {
			shutdownAll() //nolint:errcheck
			return nil, fmt.Errorf("error starting runtime metrics: %w", err)
		}
	}

	shutdownTracer, err := initGlobalTracer(ctx, res, cfg)
	if err != nil {
		shutdownAll() //nolint:errcheck
		return nil, fmt.Errorf("error initiating tracer: %w", err)
	}
	shutdowns = append(shutdowns, shutdownTracer)

	return shutdownAll, nil
}

func initGlobalMetrics(ctx context.Context, res *resource.Resource, cfg Config) (func() error, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLP.Endpoint),
		otlpmetricgrpc.WithHeaders(cfg.OTLP.Headers),
		otlpmetricgrpc.WithCompressor(gzip.Name),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	reader := sdkMetric.NewPeriodicReader(exporter, sdkMetric.WithInterval(cfg.MetricInterval))
	provider := sdkMetric.NewMeterProvider(sdkMetric.WithReader(reader), sdkMetric.WithResource(res))
	otel.SetMeterProvider(provider)

	return func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracePeriod)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down metric provider: %w", err)
		}
		return nil
	}, nil
}

func initGlobalTracer(ctx context.Context, res *resource.Resource, cfg Config) (func() error, error) {
	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.Exporter {
	case ExporterOTLP:
		exporter, err = otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.OTLP.Endpoint),
			otlptracegrpc.WithHeaders(cfg.OTLP.Headers),
			otlptracegrpc.WithCompressor(gzip.Name),
		))
	default:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, fmt.Errorf("create %s trace exporter: %w", cfg.Exporter, err)
	}

	sampler := sdktrace.AlwaysSample()
	if cfg.SamplingFraction > 0 && cfg.SamplingFraction < 100 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(float64(cfg.SamplingFraction) / 100))
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracePeriod)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down trace provider: %w", err)
		}
		return nil
	}, nil
}
