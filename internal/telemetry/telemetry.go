// Package telemetry configures OpenTelemetry trace and metric export.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/config"
)

const serviceName = "exchange-rates-bot"

// Setup installs global tracer and meter providers according to the
// configured telemetry mode and returns a shutdown function. In "off" mode
// nothing is installed and shutdown is a no-op.
func Setup(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if cfg.TelemetryMode == config.TelemetryOff {
		return func(context.Context) error { return nil }, nil
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	traceExporter, err := newTraceExporter(ctx, cfg.TelemetryMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, cfg.TelemetryMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)
	}
	return shutdown, nil
}

func newTraceExporter(ctx context.Context, mode string) (sdktrace.SpanExporter, error) {
	switch mode {
	case config.TelemetryOTLPGRPC:
		return otlptracegrpc.New(ctx)
	case config.TelemetryOTLPHTTP:
		return otlptracehttp.New(ctx)
	case config.TelemetryStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unknown telemetry mode %q", mode)
	}
}

func newMetricExporter(ctx context.Context, mode string) (sdkmetric.Exporter, error) {
	switch mode {
	case config.TelemetryOTLPGRPC:
		return otlpmetricgrpc.New(ctx)
	case config.TelemetryOTLPHTTP:
		return otlpmetrichttp.New(ctx)
	case config.TelemetryStdout:
		return stdoutmetric.New()
	default:
		return nil, fmt.Errorf("unknown telemetry mode %q", mode)
	}
}
