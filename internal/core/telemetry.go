package core

import (
	"context"

	"api/internal/configuration"
	"api/internal/models"

	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// InitTelemetry wires optional tracing and continuous profiling. Returns a
// shutdown function for the trace provider; a no-op when tracing is off.
func InitTelemetry(config models.TelemetryConfiguration) func(context.Context) error {
	if config.Profiling.Enabled {
		_, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: configuration.AppName,
			ServerAddress:   config.Profiling.ServerAddress,
			Logger:          nil,
		})
		if err != nil {
			zap.L().Error("Failed to start profiler", zap.Error(err))
		} else {
			zap.L().Info("Continuous profiling enabled",
				zap.String("server", config.Profiling.ServerAddress))
		}
	}

	if !config.Tracing.Enabled {
		return func(context.Context) error { return nil }
	}

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(config.Tracing.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		zap.L().Fatal("Failed to create trace exporter", zap.Error(err))
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(configuration.AppName),
		)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	zap.L().Info("Tracing enabled", zap.String("endpoint", config.Tracing.Endpoint))

	return provider.Shutdown
}
