package tracer

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const (
	serviceName     = "voiceread-backend"
	defaultEndpoint = "localhost:4318"
)

// noopShutdown stands in when no tracer provider was installed.
func noopShutdown(context.Context) error { return nil }

// InitTracer wires the OTLP HTTP exporter and returns a shutdown function for
// main to defer. A voice reader normally runs standalone on the user's
// machine, so tracing stays off unless OTEL_ENABLED=true; the endpoint comes
// from OTEL_EXPORTER_OTLP_ENDPOINT and falls back to a local collector.
func InitTracer() func(context.Context) error {
	if os.Getenv("OTEL_ENABLED") != "true" {
		log.Println("Tracing off (set OTEL_ENABLED=true to export spans)")
		return noopShutdown
	}

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	// Plain HTTP; the expected collector is a local Jaeger listening on 4318.
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Tracing off: OTLP exporter for %s not created: %v", endpoint, err)
		return noopShutdown
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	log.Printf("Tracing on, exporting to %s as %s", endpoint, serviceName)
	return tp.Shutdown
}
