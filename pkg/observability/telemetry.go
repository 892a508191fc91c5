// Package observability wires OpenTelemetry tracing (OTLP over HTTP) and
// metrics (Prometheus exporter) into the global providers.
package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/Alijeyrad/uat_backend/config"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	TracingEnabled bool
	OTLPEndpoint   string // host:port of an OTLP HTTP collector, e.g. localhost:4318
	OTLPInsecure   bool
	SamplingRate   float64 // 0 means sample everything

	MetricsEnabled bool
}

func FromCentralConfig(c *config.Config) Config {
	return Config{
		ServiceName:    c.Observability.ServiceName,
		ServiceVersion: c.Observability.ServiceVersion,
		Environment:    c.Server.Environment,
		TracingEnabled: c.Observability.Tracing.Enabled,
		OTLPEndpoint:   c.Observability.Tracing.OTLPEndpoint,
		OTLPInsecure:   c.Observability.Tracing.OTLPInsecure,
		SamplingRate:   c.Observability.Tracing.SamplingRate,
		MetricsEnabled: c.Observability.Metrics.Enabled,
	}
}

// Provider holds whichever SDK providers were enabled.
type Provider struct {
	TracerProvider     *trace.TracerProvider
	MeterProvider      *metric.MeterProvider
	PrometheusExporter *prometheus.Exporter
}

// InitTelemetry installs the enabled providers globally. Disabled signals
// keep otel's no-op implementation.
func InitTelemetry(ctx context.Context, cfg Config) (*Provider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	p := &Provider{}

	if cfg.TracingEnabled {
		p.TracerProvider, err = initTracing(ctx, res, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		otel.SetTracerProvider(p.TracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if cfg.MetricsEnabled {
		p.MeterProvider, p.PrometheusExporter, err = initMetrics(res)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		otel.SetMeterProvider(p.MeterProvider)
	}

	return p, nil
}

func initTracing(ctx context.Context, res *resource.Resource, cfg Config) (*trace.TracerProvider, error) {
	samplingRate := cfg.SamplingRate
	if samplingRate == 0 {
		samplingRate = 1.0
	}

	tp := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(samplingRate))),
	)

	if cfg.OTLPEndpoint == "" {
		return tp, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	tp.RegisterSpanProcessor(trace.NewBatchSpanProcessor(exporter))

	return tp, nil
}

func initMetrics(res *resource.Resource) (*metric.MeterProvider, *prometheus.Exporter, error) {
	promExporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(promExporter),
	)

	return meterProvider, promExporter, nil
}

// Shutdown flushes and stops the enabled providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
