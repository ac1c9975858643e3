package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	JaegerEndpoint string
	SampleRatio    float64
}

// Observability owns the process-wide meter and tracer providers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	genCounter     otelmetric.Int64Counter
}

// New installs global providers. Metrics are exported through the
// Prometheus registry; spans go to Jaeger when an endpoint is configured
// and are otherwise sampled but dropped.
func New(cfg Config, log logger.Logger) *Observability {
	o := &Observability{}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		res = resource.Default()
	}

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create Prometheus exporter", map[string]interface{}{"error": err.Error()})
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
		otel.SetMeterProvider(o.meterProvider)
		o.meter = o.meterProvider.Meter(cfg.ServiceName)

		o.jobCounter, _ = o.meter.Int64Counter(
			"jobs.processed",
			otelmetric.WithDescription("Number of jobs and API requests processed"),
		)
		o.jobDuration, _ = o.meter.Float64Histogram(
			"jobs.duration",
			otelmetric.WithDescription("Job processing duration"),
			otelmetric.WithUnit("ms"),
		)
		o.genCounter, _ = o.meter.Int64Counter(
			"generations",
			otelmetric.WithDescription("Structured generations by activity and outcome"),
		)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}
	if cfg.JaegerEndpoint != "" {
		je, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			log.Warn("failed to create Jaeger exporter", map[string]interface{}{"error": err.Error()})
		} else {
			tpOpts = append(tpOpts, sdktrace.WithBatcher(je))
		}
	}
	o.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(o.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	o.tracer = o.tracerProvider.Tracer(cfg.ServiceName)

	return o
}

// StartSpan starts a span on the service tracer.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return otel.Tracer("seo-agent").Start(ctx, name, trace.WithAttributes(attrs...))
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o == nil || o.jobCounter == nil {
		return
	}
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

// RecordGeneration counts one structured generation for an activity.
func (o *Observability) RecordGeneration(ctx context.Context, activity, outcome string) {
	if o == nil || o.genCounter == nil {
		return
	}
	o.genCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("activity", activity),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
