package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// Metrics owns the Prometheus exporter served on the diagnostics listener
// and the HTTP instruments recorded by Middleware.
type Metrics struct {
	exporter *prometheus.Exporter
	requests metric.Int64Counter
	latency  metric.Float64ValueRecorder
}

func New(service string) (*Metrics, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("initialize prometheus exporter: %w", err)
	}

	meter := metric.Must(exporter.MeterProvider().Meter(service))

	return &Metrics{
		exporter: exporter,
		requests: meter.NewInt64Counter(
			"http.server.completed_count",
			metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
		),
		latency: meter.NewFloat64ValueRecorder(
			"http.server.duration_seconds",
			metric.WithDescription("Request latency in seconds, by HTTP method, route and response status"),
		),
	}, nil
}

func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.exporter.MeterProvider()
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.exporter
}

// Middleware records every request once it has been routed, labelled by the
// chi route pattern so ids in the path do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		labels := []attribute.KeyValue{
			attribute.String("method", r.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(status)),
		}
		m.requests.Add(r.Context(), 1, labels...)
		m.latency.Record(r.Context(), time.Since(start).Seconds(), labels...)
	})
}
