package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// CatalogMetricsMeterName is the name used for the catalog metrics meter
	CatalogMetricsMeterName = "github.com/nationalmap/px3-catalog-server/catalog"

	// FetchMetricsMeterName is the name used for the capabilities fetch metrics meter
	FetchMetricsMeterName = "github.com/nationalmap/px3-catalog-server/fetch"
)

// CatalogMetrics holds the OpenTelemetry instruments for catalog metrics
type CatalogMetrics struct {
	servicesTotal metric.Int64Gauge
	rejectedTotal metric.Int64Gauge
}

// NewCatalogMetrics creates a new CatalogMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewCatalogMetrics(provider metric.MeterProvider) (*CatalogMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(CatalogMetricsMeterName)

	servicesTotal, err := meter.Int64Gauge(
		"px3_catalog_services_total",
		metric.WithDescription("Number of map services in the loaded catalog"),
		metric.WithUnit("{service}"),
	)
	if err != nil {
		return nil, err
	}

	rejectedTotal, err := meter.Int64Gauge(
		"px3_catalog_rejected_entries_total",
		metric.WithDescription("Number of catalog entries dropped during the last build"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &CatalogMetrics{
		servicesTotal: servicesTotal,
		rejectedTotal: rejectedTotal,
	}, nil
}

// RecordCatalogBuild records the outcome of one catalog build
func (m *CatalogMetrics) RecordCatalogBuild(ctx context.Context, catalogName string, services, rejected int64) {
	if m == nil || m.servicesTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("catalog", catalogName),
	}

	m.servicesTotal.Record(ctx, services, metric.WithAttributes(attrs...))
	m.rejectedTotal.Record(ctx, rejected, metric.WithAttributes(attrs...))
}

// FetchMetrics holds the OpenTelemetry instruments for capabilities fetch metrics
type FetchMetrics struct {
	fetchDuration metric.Float64Histogram
}

// NewFetchMetrics creates a new FetchMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewFetchMetrics(provider metric.MeterProvider) (*FetchMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(FetchMetricsMeterName)

	fetchDuration, err := meter.Float64Histogram(
		"px3_catalog_fetch_duration_seconds",
		metric.WithDescription("Duration of background capabilities fetch sequences in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	return &FetchMetrics{
		fetchDuration: fetchDuration,
	}, nil
}

// RecordFetchDuration records the duration of one background fetch sequence
func (m *FetchMetrics) RecordFetchDuration(ctx context.Context, catalogName string, duration time.Duration, success bool) {
	if m == nil || m.fetchDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("catalog", catalogName),
		attribute.Bool("success", success),
	}

	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
