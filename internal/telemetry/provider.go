// Package telemetry метрики OpenTelemetry: эндпоинт Prometheus или OTLP gRPC
// экспортер, плюс инструменты витрины.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const (
	ExporterScraper = "scraper"
	ExporterGRPC    = "grpc"
)

// Provider владеет meter provider и, для экспортера scraper, реестром
// на /metrics.
type Provider struct {
	MeterProvider *metric.MeterProvider
	registry      *prometheus.Registry
}

// Setup собирает meter provider для exporter и ставит его глобальным.
// gRPC экспортер читает OTEL_EXPORTER_OTLP_METRICS_ENDPOINT, по умолчанию
// localhost:4317.
func Setup(ctx context.Context, exporter string, log *zap.Logger) (*Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Provider{}
	switch exporter {
	case ExporterScraper, "":
		p.registry = prometheus.NewRegistry()
		p.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		exp, err := otelprom.New(otelprom.WithRegisterer(p.registry))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		p.MeterProvider = metric.NewMeterProvider(metric.WithReader(exp))
		log.Info("metrics exporter started", zap.String("exporter", ExporterScraper))
	case ExporterGRPC:
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create otlp grpc exporter: %w", err)
		}
		p.MeterProvider = metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exp)))
		log.Info("metrics exporter started", zap.String("exporter", ExporterGRPC))
	default:
		return nil, fmt.Errorf("unknown metrics exporter %q", exporter)
	}
	otel.SetMeterProvider(p.MeterProvider)
	return p, nil
}

// Meter сервиса
func (p *Provider) Meter(name string) api.Meter {
	return p.MeterProvider.Meter(name)
}

// Handler эндпоинт для сбора метрик, nil при push экспортере
func (p *Provider) Handler() http.Handler {
	if p.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Shutdown сбрасывает накопленное и останавливает экспортер
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.MeterProvider == nil {
		return nil
	}
	return errors.Join(p.MeterProvider.ForceFlush(ctx), p.MeterProvider.Shutdown(ctx))
}
