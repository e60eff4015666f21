package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics инструменты витрины. nil *Metrics ничего не пишет, сервисы
// работают и без телеметрии.
type Metrics struct {
	requests        metric.Int64Counter
	duration        metric.Float64Histogram
	listings        metric.Int64Counter
	listedOffers    metric.Int64Histogram
	addOutcomes     metric.Int64Counter
	checkoutOutcome metric.Int64Counter
	shortfallLines  metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.requests, err = meter.Int64Counter("storefront_http_requests_total",
		metric.WithDescription("HTTP requests by route and status")); err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("storefront_http_request_duration_seconds",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	if m.listings, err = meter.Int64Counter("storefront_offer_listings_total",
		metric.WithDescription("Offer listings built, by cache outcome")); err != nil {
		return nil, fmt.Errorf("failed to create listing counter: %w", err)
	}
	if m.listedOffers, err = meter.Int64Histogram("storefront_offers_per_listing",
		metric.WithDescription("Offers returned per listing")); err != nil {
		return nil, fmt.Errorf("failed to create offers histogram: %w", err)
	}
	if m.addOutcomes, err = meter.Int64Counter("storefront_cart_add_total",
		metric.WithDescription("Add-to-cart attempts by outcome")); err != nil {
		return nil, fmt.Errorf("failed to create add counter: %w", err)
	}
	if m.checkoutOutcome, err = meter.Int64Counter("storefront_checkout_total",
		metric.WithDescription("Checkout transitions by resulting state")); err != nil {
		return nil, fmt.Errorf("failed to create checkout counter: %w", err)
	}
	if m.shortfallLines, err = meter.Int64Counter("storefront_checkout_shortfall_lines_total",
		metric.WithDescription("Cart lines short of stock at checkout")); err != nil {
		return nil, fmt.Errorf("failed to create shortfall counter: %w", err)
	}
	return &m, nil
}

func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

func (m *Metrics) RecordListing(ctx context.Context, cached bool, offers int) {
	if m == nil {
		return
	}
	m.listings.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cached", cached)))
	m.listedOffers.Record(ctx, int64(offers))
}

// RecordAdd считает попытку добавления, outcome это имя вида ошибки
func (m *Metrics) RecordAdd(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.addOutcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordCheckout(ctx context.Context, state string, shortfallLines int) {
	if m == nil {
		return
	}
	m.checkoutOutcome.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
	if shortfallLines > 0 {
		m.shortfallLines.Add(ctx, int64(shortfallLines))
	}
}

// GinMiddleware пишет каждый запрос под шаблоном маршрута
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
