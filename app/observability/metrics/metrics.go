package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RecommendationRequestsTotal  metric.Int64Counter
	RecommendationFallbacksTotal metric.Int64Counter
	RecommendationDurationSecs   metric.Float64Histogram
	FavoriteTogglesTotal         metric.Int64Counter
	ItineraryExportsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once,
// using the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("galagram-api")
		var err error
		m := &AppMetrics{}

		m.RecommendationRequestsTotal, err = meter.Int64Counter(
			"recommendation_requests_total",
			metric.WithDescription("Total number of recommendation requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendation_requests_total: %v", err)
		}

		m.RecommendationFallbacksTotal, err = meter.Int64Counter(
			"recommendation_fallbacks_total",
			metric.WithDescription("Recommendation requests served from static fallback data"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendation_fallbacks_total: %v", err)
		}

		m.RecommendationDurationSecs, err = meter.Float64Histogram(
			"recommendation_duration_seconds",
			metric.WithDescription("Duration of recommendation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendation_duration_seconds: %v", err)
		}

		m.FavoriteTogglesTotal, err = meter.Int64Counter(
			"favorite_toggles_total",
			metric.WithDescription("Total number of favorite toggle operations"),
			metric.WithUnit("{operation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create favorite_toggles_total: %v", err)
		}

		m.ItineraryExportsTotal, err = meter.Int64Counter(
			"itinerary_exports_total",
			metric.WithDescription("Total number of itinerary exports"),
			metric.WithUnit("{export}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_exports_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the metric instruments, initializing them on first use. Before
// a real MeterProvider is installed the instruments are no-ops.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
