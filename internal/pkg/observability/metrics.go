package observability

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "saathi_trips"

var (
	TripTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "transitions_total", Help: "Trip status transitions applied"},
		[]string{"to"},
	)
	TripTransitionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "transition_conflicts_total", Help: "Transitions rejected because the stored status had moved on"},
		[]string{"to"},
	)

	LocationUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "location_updates_total", Help: "Location updates by outcome"},
		[]string{"outcome"},
	)
	LocationPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "location_persist_failures_total", Help: "Location writes that failed after all retries"},
	)

	DistressAlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "distress_alerts_total", Help: "Distress incidents recorded and broadcast"},
	)
	DistressPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "distress_persist_failures_total", Help: "Distress triggers rejected because the incident could not be recorded"},
	)

	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "realtime_connections", Help: "Live realtime sessions"},
	)
	RealtimeSlowConsumers = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "realtime_slow_consumers_total", Help: "Sessions closed because their send buffer was full"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Location update outcomes
const (
	OutcomeBroadcast = "broadcast"
	OutcomeDropped   = "dropped"
	OutcomeRejected  = "rejected"
)

// MetricsMiddleware records request count and latency per route template
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				status = he.Code
			}
			labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}
			HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the default registry for scraping
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
