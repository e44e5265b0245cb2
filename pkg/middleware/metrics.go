package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/navrouter/pkg/history"
	"github.com/vango-dev/navrouter/pkg/router"
	"github.com/vango-dev/navrouter/pkg/routepath"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navrouter").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "navrouter",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec
	bridgeSessions     prometheus.Gauge
	bridgeMessages     *prometheus.CounterVec
	wsErrors           *prometheus.CounterVec
}

// globalMetrics is created by the first call to Prometheus.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds, including reconciliation",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of failed navigations by kind and error type",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "error_type"}),

		bridgeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bridge_sessions",
			Help:        "Number of connected browser bridge sessions",
			ConstLabels: config.ConstLabels,
		}),

		bridgeMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bridge_messages_total",
			Help:        "Total bridge messages by direction and op",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "op"}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates middleware that collects navigation metrics.
//
// Metrics collected:
//   - navrouter_navigations_total: navigations by kind and status
//   - navrouter_navigation_duration_seconds: navigation duration by kind
//   - navrouter_navigation_errors_total: failures by kind and error type
//   - navrouter_bridge_sessions: connected bridge sessions
//   - navrouter_bridge_messages_total: bridge messages by direction and op
//   - navrouter_websocket_errors_total: WebSocket errors by type
//
// Labels use the navigation kind, not the URL, to keep cardinality bounded.
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return router.MiddlewareFunc(func(ctx context.Context, nav router.Navigation, next func() error) error {
		kind := string(nav.Kind)
		start := time.Now()

		err := next()

		m.navigationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.navigationErrors.WithLabelValues(kind, categorizeError(err)).Inc()
		}
		m.navigationsTotal.WithLabelValues(kind, status).Inc()
		return err
	})
}

// categorizeError maps an error to a bounded label value.
func categorizeError(err error) string {
	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, routepath.ErrMalformedURL):
		return "malformed_url"
	case errors.Is(err, history.ErrCrossOrigin):
		return "cross_origin"
	case errors.Is(err, history.ErrUnavailable):
		return "disconnected"
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &timeout) && timeout.Timeout():
		return "timeout"
	default:
		return "internal"
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordBridgeSessionOpen records a browser connecting to the bridge.
func RecordBridgeSessionOpen() {
	if m := current(); m != nil {
		m.bridgeSessions.Inc()
	}
}

// RecordBridgeSessionClose records a browser disconnecting.
func RecordBridgeSessionClose() {
	if m := current(); m != nil {
		m.bridgeSessions.Dec()
	}
}

// RecordBridgeMessage records one bridge message. direction is "in" or "out".
func RecordBridgeMessage(direction, op string) {
	if m := current(); m != nil {
		m.bridgeMessages.WithLabelValues(direction, op).Inc()
	}
}

// RecordWebSocketError records a WebSocket error.
func RecordWebSocketError(errorType string) {
	if m := current(); m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}

func current() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}
