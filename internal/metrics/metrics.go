// Package metrics exposes the Prometheus collectors of the storefront.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Storefront metrics
	CartOperationsCounter *prometheus.CounterVec
	CheckoutLinksCounter  prometheus.Counter
	CustomizerCommits     prometheus.Counter

	// Back-office metrics
	AdminWritesCounter    *prometheus.CounterVec
	NotificationsCounter  *prometheus.CounterVec
	LowStockProductsGauge prometheus.Gauge
	DBOperationDuration   *prometheus.HistogramVec
	AuthAttemptsCounter   *prometheus.CounterVec

	initOnce sync.Once
)

// Init registers every collector under prefix. Later calls are no-ops.
func Init(prefix string) {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		CartOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_cart_operations_total",
				Help: "Cart operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		)

		CheckoutLinksCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_checkout_links_total",
				Help: "WhatsApp checkout links generated",
			},
		)

		CustomizerCommits = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_customizer_commits_total",
				Help: "Custom rosaries added to a cart",
			},
		)

		AdminWritesCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_admin_writes_total",
				Help: "Back-office writes by collection and sync outcome",
			},
			[]string{"collection", "status"},
		)

		NotificationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_notifications_total",
				Help: "Sale notifications by outcome",
			},
			[]string{"outcome"},
		)

		LowStockProductsGauge = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_low_stock_products",
				Help: "Products at or below the low stock threshold at the last digest",
			},
		)

		DBOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		AuthAttemptsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Admin login attempts by outcome",
			},
			[]string{"outcome"},
		)
	})
}

// The helpers below do nothing until Init has run, so packages can record
// unconditionally.

func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordCartOperation(operation, outcome string) {
	if CartOperationsCounter != nil {
		CartOperationsCounter.WithLabelValues(operation, outcome).Inc()
	}
}

func RecordCheckoutLink() {
	if CheckoutLinksCounter != nil {
		CheckoutLinksCounter.Inc()
	}
}

func RecordCustomizerCommit() {
	if CustomizerCommits != nil {
		CustomizerCommits.Inc()
	}
}

func RecordAdminWrite(collection, status string) {
	if AdminWritesCounter != nil {
		AdminWritesCounter.WithLabelValues(collection, status).Inc()
	}
}

func RecordNotification(outcome string) {
	if NotificationsCounter != nil {
		NotificationsCounter.WithLabelValues(outcome).Inc()
	}
}

func SetLowStockProducts(n int) {
	if LowStockProductsGauge != nil {
		LowStockProductsGauge.Set(float64(n))
	}
}

func RecordAuthAttempt(outcome string) {
	if AuthAttemptsCounter != nil {
		AuthAttemptsCounter.WithLabelValues(outcome).Inc()
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DBOperationDuration != nil {
			DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
		}
	}
}
