// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "owlturf"

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	HTTPInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	walletTransactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "transactions_total",
			Help:      "Wallet transactions by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	gameMembership = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "membership_changes_total",
			Help:      "Game joins, leaves, cancellations and scheduled transitions.",
		},
		[]string{"action"},
	)

	reelEngagement = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reels",
			Name:      "engagement_total",
			Help:      "Reel views, likes, comments and shares.",
		},
		[]string{"action"},
	)

	filesUploaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "files",
			Name:      "uploaded_total",
			Help:      "Files stored per bucket.",
		},
		[]string{"bucket"},
	)

	fileBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "files",
			Name:      "upload_bytes_total",
			Help:      "Bytes stored per bucket.",
		},
		[]string{"bucket"},
	)
)

func init() {
	Registry.MustRegister(
		HTTPInFlight,
		HTTPRequests,
		HTTPDuration,
		walletTransactions,
		gameMembership,
		reelEngagement,
		filesUploaded,
		fileBytes,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordWalletTransaction(txType, outcome string) {
	walletTransactions.WithLabelValues(txType, outcome).Inc()
}

func RecordGameMembership(action string) {
	gameMembership.WithLabelValues(action).Inc()
}

func RecordReelEngagement(action string) {
	reelEngagement.WithLabelValues(action).Inc()
}

func RecordUpload(bucket string, size int64) {
	filesUploaded.WithLabelValues(bucket).Inc()
	fileBytes.WithLabelValues(bucket).Add(float64(size))
}
