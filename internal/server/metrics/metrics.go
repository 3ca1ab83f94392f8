// Package metrics holds the server's Prometheus collectors and the handler
// serving them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// documentWrites counts document mutations.
	// Labels: op (partial_update, create_or_merge, create), result (ok, not_found, error)
	documentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petzy",
		Subsystem: "documents",
		Name:      "writes_total",
		Help:      "Total document mutations by operation and result",
	}, []string{"op", "result"})

	// writeOps counts individual field writes applied inside partial updates.
	// Labels: op (set, increment)
	writeOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petzy",
		Subsystem: "documents",
		Name:      "field_writes_total",
		Help:      "Total field writes applied by kind",
	}, []string{"op"})

	writeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "petzy",
		Subsystem: "documents",
		Name:      "write_duration_seconds",
		Help:      "Document mutation latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"op"})

	subscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "petzy",
		Subsystem: "hub",
		Name:      "subscribers",
		Help:      "Live document subscriptions",
	})

	// snapshotsDropped counts queued snapshots replaced by a newer one.
	snapshotsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "petzy",
		Subsystem: "hub",
		Name:      "snapshots_superseded_total",
		Help:      "Snapshots dropped because a newer one replaced them before delivery",
	})

	// authFailures counts rejected calls.
	// Labels: reason (missing_token, invalid_token, forbidden)
	authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petzy",
		Subsystem: "grpc",
		Name:      "auth_failures_total",
		Help:      "Calls rejected by the auth interceptor",
	}, []string{"reason"})
)

func ObserveWrite(op, result string, started time.Time) {
	documentWrites.WithLabelValues(op, result).Inc()
	writeLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func CountFieldWrite(op string) {
	writeOps.WithLabelValues(op).Inc()
}

func SubscriberAdded()   { subscribers.Inc() }
func SubscriberRemoved() { subscribers.Dec() }

func SnapshotSuperseded() { snapshotsDropped.Inc() }

func AuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
