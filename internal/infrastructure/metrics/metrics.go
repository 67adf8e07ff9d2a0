package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Toggle outcome labels.
const (
	ResultCommitted   = "committed"
	ResultRolledBack  = "rolled_back"
	ResultInFlight    = "rejected_in_flight"
	ResultRateLimited = "rejected_rate_limited"
)

var (
	// TogglesTotal counts toggle calls by final outcome.
	TogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likesync_toggles_total",
		Help: "Toggle operations by outcome.",
	}, []string{"result"})

	// NetworkAttemptsTotal counts individual like/unlike network attempts,
	// including retries.
	NetworkAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "likesync_network_attempts_total",
		Help: "Like mutation network attempts, retries included.",
	})

	// RetriesTotal counts attempts that were retried after a retryable
	// failure.
	RetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "likesync_retries_total",
		Help: "Retries performed after retryable failures.",
	})

	// ToggleDuration observes end-to-end toggle latency, backoff included.
	ToggleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "likesync_toggle_duration_seconds",
		Help:    "End-to-end toggle duration.",
		Buckets: prometheus.DefBuckets,
	})
)
