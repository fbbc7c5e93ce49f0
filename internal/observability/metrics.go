// Package observability registers Prometheus collectors for the enrollment flow.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "signups_total",
		Help:      "Number of successful signups per activity.",
	}, []string{"activity"})

	withdrawalCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "withdrawals_total",
		Help:      "Number of successful unregistrations per activity.",
	}, []string{"activity"})

	rejectionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "rejections_total",
		Help:      "Number of rejected enrollment changes grouped by reason.",
	}, []string{"reason"})

	lastChangeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "last_change_timestamp_seconds",
		Help:      "Unix timestamp of the most recent roster change persisted to the store.",
	})
)

func init() {
	prometheus.MustRegister(signupCounter, withdrawalCounter, rejectionCounter, lastChangeGauge)
}

// RecordSignup counts a successful signup and advances the roster watermark.
func RecordSignup(activity string, ts time.Time) {
	signupCounter.WithLabelValues(activity).Inc()
	recordChange(ts)
}

// RecordWithdrawal counts a successful unregistration and advances the roster watermark.
func RecordWithdrawal(activity string, ts time.Time) {
	withdrawalCounter.WithLabelValues(activity).Inc()
	recordChange(ts)
}

// RecordRejection counts an enrollment change refused for the given reason.
func RecordRejection(reason string) {
	rejectionCounter.WithLabelValues(reason).Inc()
}

func recordChange(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastChangeGauge.Set(float64(ts.Unix()))
}
