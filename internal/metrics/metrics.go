package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paygate_webhook_verdicts_total",
		Help: "Total webhook verification verdicts, labelled by outcome.",
	}, []string{"verdict"})

	EventsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paygate_events_recorded_total",
		Help: "Total accepted events written to the event store.",
	})

	EventsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paygate_events_deduplicated_total",
		Help: "Total accepted events skipped as in-window redeliveries.",
	})

	VerificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "paygate_verification_duration_seconds",
		Help:    "End-to-end webhook verification latency.",
		Buckets: prometheus.DefBuckets,
	})
)
