package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the dispatch pipeline.
var (
	EventsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_events_received_total",
			Help: "Total number of events consumed from the inbound queue",
		},
	)

	EventsMalformedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_events_malformed_total",
			Help: "Total number of malformed events dropped at the boundary",
		},
	)

	EventsDuplicateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_events_duplicate_total",
			Help: "Total number of bucket deliveries skipped by the idempotency check",
		},
	)

	NotificationsPersistedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_notifications_persisted_total",
			Help: "Total number of notification rows written by the ingestor",
		},
	)

	DeliveryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_delivery_attempts_total",
			Help: "Total delivery attempts by outcome",
		},
		[]string{"outcome"},
	)

	DeliveryAttemptDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notifier_delivery_attempt_duration_seconds",
			Help:    "Duration of individual delivery attempts",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecoveriesQueuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_recoveries_queued_total",
			Help: "Total number of notifications moved to the recovery store",
		},
	)

	DeadLettersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_dead_letters_total",
			Help: "Total number of recovery records abandoned after exhausting attempts",
		},
	)

	SubscriptionsReapedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_subscriptions_reaped_total",
			Help: "Total number of expired subscriptions deleted by the reaper",
		},
	)
)

// Register registers all pipeline metrics with the default registry.
func Register() {
	prometheus.MustRegister(
		EventsReceivedTotal,
		EventsMalformedTotal,
		EventsDuplicateTotal,
		NotificationsPersistedTotal,
		DeliveryAttemptsTotal,
		DeliveryAttemptDuration,
		RecoveriesQueuedTotal,
		DeadLettersTotal,
		SubscriptionsReapedTotal,
	)
}
