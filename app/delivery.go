package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sweater-ventures/notifier/db"
	"github.com/sweater-ventures/notifier/metrics"
)

// DeliveryWorker drains one bucket of the notification store. Each worker owns
// its bucket exclusively, so no cross-worker locking is needed on the rows it
// scans. Attempt counts live in memory only; a restart resets them, which at
// worst grants a notification a fresh round of attempts.
type DeliveryWorker struct {
	app          *Application
	bucketNumber int32
	maxAttempts  int
	interval     time.Duration

	attempts map[[16]byte]int
}

func NewDeliveryWorker(app *Application, bucketNumber int32) *DeliveryWorker {
	return &DeliveryWorker{
		app:          app,
		bucketNumber: bucketNumber,
		maxAttempts:  app.Config.DeliveryMaxAttempts,
		interval:     time.Duration(app.Config.DeliveryRetrySeconds) * time.Second,
		attempts:     make(map[[16]byte]int),
	}
}

// Run scans the bucket once immediately and then on every tick until the
// context is cancelled.
func (w *DeliveryWorker) Run(ctx context.Context) {
	logger := log(ctx).With("worker", "delivery", "bucket", w.bucketNumber)
	logger.Info("Delivery worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Delivery worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep attempts every queued notification in the bucket once. Notifications
// that succeed are deleted; notifications that exhaust their in-memory attempt
// budget move to the recovery store.
func (w *DeliveryWorker) Sweep(ctx context.Context) {
	logger := log(ctx).With("worker", "delivery", "bucket", w.bucketNumber)

	notifications, err := w.app.DB.ListNotificationsForBucket(ctx, w.bucketNumber)
	if err != nil {
		logger.Error("Failed to list notifications for bucket", "error", err)
		return
	}
	if len(notifications) == 0 {
		w.pruneAttempts(nil)
		return
	}

	live := make(map[[16]byte]struct{}, len(notifications))
	for _, n := range notifications {
		if ctx.Err() != nil {
			return
		}
		live[n.Uuid.Bytes] = struct{}{}
		w.processNotification(ctx, n)
	}
	w.pruneAttempts(live)
}

func (w *DeliveryWorker) processNotification(ctx context.Context, n db.Notification) {
	logger := log(ctx).With(
		"worker", "delivery",
		"bucket", w.bucketNumber,
		"notification_uuid", UuidToString(n.Uuid),
		"tenant", n.Tenant,
		"subscription_id", n.SubscriptionID,
	)

	event, method, err := decodeNotification(n)
	if err != nil {
		// Undeliverable as stored; park it in recovery rather than retrying forever.
		logger.Error("Failed to decode stored notification, moving to recovery", "error", err)
		w.moveToRecovery(ctx, n, logger)
		return
	}

	start := time.Now()
	err = w.app.Transport.Deliver(ctx, method, event)
	metrics.DeliveryAttemptDuration.Observe(time.Since(start).Seconds())

	status := "succeeded"
	if err != nil {
		status = "failed"
	}
	metrics.DeliveryAttemptsTotal.WithLabelValues(status).Inc()
	w.app.EventBus.Publish(BusMessage{
		Type:           BusMessageDeliveryAttempt,
		Tenant:         n.Tenant,
		EventUUID:      UuidToString(n.EventUuid),
		EventType:      event.Type,
		Subject:        event.Subject,
		SubscriptionID: n.SubscriptionID,
		BucketNumber:   w.bucketNumber,
		DeliveryMethod: method.Method,
		Address:        method.Address,
		AttemptStatus:  status,
	})

	if err == nil {
		if _, derr := w.app.DB.DeleteNotification(ctx, n.Uuid); derr != nil {
			// Row survives; the idempotent recipient sees one extra delivery next sweep.
			logger.Error("Failed to delete delivered notification", "error", derr)
			return
		}
		delete(w.attempts, n.Uuid.Bytes)
		logger.Info("Notification delivered", "method", method.Method, "address", method.Address)
		return
	}

	w.attempts[n.Uuid.Bytes]++
	attempt := w.attempts[n.Uuid.Bytes]
	if attempt < w.maxAttempts {
		logger.Warn("Delivery attempt failed",
			"method", method.Method,
			"address", method.Address,
			"attempt", attempt,
			"max_attempts", w.maxAttempts,
			"error", err,
		)
		return
	}

	logger.Warn("Delivery attempts exhausted, moving to recovery",
		"method", method.Method,
		"address", method.Address,
		"attempts", attempt,
		"error", err,
	)
	w.moveToRecovery(ctx, n, logger)
}

func (w *DeliveryWorker) moveToRecovery(ctx context.Context, n db.Notification, logger *slog.Logger) {
	if err := w.app.Store.MoveToRecovery(ctx, n); err != nil {
		// Leave the row and its attempt count in place; next sweep retries the move.
		logger.Error("Failed to move notification to recovery", "error", err)
		return
	}
	delete(w.attempts, n.Uuid.Bytes)
	metrics.RecoveriesQueuedTotal.Inc()
	w.app.EventBus.Publish(BusMessage{
		Type:           BusMessageRecoveryQueued,
		Tenant:         n.Tenant,
		EventUUID:      UuidToString(n.EventUuid),
		SubscriptionID: n.SubscriptionID,
		BucketNumber:   w.bucketNumber,
	})
}

// pruneAttempts drops attempt counts for notifications no longer in the
// bucket, keeping the map from growing without bound.
func (w *DeliveryWorker) pruneAttempts(live map[[16]byte]struct{}) {
	for id := range w.attempts {
		if _, ok := live[id]; !ok {
			delete(w.attempts, id)
		}
	}
}

func decodeNotification(n db.Notification) (Event, DeliveryMethod, error) {
	var event Event
	if err := json.Unmarshal(n.Event, &event); err != nil {
		return Event{}, DeliveryMethod{}, err
	}
	var method DeliveryMethod
	if err := json.Unmarshal(n.DeliveryMethod, &method); err != nil {
		return Event{}, DeliveryMethod{}, err
	}
	return event, method, nil
}
