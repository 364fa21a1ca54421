package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sweater-ventures/notifier/db"
	"github.com/sweater-ventures/notifier/metrics"
)

// RecoveryWorker retries notifications that exhausted their fast delivery
// attempts. Unlike the delivery workers it persists attempt counts, so the
// slow retry budget survives restarts. A record that exhausts the budget is
// dead-lettered: deleted and logged, never retried again.
type RecoveryWorker struct {
	app          *Application
	bucketNumber int32
	maxAttempts  int
	interval     time.Duration
}

func NewRecoveryWorker(app *Application, bucketNumber int32) *RecoveryWorker {
	return &RecoveryWorker{
		app:          app,
		bucketNumber: bucketNumber,
		maxAttempts:  app.Config.RecoveryMaxAttempts,
		interval:     time.Duration(app.Config.RecoveryRetryMinutes) * time.Minute,
	}
}

// Run scans the bucket once immediately and then on every tick until the
// context is cancelled.
func (w *RecoveryWorker) Run(ctx context.Context) {
	logger := log(ctx).With("worker", "recovery", "bucket", w.bucketNumber)
	logger.Info("Recovery worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Recovery worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep attempts every recovery record in the bucket once.
func (w *RecoveryWorker) Sweep(ctx context.Context) {
	logger := log(ctx).With("worker", "recovery", "bucket", w.bucketNumber)

	records, err := w.app.DB.ListRecoveryRecordsForBucket(ctx, w.bucketNumber)
	if err != nil {
		logger.Error("Failed to list recovery records for bucket", "error", err)
		return
	}

	for _, r := range records {
		if ctx.Err() != nil {
			return
		}
		w.processRecord(ctx, r)
	}
}

func (w *RecoveryWorker) processRecord(ctx context.Context, r db.RecoveryRecord) {
	logger := log(ctx).With(
		"worker", "recovery",
		"bucket", w.bucketNumber,
		"notification_uuid", UuidToString(r.Uuid),
		"tenant", r.Tenant,
		"subscription_id", r.SubscriptionID,
	)

	event, method, err := decodeNotification(db.Notification{
		Event:          r.Event,
		DeliveryMethod: r.DeliveryMethod,
	})
	if err != nil {
		logger.Error("Dead-lettering undecodable recovery record", "error", err)
		w.deadLetter(ctx, r, logger)
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
		Tenant:         r.Tenant,
		EventUUID:      UuidToString(r.EventUuid),
		EventType:      event.Type,
		Subject:        event.Subject,
		SubscriptionID: r.SubscriptionID,
		BucketNumber:   w.bucketNumber,
		DeliveryMethod: method.Method,
		Address:        method.Address,
		AttemptStatus:  status,
	})

	if err == nil {
		if _, derr := w.app.DB.DeleteRecoveryRecord(ctx, r.Uuid); derr != nil {
			logger.Error("Failed to delete recovered notification", "error", derr)
			return
		}
		logger.Info("Notification recovered", "method", method.Method, "address", method.Address,
			"attempt", r.AttemptCount+1)
		return
	}

	newCount := r.AttemptCount + 1
	if int(newCount) >= w.maxAttempts {
		logger.Warn("Recovery attempts exhausted, dead-lettering notification",
			"method", method.Method,
			"address", method.Address,
			"attempts", newCount,
			"error", err,
		)
		w.deadLetter(ctx, r, logger)
		return
	}

	logger.Warn("Recovery attempt failed",
		"method", method.Method,
		"address", method.Address,
		"attempt", newCount,
		"max_attempts", w.maxAttempts,
		"error", err,
	)
	_, uerr := w.app.DB.UpdateRecoveryAttempt(ctx, db.UpdateRecoveryAttemptParams{
		Uuid:         r.Uuid,
		AttemptCount: newCount,
		LastAttempt:  pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	})
	if uerr != nil {
		logger.Error("Failed to record recovery attempt", "error", uerr)
	}
}

func (w *RecoveryWorker) deadLetter(ctx context.Context, r db.RecoveryRecord, logger *slog.Logger) {
	if _, err := w.app.DB.DeleteRecoveryRecord(ctx, r.Uuid); err != nil {
		logger.Error("Failed to delete dead-lettered recovery record", "error", err)
		return
	}
	metrics.DeadLettersTotal.Inc()
	w.app.EventBus.Publish(BusMessage{
		Type:           BusMessageDeadLetter,
		Tenant:         r.Tenant,
		EventUUID:      UuidToString(r.EventUuid),
		SubscriptionID: r.SubscriptionID,
		BucketNumber:   w.bucketNumber,
	})
}
