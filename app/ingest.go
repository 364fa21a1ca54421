package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sweater-ventures/notifier/db"
	"github.com/sweater-ventures/notifier/metrics"
)

// SubmitEvent hands one event to the pipeline: match subscriptions, partition
// into buckets, and durably queue one notification per subscription ×
// delivery method. Each touched bucket is persisted in its own transaction
// guarded by the bucket's last-event idempotency check, so a redelivered
// event (crash between commit and ack) is skipped rather than duplicated.
// A returned error means a transient store failure; the caller must leave the
// source message unacknowledged.
func (a *Application) SubmitEvent(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	eventUuid, err := uuid.Parse(event.UUID)
	if err != nil {
		return fmt.Errorf("%w: uuid %q", ErrMalformedEvent, event.UUID)
	}
	eventID := pgtype.UUID{Bytes: eventUuid, Valid: true}

	logger := log(ctx).With("event_uuid", event.UUID, "tenant", event.Tenant, "type", event.Type)

	subscriptions, err := a.Subscriptions.GetSubscriptionsForEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("matching subscriptions: %w", err)
	}
	if len(subscriptions) == 0 {
		logger.Debug("No matching subscriptions for event")
		return nil
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	// Build per-bucket batches: one notification per subscription × method.
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	buckets := make(map[int32][]db.InsertNotificationParams)
	for _, sub := range subscriptions {
		methods, err := DecodeDeliveryMethods(sub.DeliveryMethods)
		if err != nil {
			logger.Error("Skipping subscription with undecodable delivery methods",
				"subscription_id", sub.ID, "error", err)
			continue
		}
		bucket := BucketOfSubscription(sub, a.Config.DeliveryWorkers)
		for _, dm := range methods {
			methodJSON, err := json.Marshal(dm)
			if err != nil {
				logger.Error("Skipping undecodable delivery method", "subscription_id", sub.ID, "error", err)
				continue
			}
			buckets[bucket] = append(buckets[bucket], db.InsertNotificationParams{
				Uuid:           NewUuid(),
				SubscrSeqID:    sub.SeqID,
				Tenant:         sub.Tenant,
				SubscriptionID: sub.ID,
				BucketNumber:   bucket,
				EventUuid:      eventID,
				Event:          eventJSON,
				DeliveryMethod: methodJSON,
				Created:        now,
			})
		}
	}

	for bucket, batch := range buckets {
		processed, err := a.alreadyProcessed(ctx, bucket, eventID)
		if err != nil {
			return fmt.Errorf("checking last-event marker for bucket %d: %w", bucket, err)
		}
		if processed {
			logger.Info("Event already processed for bucket, skipping", "bucket", bucket)
			metrics.EventsDuplicateTotal.Inc()
			continue
		}
		if err := a.Store.PersistBucket(ctx, bucket, eventID, batch); err != nil {
			return fmt.Errorf("persisting bucket %d: %w", bucket, err)
		}
		metrics.NotificationsPersistedTotal.Add(float64(len(batch)))
		a.EventBus.Publish(BusMessage{
			Type:         BusMessageIngested,
			Tenant:       event.Tenant,
			EventUUID:    event.UUID,
			EventType:    event.Type,
			Subject:      event.Subject,
			BucketNumber: bucket,
		})
	}

	// Notifications are durably queued; record them on any attached test
	// sequences so callers can verify end-to-end delivery without a real
	// recipient.
	a.captureTestSequences(ctx, event, subscriptions)

	// One-shot subscriptions: fire once, then unsubscribe everything in the
	// tenant listening on exactly this subject.
	if event.DeleteSubscriptionsMatchingSubject && event.Subject != "" {
		n, err := a.DB.DeleteSubscriptionsBySubjectFilter(ctx, db.DeleteSubscriptionsBySubjectFilterParams{
			Tenant:        event.Tenant,
			SubjectFilter: event.Subject,
		})
		if err != nil {
			// Notifications are already committed; the cleanup is best-effort.
			logger.Error("Failed to delete subscriptions matching subject", "subject", event.Subject, "error", err)
		} else if n > 0 {
			logger.Info("Deleted subscriptions matching subject", "subject", event.Subject, "count", n)
			a.Subscriptions.Flush()
		}
	}

	return nil
}

// alreadyProcessed reports whether the bucket's last-event marker already
// names this event. Detects broker redelivery only; it carries no ordering
// meaning beyond "this exact event was committed for this bucket".
func (a *Application) alreadyProcessed(ctx context.Context, bucketNumber int32, eventUuid pgtype.UUID) (bool, error) {
	last, err := a.DB.GetLastEvent(ctx, bucketNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return last.EventUuid == eventUuid, nil
}

func (a *Application) captureTestSequences(ctx context.Context, event Event, subscriptions []db.Subscription) {
	for _, sub := range subscriptions {
		key := sub.Tenant + "/" + sub.ID
		hasSeq, found, inCache := a.TestSeqCache.Get(key)
		if !inCache {
			_, err := a.DB.GetTestSequence(ctx, db.GetTestSequenceParams{
				Tenant:         sub.Tenant,
				SubscriptionID: sub.ID,
			})
			switch {
			case err == nil:
				hasSeq = true
			case errors.Is(err, pgx.ErrNoRows):
				hasSeq = false
			default:
				log(ctx).Error("Failed to look up test sequence", "subscription_id", sub.ID, "error", err)
				continue
			}
			a.TestSeqCache.Set(key, hasSeq, hasSeq)
		} else {
			hasSeq = hasSeq && found
		}
		if !hasSeq {
			continue
		}

		if err := a.AddTestSequenceNotification(ctx, sub.Tenant, sub.ID, event); err != nil {
			log(ctx).Error("Failed to append test sequence notification",
				"subscription_id", sub.ID, "error", err)
		}
	}
}
