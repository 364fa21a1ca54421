package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sweater-ventures/notifier/db"
)

// Test sequences record, per subscription, the events that produced
// notifications. A sequence only exists when a caller explicitly creates one;
// the ingestor appends to existing sequences and ignores subscriptions
// without one.

// CreateTestSequence attaches an empty test sequence to a subscription.
// The subscription must exist.
func (a *Application) CreateTestSequence(ctx context.Context, tenant, subscriptionID, owner string) (db.TestSequence, error) {
	if _, err := a.GetSubscription(ctx, tenant, subscriptionID); err != nil {
		return db.TestSequence{}, err
	}

	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	seq, err := a.DB.CreateTestSequence(ctx, db.CreateTestSequenceParams{
		Tenant:         tenant,
		Owner:          owner,
		SubscriptionID: subscriptionID,
		Created:        now,
		Updated:        now,
	})
	if err != nil {
		return db.TestSequence{}, fmt.Errorf("creating test sequence: %w", err)
	}
	a.TestSeqCache.Set(tenant+"/"+subscriptionID, true, true)
	return seq, nil
}

// GetTestSequence returns the test sequence for a subscription, or ErrNotFound.
func (a *Application) GetTestSequence(ctx context.Context, tenant, subscriptionID string) (db.TestSequence, error) {
	seq, err := a.DB.GetTestSequence(ctx, db.GetTestSequenceParams{
		Tenant:         tenant,
		SubscriptionID: subscriptionID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.TestSequence{}, ErrNotFound
	}
	if err != nil {
		return db.TestSequence{}, fmt.Errorf("getting test sequence: %w", err)
	}
	return seq, nil
}

// DeleteTestSequence removes a subscription's test sequence.
func (a *Application) DeleteTestSequence(ctx context.Context, tenant, subscriptionID string) error {
	n, err := a.DB.DeleteTestSequence(ctx, db.DeleteTestSequenceParams{
		Tenant:         tenant,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		return fmt.Errorf("deleting test sequence: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	a.TestSeqCache.Set(tenant+"/"+subscriptionID, false, false)
	return nil
}

// testSequenceEntry is what gets appended to a sequence's notification list.
type testSequenceEntry struct {
	EventUUID string    `json:"event_uuid"`
	EventType string    `json:"event_type"`
	Subject   string    `json:"subject,omitempty"`
	Received  time.Time `json:"received"`
}

// AddTestSequenceNotification appends one received event to a subscription's
// test sequence.
func (a *Application) AddTestSequenceNotification(ctx context.Context, tenant, subscriptionID string, event Event) error {
	entry, err := json.Marshal(testSequenceEntry{
		EventUUID: event.UUID,
		EventType: event.Type,
		Subject:   event.Subject,
		Received:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding test sequence entry: %w", err)
	}

	_, err = a.DB.AppendTestSequenceNotification(ctx, db.AppendTestSequenceNotificationParams{
		Tenant:         tenant,
		SubscriptionID: subscriptionID,
		Notification:   entry,
		Updated:        pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		// Sequence was deleted since the cache lookup; forget the stale entry.
		a.TestSeqCache.Set(tenant+"/"+subscriptionID, false, false)
		return nil
	}
	if err != nil {
		return fmt.Errorf("appending test sequence notification: %w", err)
	}
	return nil
}
