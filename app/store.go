package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sweater-ventures/notifier/db"
)

// TxStore covers the two multi-row writes that must be atomic: the ingestor's
// per-bucket persist and the delivery worker's move-to-recovery transition.
// Everything else goes through db.Querier directly.
type TxStore interface {
	// PersistBucket inserts all notification rows for one bucket of one event
	// and upserts the bucket's last-event marker, in a single transaction.
	PersistBucket(ctx context.Context, bucketNumber int32, eventUuid pgtype.UUID, batch []db.InsertNotificationParams) error
	// MoveToRecovery atomically deletes an exhausted notification and inserts
	// the corresponding recovery record with attempt_count = 0.
	MoveToRecovery(ctx context.Context, n db.Notification) error
}

// PgxStore implements TxStore on a pgx connection pool.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

func (s *PgxStore) PersistBucket(ctx context.Context, bucketNumber int32, eventUuid pgtype.UUID, batch []db.InsertNotificationParams) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning persist transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := db.New(tx)
	for _, params := range batch {
		if _, err := q.InsertNotification(ctx, params); err != nil {
			return fmt.Errorf("inserting notification: %w", err)
		}
	}
	if err := q.UpsertLastEvent(ctx, db.UpsertLastEventParams{
		BucketNumber: bucketNumber,
		EventUuid:    eventUuid,
	}); err != nil {
		return fmt.Errorf("upserting last-event marker: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing persist transaction: %w", err)
	}
	return nil
}

func (s *PgxStore) MoveToRecovery(ctx context.Context, n db.Notification) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning recovery transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := db.New(tx)
	if _, err := q.DeleteNotification(ctx, n.Uuid); err != nil {
		return fmt.Errorf("deleting exhausted notification: %w", err)
	}
	if _, err := q.InsertRecoveryRecord(ctx, db.InsertRecoveryRecordParams{
		Uuid:           n.Uuid,
		SubscrSeqID:    n.SubscrSeqID,
		Tenant:         n.Tenant,
		SubscriptionID: n.SubscriptionID,
		BucketNumber:   n.BucketNumber,
		EventUuid:      n.EventUuid,
		Event:          n.Event,
		DeliveryMethod: n.DeliveryMethod,
		AttemptCount:   0,
		LastAttempt:    pgtype.Timestamptz{},
		Created:        pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	}); err != nil {
		return fmt.Errorf("inserting recovery record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing recovery transaction: %w", err)
	}
	return nil
}
