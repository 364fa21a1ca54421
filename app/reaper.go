package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sweater-ventures/notifier/db"
	"github.com/sweater-ventures/notifier/metrics"
)

// Reaper periodically deletes subscriptions whose expiry has passed. Deletion
// is unconditional: notifications already queued for a reaped subscription
// carry their own copy of the event and delivery method, so they still get
// delivered.
type Reaper struct {
	app      *Application
	interval time.Duration
}

func NewReaper(app *Application) *Reaper {
	return &Reaper{
		app:      app,
		interval: time.Duration(app.Config.ReaperIntervalMinutes) * time.Minute,
	}
}

// Run sweeps once immediately and then on every tick until the context is
// cancelled.
func (r *Reaper) Run(ctx context.Context) {
	logger := log(ctx).With("worker", "reaper")
	logger.Info("Subscription reaper started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep deletes every subscription whose expiry is in the past, along with
// any test sequence attached to it.
func (r *Reaper) Sweep(ctx context.Context) {
	logger := log(ctx).With("worker", "reaper")

	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	expired, err := r.app.DB.ListExpiredSubscriptions(ctx, now)
	if err != nil {
		logger.Error("Failed to list expired subscriptions", "error", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	var reaped int64
	for _, sub := range expired {
		if ctx.Err() != nil {
			break
		}
		n, err := r.app.DB.DeleteSubscription(ctx, db.DeleteSubscriptionParams{
			Tenant: sub.Tenant,
			ID:     sub.ID,
		})
		if err != nil {
			logger.Error("Failed to reap expired subscription",
				"tenant", sub.Tenant, "subscription_id", sub.ID, "error", err)
			continue
		}
		if n == 0 {
			continue
		}
		reaped += n

		if _, err := r.app.DB.DeleteTestSequence(ctx, db.DeleteTestSequenceParams{
			Tenant:         sub.Tenant,
			SubscriptionID: sub.ID,
		}); err != nil {
			logger.Error("Failed to delete test sequence for reaped subscription",
				"tenant", sub.Tenant, "subscription_id", sub.ID, "error", err)
		}

		logger.Info("Reaped expired subscription",
			"tenant", sub.Tenant, "subscription_id", sub.ID, "expiry", sub.Expiry.Time)
		metrics.SubscriptionsReapedTotal.Inc()
		r.app.EventBus.Publish(BusMessage{
			Type:           BusMessageReaped,
			Tenant:         sub.Tenant,
			SubscriptionID: sub.ID,
		})
	}

	if reaped > 0 {
		r.app.Subscriptions.Flush()
		r.app.TestSeqCache.Flush()
	}
}
