package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweater-ventures/notifier/app"
)

func TestReaperRemovesExpiredSubscriptions(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	// One subscription with a TTL, one without.
	_, err := application.CreateSubscription(context.Background(), "acme", app.SubscriptionRequest{
		ID:         "short-lived",
		Owner:      "e2e",
		TTLMinutes: 1,
		DeliveryMethods: []app.DeliveryMethod{
			{Method: app.MethodWebhook, Address: "https://example.com/hook"},
		},
	})
	require.NoError(t, err)
	createWebhookSubscription(t, application, "acme", "immortal", "https://example.com/hook")

	// Not expired yet: the reaper leaves both alone.
	app.NewReaper(application).Sweep(context.Background())
	assert.Equal(t, 2, countRows(t, "subscriptions"))

	// Push the expiry into the past.
	_, err = testPool.Exec(context.Background(),
		"UPDATE subscriptions SET expiry = now() - interval '1 minute' WHERE id = 'short-lived'")
	require.NoError(t, err)

	app.NewReaper(application).Sweep(context.Background())
	assert.Equal(t, 1, countRows(t, "subscriptions"))

	_, err = application.GetSubscription(context.Background(), "acme", "short-lived")
	assert.ErrorIs(t, err, app.ErrNotFound)
	_, err = application.GetSubscription(context.Background(), "acme", "immortal")
	assert.NoError(t, err)
}

func TestExpiredSubscriptionStopsMatchingBeforeReaping(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	createWebhookSubscription(t, application, "acme", "stale", "https://example.com/hook")
	_, err := testPool.Exec(context.Background(),
		"UPDATE subscriptions SET expiry = now() - interval '1 minute' WHERE id = 'stale'")
	require.NoError(t, err)
	application.Subscriptions.Flush()

	// Expiry filters at match time even before the reaper runs.
	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))
	assert.Equal(t, 0, countRows(t, "notifications"))
}

func TestReaperDeletesAttachedTestSequence(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	createWebhookSubscription(t, application, "acme", "seq-sub", "https://example.com/hook")
	_, err := application.CreateTestSequence(context.Background(), "acme", "seq-sub", "qa")
	require.NoError(t, err)

	_, err = testPool.Exec(context.Background(),
		"UPDATE subscriptions SET expiry = now() - interval '1 minute' WHERE id = 'seq-sub'")
	require.NoError(t, err)

	app.NewReaper(application).Sweep(context.Background())
	assert.Equal(t, 0, countRows(t, "subscriptions"))
	assert.Equal(t, 0, countRows(t, "test_sequences"))
}
