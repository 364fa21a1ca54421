package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweater-ventures/notifier/app"
)

func newTestEvent(tenant string) app.Event {
	return app.Event{
		UUID:    uuid.Must(uuid.NewV7()).String(),
		Tenant:  tenant,
		Source:  "e2e",
		Type:    "billing.invoice.created",
		Subject: "invoices/42",
		Data:    []byte(`{"amount": 100}`),
	}
}

func createWebhookSubscription(t *testing.T, a *app.Application, tenant, id, address string) {
	t.Helper()
	_, err := a.CreateSubscription(context.Background(), tenant, app.SubscriptionRequest{
		ID:    id,
		Owner: "e2e",
		DeliveryMethods: []app.DeliveryMethod{
			{Method: app.MethodWebhook, Address: address},
		},
	})
	require.NoError(t, err)
}

func TestEndToEndDelivery(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	createWebhookSubscription(t, application, "acme", "e2e-sub", server.URL)
	event := newTestEvent("acme")

	require.NoError(t, application.SubmitEvent(context.Background(), event))
	assert.Equal(t, 1, countRows(t, "notifications"))

	bucket := app.BucketOf("acme", "e2e-sub", application.Config.DeliveryWorkers)
	app.NewDeliveryWorker(application, bucket).Sweep(context.Background())

	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, 0, countRows(t, "notifications"))
	assert.Equal(t, 0, countRows(t, "notifications_recovery"))
}

func TestIdempotentIngestion(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	createWebhookSubscription(t, application, "acme", "e2e-sub", "https://example.com/hook")
	event := newTestEvent("acme")

	require.NoError(t, application.SubmitEvent(context.Background(), event))
	require.NoError(t, application.SubmitEvent(context.Background(), event))
	assert.Equal(t, 1, countRows(t, "notifications"), "redelivered event must not duplicate notifications")

	// A different event is not a duplicate.
	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))
	assert.Equal(t, 2, countRows(t, "notifications"))
}

func TestTenantIsolation(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	createWebhookSubscription(t, application, "acme", "e2e-sub", "https://example.com/hook")

	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("other-tenant")))
	assert.Equal(t, 0, countRows(t, "notifications"), "events must not cross tenant boundaries")
}

func TestDeleteSubscriptionsMatchingSubject(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	_, err := application.CreateSubscription(context.Background(), "acme", app.SubscriptionRequest{
		ID:            "one-shot",
		Owner:         "e2e",
		SubjectFilter: "invoices/42",
		DeliveryMethods: []app.DeliveryMethod{
			{Method: app.MethodWebhook, Address: "https://example.com/hook"},
		},
	})
	require.NoError(t, err)

	event := newTestEvent("acme")
	event.DeleteSubscriptionsMatchingSubject = true
	require.NoError(t, application.SubmitEvent(context.Background(), event))

	// The notification was queued before the subscription was removed.
	assert.Equal(t, 1, countRows(t, "notifications"))
	assert.Equal(t, 0, countRows(t, "subscriptions"))
}

func TestSequenceCapture(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	createWebhookSubscription(t, application, "acme", "e2e-sub", "https://example.com/hook")
	_, err := application.CreateTestSequence(context.Background(), "acme", "e2e-sub", "qa")
	require.NoError(t, err)

	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))
	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))

	seq, err := application.GetTestSequence(context.Background(), "acme", "e2e-sub")
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq.NotificationCount)
	assert.Contains(t, string(seq.ReceivedNotifications), "billing.invoice.created")
}
