package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweater-ventures/notifier/app"
)

func TestRetryThenRecovery(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	var respond atomic.Int32
	respond.Store(http.StatusInternalServerError)
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(int(respond.Load()))
	}))
	defer server.Close()

	createWebhookSubscription(t, application, "acme", "flaky-sub", server.URL)
	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))

	bucket := app.BucketOf("acme", "flaky-sub", application.Config.DeliveryWorkers)
	worker := app.NewDeliveryWorker(application, bucket)

	// Attempts 1 and 2 fail; the notification stays in the primary store.
	worker.Sweep(context.Background())
	worker.Sweep(context.Background())
	assert.Equal(t, 1, countRows(t, "notifications"))
	assert.Equal(t, 0, countRows(t, "notifications_recovery"))

	// Attempt 3 exhausts the fast budget and moves the row to recovery with
	// a fresh attempt count.
	worker.Sweep(context.Background())
	assert.Equal(t, int64(3), hits.Load())
	assert.Equal(t, 0, countRows(t, "notifications"))
	assert.Equal(t, 1, countRows(t, "notifications_recovery"))

	var attemptCount int32
	require.NoError(t, testPool.QueryRow(context.Background(),
		"SELECT attempt_count FROM notifications_recovery").Scan(&attemptCount))
	assert.Equal(t, int32(0), attemptCount)

	// A failed recovery attempt is persisted, unlike the in-memory fast path.
	recovery := app.NewRecoveryWorker(application, bucket)
	recovery.Sweep(context.Background())
	require.NoError(t, testPool.QueryRow(context.Background(),
		"SELECT attempt_count FROM notifications_recovery").Scan(&attemptCount))
	assert.Equal(t, int32(1), attemptCount)

	// Once the endpoint heals, the next sweep drains the record.
	respond.Store(http.StatusOK)
	recovery.Sweep(context.Background())
	assert.Equal(t, 0, countRows(t, "notifications_recovery"))
}

func TestRecoveryExhaustionDeadLetters(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	createWebhookSubscription(t, application, "acme", "dead-sub", server.URL)
	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))

	bucket := app.BucketOf("acme", "dead-sub", application.Config.DeliveryWorkers)
	worker := app.NewDeliveryWorker(application, bucket)
	for i := 0; i < application.Config.DeliveryMaxAttempts; i++ {
		worker.Sweep(context.Background())
	}
	require.Equal(t, 1, countRows(t, "notifications_recovery"))

	// One failure away from the recovery bound.
	_, err := testPool.Exec(context.Background(),
		"UPDATE notifications_recovery SET attempt_count = $1",
		application.Config.RecoveryMaxAttempts-1)
	require.NoError(t, err)

	app.NewRecoveryWorker(application, bucket).Sweep(context.Background())
	assert.Equal(t, 0, countRows(t, "notifications_recovery"), "exhausted record must be dead-lettered")
	assert.Equal(t, 0, countRows(t, "notifications"))
}

func TestDeliveryResumesFromStoreAfterRestart(t *testing.T) {
	resetTables(t)
	application := newE2EApp()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	createWebhookSubscription(t, application, "acme", "resume-sub", server.URL)
	require.NoError(t, application.SubmitEvent(context.Background(), newTestEvent("acme")))

	// A fresh application sees the queued notification purely from the
	// store, as after a process restart.
	restarted := newE2EApp()
	bucket := app.BucketOf("acme", "resume-sub", restarted.Config.DeliveryWorkers)
	app.NewDeliveryWorker(restarted, bucket).Sweep(context.Background())

	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, 0, countRows(t, "notifications"))
}
