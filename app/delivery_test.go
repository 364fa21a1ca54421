package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/sweater-ventures/notifier/app"
	"github.com/sweater-ventures/notifier/db"
	"github.com/sweater-ventures/notifier/testutil"
)

func TestDeliveryWorkerDeliversAndDeletes(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	store := new(testutil.MockStore)
	transport := new(testutil.MockTransport)
	a := testutil.NewTestApp(mockDB, store, transport)

	event := testutil.NewEvent()
	n := testutil.NewNotification(event)

	mockDB.On("ListNotificationsForBucket", mock.Anything, int32(0)).Return([]db.Notification{n}, nil)
	transport.On("Deliver", mock.Anything, app.DeliveryMethod{
		Method:  app.MethodWebhook,
		Address: "https://example.com/hook",
	}, mock.MatchedBy(func(e app.Event) bool { return e.UUID == event.UUID })).Return(nil)
	mockDB.On("DeleteNotification", mock.Anything, n.Uuid).Return(int64(1), nil)

	app.NewDeliveryWorker(a, 0).Sweep(context.Background())

	transport.AssertExpectations(t)
	mockDB.AssertExpectations(t)
	store.AssertNotCalled(t, "MoveToRecovery", mock.Anything, mock.Anything)
}

func TestDeliveryWorkerRetriesThenMovesToRecovery(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	store := new(testutil.MockStore)
	transport := new(testutil.MockTransport)
	a := testutil.NewTestApp(mockDB, store, transport)

	event := testutil.NewEvent()
	n := testutil.NewNotification(event)

	mockDB.On("ListNotificationsForBucket", mock.Anything, int32(0)).Return([]db.Notification{n}, nil)
	transport.On("Deliver", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	store.On("MoveToRecovery", mock.Anything, n).Return(nil)

	worker := app.NewDeliveryWorker(a, 0)

	// Attempts 1 and 2 fail but stay in the primary store.
	worker.Sweep(context.Background())
	worker.Sweep(context.Background())
	store.AssertNotCalled(t, "MoveToRecovery", mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "DeleteNotification", mock.Anything, mock.Anything)

	// Attempt 3 exhausts the budget.
	worker.Sweep(context.Background())
	store.AssertNumberOfCalls(t, "MoveToRecovery", 1)
	transport.AssertNumberOfCalls(t, "Deliver", 3)
}

func TestDeliveryWorkerMovesUndecodableToRecovery(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	store := new(testutil.MockStore)
	transport := new(testutil.MockTransport)
	a := testutil.NewTestApp(mockDB, store, transport)

	n := testutil.NewNotification(testutil.NewEvent(), func(n *db.Notification) {
		n.DeliveryMethod = []byte(`{broken`)
	})

	mockDB.On("ListNotificationsForBucket", mock.Anything, int32(0)).Return([]db.Notification{n}, nil)
	store.On("MoveToRecovery", mock.Anything, n).Return(nil)

	app.NewDeliveryWorker(a, 0).Sweep(context.Background())

	store.AssertExpectations(t)
	transport.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliveryWorkerKeepsRowOnDeleteFailure(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	store := new(testutil.MockStore)
	transport := new(testutil.MockTransport)
	a := testutil.NewTestApp(mockDB, store, transport)

	n := testutil.NewNotification(testutil.NewEvent())

	mockDB.On("ListNotificationsForBucket", mock.Anything, int32(0)).Return([]db.Notification{n}, nil)
	transport.On("Deliver", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockDB.On("DeleteNotification", mock.Anything, n.Uuid).Return(int64(0), errors.New("connection refused"))

	app.NewDeliveryWorker(a, 0).Sweep(context.Background())

	// The row stays put; the next sweep tries again.
	store.AssertNotCalled(t, "MoveToRecovery", mock.Anything, mock.Anything)
}

func TestDeliveryWorkerListErrorIsNonFatal(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	store := new(testutil.MockStore)
	transport := new(testutil.MockTransport)
	a := testutil.NewTestApp(mockDB, store, transport)

	mockDB.On("ListNotificationsForBucket", mock.Anything, int32(0)).
		Return([]db.Notification(nil), errors.New("connection refused"))

	assert.NotPanics(t, func() {
		app.NewDeliveryWorker(a, 0).Sweep(context.Background())
	})
	transport.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
}
