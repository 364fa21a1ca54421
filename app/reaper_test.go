package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/sweater-ventures/notifier/app"
	"github.com/sweater-ventures/notifier/db"
	"github.com/sweater-ventures/notifier/testutil"
)

func TestReaperDeletesExpiredSubscriptions(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	a := testutil.NewTestApp(mockDB, new(testutil.MockStore), new(testutil.MockTransport))

	expired := testutil.NewSubscription(func(s *db.Subscription) {
		s.Expiry = pgtype.Timestamptz{Time: time.Now().Add(-time.Hour), Valid: true}
	})

	mockDB.On("ListExpiredSubscriptions", mock.Anything, mock.Anything).Return([]db.Subscription{expired}, nil)
	mockDB.On("DeleteSubscription", mock.Anything, db.DeleteSubscriptionParams{
		Tenant: expired.Tenant,
		ID:     expired.ID,
	}).Return(int64(1), nil)
	mockDB.On("DeleteTestSequence", mock.Anything, db.DeleteTestSequenceParams{
		Tenant:         expired.Tenant,
		SubscriptionID: expired.ID,
	}).Return(int64(0), nil)

	app.NewReaper(a).Sweep(context.Background())

	mockDB.AssertExpectations(t)
}

func TestReaperNoExpiredSubscriptions(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	a := testutil.NewTestApp(mockDB, new(testutil.MockStore), new(testutil.MockTransport))

	mockDB.On("ListExpiredSubscriptions", mock.Anything, mock.Anything).Return([]db.Subscription{}, nil)

	app.NewReaper(a).Sweep(context.Background())

	mockDB.AssertNotCalled(t, "DeleteSubscription", mock.Anything, mock.Anything)
}

func TestReaperContinuesPastDeleteFailure(t *testing.T) {
	mockDB := new(testutil.MockQuerier)
	a := testutil.NewTestApp(mockDB, new(testutil.MockStore), new(testutil.MockTransport))

	first := testutil.NewSubscription(func(s *db.Subscription) {
		s.ID = "sub-1"
		s.Expiry = pgtype.Timestamptz{Time: time.Now().Add(-time.Hour), Valid: true}
	})
	second := testutil.NewSubscription(func(s *db.Subscription) {
		s.ID = "sub-2"
		s.Expiry = pgtype.Timestamptz{Time: time.Now().Add(-time.Hour), Valid: true}
	})

	mockDB.On("ListExpiredSubscriptions", mock.Anything, mock.Anything).
		Return([]db.Subscription{first, second}, nil)
	mockDB.On("DeleteSubscription", mock.Anything, db.DeleteSubscriptionParams{
		Tenant: first.Tenant,
		ID:     first.ID,
	}).Return(int64(0), errors.New("connection refused"))
	mockDB.On("DeleteSubscription", mock.Anything, db.DeleteSubscriptionParams{
		Tenant: second.Tenant,
		ID:     second.ID,
	}).Return(int64(1), nil)
	mockDB.On("DeleteTestSequence", mock.Anything, db.DeleteTestSequenceParams{
		Tenant:         second.Tenant,
		SubscriptionID: second.ID,
	}).Return(int64(1), nil)

	assert.NotPanics(t, func() {
		app.NewReaper(a).Sweep(context.Background())
	})
	mockDB.AssertExpectations(t)
}
