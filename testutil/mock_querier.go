package testutil

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
	"github.com/sweater-ventures/notifier/db"
)

// MockQuerier is a testify mock implementation of db.Querier.
type MockQuerier struct {
	mock.Mock
}

var _ db.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) AppendTestSequenceNotification(ctx context.Context, arg db.AppendTestSequenceNotificationParams) (db.TestSequence, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.TestSequence), args.Error(1)
}

func (m *MockQuerier) CreateSubscription(ctx context.Context, arg db.CreateSubscriptionParams) (db.Subscription, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Subscription), args.Error(1)
}

func (m *MockQuerier) CreateTestSequence(ctx context.Context, arg db.CreateTestSequenceParams) (db.TestSequence, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.TestSequence), args.Error(1)
}

func (m *MockQuerier) DeleteNotification(ctx context.Context, uuid pgtype.UUID) (int64, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) DeleteRecoveryRecord(ctx context.Context, uuid pgtype.UUID) (int64, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) DeleteSubscription(ctx context.Context, arg db.DeleteSubscriptionParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) DeleteSubscriptionsBySubjectFilter(ctx context.Context, arg db.DeleteSubscriptionsBySubjectFilterParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) DeleteTestSequence(ctx context.Context, arg db.DeleteTestSequenceParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) GetLastEvent(ctx context.Context, bucketNumber int32) (db.LastEvent, error) {
	args := m.Called(ctx, bucketNumber)
	return args.Get(0).(db.LastEvent), args.Error(1)
}

func (m *MockQuerier) GetSubscription(ctx context.Context, arg db.GetSubscriptionParams) (db.Subscription, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Subscription), args.Error(1)
}

func (m *MockQuerier) GetTestSequence(ctx context.Context, arg db.GetTestSequenceParams) (db.TestSequence, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.TestSequence), args.Error(1)
}

func (m *MockQuerier) InsertNotification(ctx context.Context, arg db.InsertNotificationParams) (db.Notification, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Notification), args.Error(1)
}

func (m *MockQuerier) InsertRecoveryRecord(ctx context.Context, arg db.InsertRecoveryRecordParams) (db.RecoveryRecord, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.RecoveryRecord), args.Error(1)
}

func (m *MockQuerier) ListAllSubscriptions(ctx context.Context) ([]db.Subscription, error) {
	args := m.Called(ctx)
	return args.Get(0).([]db.Subscription), args.Error(1)
}

func (m *MockQuerier) ListExpiredSubscriptions(ctx context.Context, expiry pgtype.Timestamptz) ([]db.Subscription, error) {
	args := m.Called(ctx, expiry)
	return args.Get(0).([]db.Subscription), args.Error(1)
}

func (m *MockQuerier) ListNotificationsForBucket(ctx context.Context, bucketNumber int32) ([]db.Notification, error) {
	args := m.Called(ctx, bucketNumber)
	return args.Get(0).([]db.Notification), args.Error(1)
}

func (m *MockQuerier) ListRecoveryRecordsForBucket(ctx context.Context, bucketNumber int32) ([]db.RecoveryRecord, error) {
	args := m.Called(ctx, bucketNumber)
	return args.Get(0).([]db.RecoveryRecord), args.Error(1)
}

func (m *MockQuerier) ListSubscriptionsForTenant(ctx context.Context, tenant string) ([]db.Subscription, error) {
	args := m.Called(ctx, tenant)
	return args.Get(0).([]db.Subscription), args.Error(1)
}

func (m *MockQuerier) UpdateRecoveryAttempt(ctx context.Context, arg db.UpdateRecoveryAttemptParams) (db.RecoveryRecord, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.RecoveryRecord), args.Error(1)
}

func (m *MockQuerier) UpdateSubscription(ctx context.Context, arg db.UpdateSubscriptionParams) (db.Subscription, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Subscription), args.Error(1)
}

func (m *MockQuerier) UpdateSubscriptionEnabled(ctx context.Context, arg db.UpdateSubscriptionEnabledParams) (db.Subscription, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Subscription), args.Error(1)
}

func (m *MockQuerier) UpdateSubscriptionOwner(ctx context.Context, arg db.UpdateSubscriptionOwnerParams) (db.Subscription, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Subscription), args.Error(1)
}

func (m *MockQuerier) UpdateSubscriptionTTL(ctx context.Context, arg db.UpdateSubscriptionTTLParams) (db.Subscription, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Subscription), args.Error(1)
}

func (m *MockQuerier) UpsertLastEvent(ctx context.Context, arg db.UpsertLastEventParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
