package testutil

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
	"github.com/sweater-ventures/notifier/app"
	"github.com/sweater-ventures/notifier/db"
)

// MockStore is a testify mock implementation of app.TxStore.
type MockStore struct {
	mock.Mock
}

var _ app.TxStore = (*MockStore)(nil)

func (m *MockStore) PersistBucket(ctx context.Context, bucketNumber int32, eventUuid pgtype.UUID, batch []db.InsertNotificationParams) error {
	args := m.Called(ctx, bucketNumber, eventUuid, batch)
	return args.Error(0)
}

func (m *MockStore) MoveToRecovery(ctx context.Context, n db.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockTransport is a testify mock implementation of app.Transport.
type MockTransport struct {
	mock.Mock
}

var _ app.Transport = (*MockTransport)(nil)

func (m *MockTransport) Deliver(ctx context.Context, method app.DeliveryMethod, event app.Event) error {
	args := m.Called(ctx, method, event)
	return args.Error(0)
}
