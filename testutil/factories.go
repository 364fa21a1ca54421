package testutil

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sweater-ventures/notifier/app"
	"github.com/sweater-ventures/notifier/config"
	"github.com/sweater-ventures/notifier/db"
)

// NewUUID returns a pgtype.UUID with a new random UUID.
func NewUUID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.Must(uuid.NewV7()), Valid: true}
}

// NewTimestamp returns a pgtype.Timestamptz set to now.
func NewTimestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

// EventOpt is a functional option for building test Events.
type EventOpt func(*app.Event)

// NewEvent creates an app.Event with sensible defaults. Use options to override.
func NewEvent(opts ...EventOpt) app.Event {
	e := app.Event{
		UUID:      uuid.Must(uuid.NewV7()).String(),
		Tenant:    "test-tenant",
		User:      "test-user",
		Source:    "test-source",
		Type:      "core.object.created",
		Subject:   "orders/42",
		Data:      json.RawMessage(`{"key":"value"}`),
		Timestamp: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// SubscriptionOpt is a functional option for building test Subscriptions.
type SubscriptionOpt func(*db.Subscription)

// NewSubscription creates a db.Subscription with sensible defaults: enabled,
// never expiring, matching everything, delivering to a webhook.
func NewSubscription(opts ...SubscriptionOpt) db.Subscription {
	s := db.Subscription{
		SeqID:           1,
		Tenant:          "test-tenant",
		ID:              "sub-1",
		Owner:           "test-owner",
		Enabled:         true,
		TypeFilter1:     "*",
		TypeFilter2:     "*",
		TypeFilter3:     "*",
		SubjectFilter:   "*",
		DeliveryMethods: []byte(`[{"method":"WEBHOOK","address":"https://example.com/hook"}]`),
		TtlMinutes:      0,
		Uuid:            NewUUID(),
		Created:         NewTimestamp(),
		Updated:         NewTimestamp(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NotificationOpt is a functional option for building test Notifications.
type NotificationOpt func(*db.Notification)

// NewNotification creates a db.Notification carrying the given event, bound
// for a webhook.
func NewNotification(event app.Event, opts ...NotificationOpt) db.Notification {
	eventJSON, _ := json.Marshal(event)
	n := db.Notification{
		Uuid:           NewUUID(),
		SubscrSeqID:    1,
		Tenant:         event.Tenant,
		SubscriptionID: "sub-1",
		BucketNumber:   0,
		EventUuid:      NewUUID(),
		Event:          eventJSON,
		DeliveryMethod: []byte(`{"method":"WEBHOOK","address":"https://example.com/hook"}`),
		Created:        NewTimestamp(),
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// RecoveryRecordOpt is a functional option for building test RecoveryRecords.
type RecoveryRecordOpt func(*db.RecoveryRecord)

// NewRecoveryRecord creates a db.RecoveryRecord carrying the given event with
// zero prior attempts.
func NewRecoveryRecord(event app.Event, opts ...RecoveryRecordOpt) db.RecoveryRecord {
	eventJSON, _ := json.Marshal(event)
	r := db.RecoveryRecord{
		Uuid:           NewUUID(),
		SubscrSeqID:    1,
		Tenant:         event.Tenant,
		SubscriptionID: "sub-1",
		BucketNumber:   0,
		EventUuid:      NewUUID(),
		Event:          eventJSON,
		DeliveryMethod: []byte(`{"method":"WEBHOOK","address":"https://example.com/hook"}`),
		AttemptCount:   0,
		Created:        NewTimestamp(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// AppOpt is a functional option for building test Applications.
type AppOpt func(*app.Application)

// NewTestApp creates an app.Application suitable for testing.
// It uses the provided mocks and sensible config defaults.
func NewTestApp(mockDB *MockQuerier, store *MockStore, transport *MockTransport, opts ...AppOpt) *app.Application {
	a := &app.Application{
		Config: config.AppConfig{
			DeliveryWorkers:        4,
			DeliveryMaxAttempts:    3,
			DeliveryRetrySeconds:   60,
			DeliveryTimeoutSeconds: 5,
			RecoveryMaxAttempts:    5,
			RecoveryRetryMinutes:   60,
			ReaperIntervalMinutes:  60,
		},
		DB:            mockDB,
		Store:         store,
		Transport:     transport,
		EventBus:      app.NewEventBus(),
		Subscriptions: app.NewSubscriptionCache(mockDB),
		TestSeqCache:  app.NewCache[string, bool](),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
