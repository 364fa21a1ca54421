package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// BusMessageType represents the type of event bus message.
type BusMessageType string

const (
	BusMessageIngested        BusMessageType = "event_ingested"
	BusMessageDeliveryAttempt BusMessageType = "delivery_attempt"
	BusMessageRecoveryQueued  BusMessageType = "recovery_queued"
	BusMessageDeadLetter      BusMessageType = "dead_letter"
	BusMessageReaped          BusMessageType = "subscription_reaped"
)

// BusMessage is a message published to the EventBus. Live fan-out to browser
// sessions attaches here; the core only publishes.
type BusMessage struct {
	ID             uint64         `json:"id"`
	Type           BusMessageType `json:"type"`
	Tenant         string         `json:"tenant"`
	EventUUID      string         `json:"event_uuid"`
	EventType      string         `json:"event_type,omitempty"`
	Subject        string         `json:"subject,omitempty"`
	SubscriptionID string         `json:"subscription_id,omitempty"`
	BucketNumber   int32          `json:"bucket_number"`
	Timestamp      time.Time      `json:"timestamp"`

	// Delivery-attempt fields (only set for delivery_attempt messages)
	DeliveryMethod string `json:"delivery_method,omitempty"`
	Address        string `json:"address,omitempty"`
	AttemptStatus  string `json:"attempt_status,omitempty"`
}

const subscriberBufferSize = 64

// EventBus is an in-memory pub/sub bus broadcasting pipeline updates.
type EventBus struct {
	nextID      atomic.Uint64
	mu          sync.RWMutex
	subscribers map[chan BusMessage]struct{}
}

// NewEventBus creates a new EventBus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[chan BusMessage]struct{}),
	}
}

// Subscribe returns a buffered channel that receives bus messages and an
// unsubscribe function. The caller must call unsubscribe when done.
func (b *EventBus) Subscribe() (<-chan BusMessage, func()) {
	ch := make(chan BusMessage, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		delete(b.subscribers, ch)
		b.mu.Unlock()
	}

	return ch, unsubscribe
}

// Publish sends a message to all subscribers with a non-blocking send.
// Slow consumers that have full buffers will miss messages.
func (b *EventBus) Publish(msg BusMessage) {
	msg.ID = b.nextID.Add(1)
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message for slow consumer
		}
	}
}
