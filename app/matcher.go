package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sweater-ventures/notifier/db"
)

// Matches reports whether a subscription's filters accept an event. All four
// conditions are ANDed: tenant equality, enabled, not expired, and each of
// the three type segments plus the subject being either the wildcard or an
// exact match. No partial wildcards.
func Matches(sub db.Subscription, event Event, now time.Time) bool {
	if sub.Tenant != event.Tenant {
		return false
	}
	if !sub.Enabled {
		return false
	}
	if sub.Expiry.Valid && !sub.Expiry.Time.After(now) {
		return false
	}
	t1, t2, t3 := event.TypeSegments()
	if sub.TypeFilter1 != Wildcard && sub.TypeFilter1 != t1 {
		return false
	}
	if sub.TypeFilter2 != Wildcard && sub.TypeFilter2 != t2 {
		return false
	}
	if sub.TypeFilter3 != Wildcard && sub.TypeFilter3 != t3 {
		return false
	}
	if sub.SubjectFilter != Wildcard && sub.SubjectFilter != event.Subject {
		return false
	}
	return true
}

// SubscriptionCache lazily bulk-loads all subscriptions into memory.
// Filter matching is performed in Go with Matches. Call Flush after any
// subscription mutation; the next access reloads from the database.
type SubscriptionCache struct {
	mu            sync.RWMutex
	loaded        bool
	subscriptions []db.Subscription
	db            db.Querier
}

func NewSubscriptionCache(querier db.Querier) *SubscriptionCache {
	return &SubscriptionCache{db: querier}
}

// load performs lazy bulk loading with double-checked locking.
func (c *SubscriptionCache) load(ctx context.Context) error {
	c.mu.RLock()
	if c.loaded {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.loaded {
		return nil
	}

	subscriptions, err := c.db.ListAllSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("loading subscriptions: %w", err)
	}

	c.subscriptions = subscriptions
	c.loaded = true
	return nil
}

// GetSubscriptionsForEvent returns all active, non-expired subscriptions in
// the event's tenant whose type and subject filters match. Pure query, no
// side effects.
func (c *SubscriptionCache) GetSubscriptionsForEvent(ctx context.Context, event Event) ([]db.Subscription, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now().UTC()
	var matched []db.Subscription
	for _, sub := range c.subscriptions {
		if Matches(sub, event, now) {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}

// Flush clears the cache. The next access will reload from the database.
func (c *SubscriptionCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.subscriptions = nil
}
