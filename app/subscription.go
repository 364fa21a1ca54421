package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sweater-ventures/notifier/db"
)

// Delivery method tags.
const (
	MethodWebhook = "WEBHOOK"
	MethodEmail   = "EMAIL"
)

// Wildcard matches any value in a type or subject filter segment.
const Wildcard = "*"

// DeliveryMethod is one notification target: a webhook URL or email address
// plus its method tag.
type DeliveryMethod struct {
	Method  string `json:"method"`
	Address string `json:"address"`
}

// ErrNotFound signals a stale reference: the subscription (or sequence) does
// not exist. Distinct from validation failure so callers can tell "bad input"
// from "gone".
var ErrNotFound = errors.New("not found")

// ErrInvalid marks input rejected by validation.
var ErrInvalid = errors.New("invalid")

var emailPattern = regexp.MustCompile(`^.+@\S+$`)

// ValidateDeliveryMethod checks the method tag and its address format.
func ValidateDeliveryMethod(dm DeliveryMethod) error {
	switch dm.Method {
	case MethodEmail:
		if !emailPattern.MatchString(dm.Address) {
			return fmt.Errorf("%w: email address %q", ErrInvalid, dm.Address)
		}
	case MethodWebhook:
		u, err := url.Parse(dm.Address)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: webhook address %q", ErrInvalid, dm.Address)
		}
		if !govalidator.IsURL(dm.Address) {
			return fmt.Errorf("%w: webhook address %q", ErrInvalid, dm.Address)
		}
	default:
		return fmt.Errorf("%w: delivery method %q", ErrInvalid, dm.Method)
	}
	return nil
}

// SubscriptionRequest carries the caller-supplied fields for create and put.
type SubscriptionRequest struct {
	ID              string
	Owner           string
	TypeFilter      string
	SubjectFilter   string
	DeliveryMethods []DeliveryMethod
	TTLMinutes      int32
}

// normalizeTypeFilter splits a dot-delimited type filter and fills missing
// segments with the wildcard. An empty filter normalizes to *.*.*.
func normalizeTypeFilter(filter string) (string, string, string, error) {
	if filter == "" {
		return Wildcard, Wildcard, Wildcard, nil
	}
	parts := strings.Split(filter, ".")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: type filter %q must have 3 segments", ErrInvalid, filter)
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", fmt.Errorf("%w: type filter %q has an empty segment", ErrInvalid, filter)
		}
	}
	return parts[0], parts[1], parts[2], nil
}

func validateRequest(req SubscriptionRequest) error {
	if req.ID == "" {
		return fmt.Errorf("%w: subscription id is required", ErrInvalid)
	}
	if req.Owner == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if len(req.DeliveryMethods) == 0 {
		return fmt.Errorf("%w: at least one delivery method is required", ErrInvalid)
	}
	for _, dm := range req.DeliveryMethods {
		if err := ValidateDeliveryMethod(dm); err != nil {
			return err
		}
	}
	return nil
}

// expiryFor derives the expiry timestamp from a TTL. TTL <= 0 means never
// expires (null expiry).
func expiryFor(ttlMinutes int32, from time.Time) pgtype.Timestamptz {
	if ttlMinutes <= 0 {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: from.Add(time.Duration(ttlMinutes) * time.Minute), Valid: true}
}

// CreateSubscription validates, normalizes, and persists a new subscription.
func (a *Application) CreateSubscription(ctx context.Context, tenant string, req SubscriptionRequest) (db.Subscription, error) {
	if tenant == "" {
		return db.Subscription{}, fmt.Errorf("%w: tenant is required", ErrInvalid)
	}
	if err := validateRequest(req); err != nil {
		return db.Subscription{}, err
	}

	tf1, tf2, tf3, err := normalizeTypeFilter(req.TypeFilter)
	if err != nil {
		return db.Subscription{}, err
	}
	subjectFilter := req.SubjectFilter
	if subjectFilter == "" {
		subjectFilter = Wildcard
	}

	methodsJSON, err := json.Marshal(req.DeliveryMethods)
	if err != nil {
		return db.Subscription{}, fmt.Errorf("encoding delivery methods: %w", err)
	}

	now := time.Now().UTC()
	sub, err := a.DB.CreateSubscription(ctx, db.CreateSubscriptionParams{
		Tenant:          tenant,
		ID:              req.ID,
		Owner:           req.Owner,
		Enabled:         true,
		TypeFilter1:     tf1,
		TypeFilter2:     tf2,
		TypeFilter3:     tf3,
		SubjectFilter:   subjectFilter,
		DeliveryMethods: methodsJSON,
		TtlMinutes:      req.TTLMinutes,
		Expiry:          expiryFor(req.TTLMinutes, now),
		Uuid:            NewUuid(),
		Created:         pgtype.Timestamptz{Time: now, Valid: true},
		Updated:         pgtype.Timestamptz{Time: now, Valid: true},
	})
	if err != nil {
		return db.Subscription{}, fmt.Errorf("creating subscription: %w", err)
	}
	a.Subscriptions.Flush()
	return sub, nil
}

// GetSubscription fetches one subscription, mapping pgx.ErrNoRows to ErrNotFound.
func (a *Application) GetSubscription(ctx context.Context, tenant, id string) (db.Subscription, error) {
	sub, err := a.DB.GetSubscription(ctx, db.GetSubscriptionParams{Tenant: tenant, ID: id})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Subscription{}, fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, id)
	}
	return sub, err
}

// SubscriptionPatch holds optional field updates; nil fields are left unchanged.
type SubscriptionPatch struct {
	TypeFilter      *string
	SubjectFilter   *string
	DeliveryMethods []DeliveryMethod
	TTLMinutes      *int32
}

// PatchSubscription applies a partial update via read-modify-write.
func (a *Application) PatchSubscription(ctx context.Context, tenant, id string, patch SubscriptionPatch) (db.Subscription, error) {
	current, err := a.GetSubscription(ctx, tenant, id)
	if err != nil {
		return db.Subscription{}, err
	}

	tf1, tf2, tf3 := current.TypeFilter1, current.TypeFilter2, current.TypeFilter3
	if patch.TypeFilter != nil {
		tf1, tf2, tf3, err = normalizeTypeFilter(*patch.TypeFilter)
		if err != nil {
			return db.Subscription{}, err
		}
	}

	subjectFilter := current.SubjectFilter
	if patch.SubjectFilter != nil {
		subjectFilter = *patch.SubjectFilter
		if subjectFilter == "" {
			subjectFilter = Wildcard
		}
	}

	methodsJSON := current.DeliveryMethods
	if patch.DeliveryMethods != nil {
		if len(patch.DeliveryMethods) == 0 {
			return db.Subscription{}, fmt.Errorf("%w: at least one delivery method is required", ErrInvalid)
		}
		for _, dm := range patch.DeliveryMethods {
			if err := ValidateDeliveryMethod(dm); err != nil {
				return db.Subscription{}, err
			}
		}
		methodsJSON, err = json.Marshal(patch.DeliveryMethods)
		if err != nil {
			return db.Subscription{}, fmt.Errorf("encoding delivery methods: %w", err)
		}
	}

	now := time.Now().UTC()
	ttl := current.TtlMinutes
	expiry := current.Expiry
	if patch.TTLMinutes != nil {
		ttl = *patch.TTLMinutes
		expiry = expiryFor(ttl, now)
	}

	sub, err := a.DB.UpdateSubscription(ctx, db.UpdateSubscriptionParams{
		Tenant:          tenant,
		ID:              id,
		TypeFilter1:     tf1,
		TypeFilter2:     tf2,
		TypeFilter3:     tf3,
		SubjectFilter:   subjectFilter,
		DeliveryMethods: methodsJSON,
		TtlMinutes:      ttl,
		Expiry:          expiry,
		Updated:         pgtype.Timestamptz{Time: now, Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Subscription{}, fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, id)
	}
	if err != nil {
		return db.Subscription{}, fmt.Errorf("patching subscription: %w", err)
	}
	a.Subscriptions.Flush()
	return sub, nil
}

// PutSubscription replaces the mutable fields of an existing subscription.
func (a *Application) PutSubscription(ctx context.Context, tenant string, req SubscriptionRequest) (db.Subscription, error) {
	if err := validateRequest(req); err != nil {
		return db.Subscription{}, err
	}
	tf1, tf2, tf3, err := normalizeTypeFilter(req.TypeFilter)
	if err != nil {
		return db.Subscription{}, err
	}
	subjectFilter := req.SubjectFilter
	if subjectFilter == "" {
		subjectFilter = Wildcard
	}
	methodsJSON, err := json.Marshal(req.DeliveryMethods)
	if err != nil {
		return db.Subscription{}, fmt.Errorf("encoding delivery methods: %w", err)
	}

	now := time.Now().UTC()
	sub, err := a.DB.UpdateSubscription(ctx, db.UpdateSubscriptionParams{
		Tenant:          tenant,
		ID:              req.ID,
		TypeFilter1:     tf1,
		TypeFilter2:     tf2,
		TypeFilter3:     tf3,
		SubjectFilter:   subjectFilter,
		DeliveryMethods: methodsJSON,
		TtlMinutes:      req.TTLMinutes,
		Expiry:          expiryFor(req.TTLMinutes, now),
		Updated:         pgtype.Timestamptz{Time: now, Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Subscription{}, fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, req.ID)
	}
	if err != nil {
		return db.Subscription{}, fmt.Errorf("replacing subscription: %w", err)
	}
	a.Subscriptions.Flush()
	return sub, nil
}

// SetSubscriptionEnabled enables or disables a subscription.
func (a *Application) SetSubscriptionEnabled(ctx context.Context, tenant, id string, enabled bool) (db.Subscription, error) {
	sub, err := a.DB.UpdateSubscriptionEnabled(ctx, db.UpdateSubscriptionEnabledParams{
		Tenant:  tenant,
		ID:      id,
		Enabled: enabled,
		Updated: pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Subscription{}, fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, id)
	}
	if err != nil {
		return db.Subscription{}, err
	}
	a.Subscriptions.Flush()
	return sub, nil
}

// SetSubscriptionOwner transfers ownership of a subscription.
func (a *Application) SetSubscriptionOwner(ctx context.Context, tenant, id, owner string) (db.Subscription, error) {
	if owner == "" {
		return db.Subscription{}, fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	sub, err := a.DB.UpdateSubscriptionOwner(ctx, db.UpdateSubscriptionOwnerParams{
		Tenant:  tenant,
		ID:      id,
		Owner:   owner,
		Updated: pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Subscription{}, fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, id)
	}
	if err != nil {
		return db.Subscription{}, err
	}
	a.Subscriptions.Flush()
	return sub, nil
}

// SetSubscriptionTTL updates the TTL, re-deriving expiry from now.
func (a *Application) SetSubscriptionTTL(ctx context.Context, tenant, id string, ttlMinutes int32) (db.Subscription, error) {
	now := time.Now().UTC()
	sub, err := a.DB.UpdateSubscriptionTTL(ctx, db.UpdateSubscriptionTTLParams{
		Tenant:     tenant,
		ID:         id,
		TtlMinutes: ttlMinutes,
		Expiry:     expiryFor(ttlMinutes, now),
		Updated:    pgtype.Timestamptz{Time: now, Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Subscription{}, fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, id)
	}
	if err != nil {
		return db.Subscription{}, err
	}
	a.Subscriptions.Flush()
	return sub, nil
}

// DeleteSubscription removes a subscription. Queued notifications referencing
// it keep draining independently.
func (a *Application) DeleteSubscription(ctx context.Context, tenant, id string) error {
	n, err := a.DB.DeleteSubscription(ctx, db.DeleteSubscriptionParams{Tenant: tenant, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: subscription %s/%s", ErrNotFound, tenant, id)
	}
	a.Subscriptions.Flush()
	return nil
}

// DecodeDeliveryMethods unpacks a subscription's stored delivery methods.
func DecodeDeliveryMethods(raw []byte) ([]DeliveryMethod, error) {
	var methods []DeliveryMethod
	if err := json.Unmarshal(raw, &methods); err != nil {
		return nil, fmt.Errorf("decoding delivery methods: %w", err)
	}
	return methods, nil
}
