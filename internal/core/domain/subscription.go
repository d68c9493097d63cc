package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSubscriptionNotFound = errors.New("push subscription not found")
	ErrInvalidSubscription  = errors.New("invalid push subscription payload")
)

// PushSubscription stores a browser push endpoint per user. Subscriptions
// live in the database keyed by user, so reminders work across processes
// and users never share a subscription slot.
type PushSubscription struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewPushSubscription(userID, endpoint, p256dh, auth string) (*PushSubscription, error) {
	if userID == "" {
		return nil, ErrChallengeInvalidUser
	}
	if strings.TrimSpace(endpoint) == "" || p256dh == "" || auth == "" {
		return nil, ErrInvalidSubscription
	}

	return &PushSubscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Endpoint:  endpoint,
		P256dh:    p256dh,
		Auth:      auth,
		CreatedAt: time.Now().UTC(),
	}, nil
}

type PushSubscriptionRepository interface {
	// Save stores the subscription, replacing any previous one with the
	// same endpoint.
	Save(ctx context.Context, sub *PushSubscription) error

	ListByUserID(ctx context.Context, userID string) ([]*PushSubscription, error)

	// DeleteByUserID removes every subscription a user registered.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteByEndpoint prunes a single stale endpoint, typically after
	// the push service answered 404 or 410.
	DeleteByEndpoint(ctx context.Context, endpoint string) error

	// ListForReminder returns subscriptions of users who have a challenge
	// active on the given day with no completed record for it yet.
	ListForReminder(ctx context.Context, day time.Time) ([]*PushSubscription, error)
}
