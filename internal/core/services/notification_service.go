package services

import (
	"context"
	"fmt"
	"log"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

// PushSender delivers one web-push message to a stored subscription.
// Implemented by the webpush adapter; stubbed in tests.
type PushSender interface {
	Send(ctx context.Context, sub *domain.PushSubscription, title, body string) error
	// IsGone reports whether the delivery error means the endpoint no
	// longer exists and the subscription should be pruned.
	IsGone(err error) bool
}

type NotificationService struct {
	repo   domain.PushSubscriptionRepository
	sender PushSender
}

func NewNotificationService(repo domain.PushSubscriptionRepository, sender PushSender) *NotificationService {
	return &NotificationService{
		repo:   repo,
		sender: sender,
	}
}

type SubscribeInput struct {
	UserID   string
	Endpoint string
	P256dh   string
	Auth     string
}

func (s *NotificationService) Subscribe(ctx context.Context, input SubscribeInput) (*domain.PushSubscription, error) {
	sub, err := domain.NewPushSubscription(input.UserID, input.Endpoint, input.P256dh, input.Auth)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("notification service: failed to save subscription: %w", err)
	}

	return sub, nil
}

func (s *NotificationService) Unsubscribe(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

// SendToUser pushes a message to every subscription the user registered,
// pruning endpoints the push service reports as gone. Delivery failures are
// logged, not returned: losing one notification is not an API error.
func (s *NotificationService) SendToUser(ctx context.Context, userID, title, body string) error {
	subs, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return domain.ErrSubscriptionNotFound
	}

	for _, sub := range subs {
		s.deliver(ctx, sub, title, body)
	}

	return nil
}

func (s *NotificationService) deliver(ctx context.Context, sub *domain.PushSubscription, title, body string) {
	err := s.sender.Send(ctx, sub, title, body)
	if err == nil {
		return
	}

	if s.sender.IsGone(err) {
		log.Printf("Pruning stale push endpoint for user %s", sub.UserID)
		if delErr := s.repo.DeleteByEndpoint(ctx, sub.Endpoint); delErr != nil {
			log.Printf("Failed to prune endpoint: %v", delErr)
		}
		return
	}

	log.Printf("Push delivery failed for user %s: %v", sub.UserID, err)
}
