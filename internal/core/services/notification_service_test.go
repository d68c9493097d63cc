package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Save(ctx context.Context, sub *domain.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) ListForReminder(ctx context.Context, day time.Time) ([]*domain.PushSubscription, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PushSubscription), args.Error(1)
}

// stubSender records deliveries and can fail specific endpoints.
type stubSender struct {
	sent     []string
	goneErr  error
	failWith map[string]error
}

func (s *stubSender) Send(ctx context.Context, sub *domain.PushSubscription, title, body string) error {
	if err, ok := s.failWith[sub.Endpoint]; ok {
		return err
	}
	s.sent = append(s.sent, sub.Endpoint)
	return nil
}

func (s *stubSender) IsGone(err error) bool {
	return s.goneErr != nil && errors.Is(err, s.goneErr)
}

func TestNotificationService_Subscribe(t *testing.T) {
	t.Run("persists a complete subscription", func(t *testing.T) {
		repo := new(MockSubscriptionRepo)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(sub *domain.PushSubscription) bool {
			return sub.UserID == "user-1" && sub.Endpoint == "https://push.example.com/abc"
		})).Return(nil)

		svc := services.NewNotificationService(repo, &stubSender{})

		sub, err := svc.Subscribe(context.Background(), services.SubscribeInput{
			UserID:   "user-1",
			Endpoint: "https://push.example.com/abc",
			P256dh:   "p256dh-key",
			Auth:     "auth-key",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, sub.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a payload missing keys", func(t *testing.T) {
		repo := new(MockSubscriptionRepo)
		svc := services.NewNotificationService(repo, &stubSender{})

		_, err := svc.Subscribe(context.Background(), services.SubscribeInput{
			UserID:   "user-1",
			Endpoint: "https://push.example.com/abc",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidSubscription)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_SendToUser(t *testing.T) {
	subA := &domain.PushSubscription{ID: "s-1", UserID: "user-1", Endpoint: "https://push.example.com/a", P256dh: "k", Auth: "a"}
	subB := &domain.PushSubscription{ID: "s-2", UserID: "user-1", Endpoint: "https://push.example.com/b", P256dh: "k", Auth: "a"}

	t.Run("delivers to every registered endpoint", func(t *testing.T) {
		repo := new(MockSubscriptionRepo)
		repo.On("ListByUserID", mock.Anything, "user-1").Return([]*domain.PushSubscription{subA, subB}, nil)

		sender := &stubSender{}
		svc := services.NewNotificationService(repo, sender)

		require.NoError(t, svc.SendToUser(context.Background(), "user-1", "Reminder", "Don't break the chain!"))
		assert.Equal(t, []string{subA.Endpoint, subB.Endpoint}, sender.sent)
	})

	t.Run("prunes endpoints the push service reports gone", func(t *testing.T) {
		gone := errors.New("endpoint gone")

		repo := new(MockSubscriptionRepo)
		repo.On("ListByUserID", mock.Anything, "user-1").Return([]*domain.PushSubscription{subA, subB}, nil)
		repo.On("DeleteByEndpoint", mock.Anything, subA.Endpoint).Return(nil)

		sender := &stubSender{
			goneErr:  gone,
			failWith: map[string]error{subA.Endpoint: gone},
		}
		svc := services.NewNotificationService(repo, sender)

		require.NoError(t, svc.SendToUser(context.Background(), "user-1", "Reminder", "body"))

		assert.Equal(t, []string{subB.Endpoint}, sender.sent)
		repo.AssertExpectations(t)
	})

	t.Run("no subscriptions is reported to the caller", func(t *testing.T) {
		repo := new(MockSubscriptionRepo)
		repo.On("ListByUserID", mock.Anything, "user-1").Return([]*domain.PushSubscription{}, nil)

		svc := services.NewNotificationService(repo, &stubSender{})

		err := svc.SendToUser(context.Background(), "user-1", "Reminder", "body")
		assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
	})
}
